package schema

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/hatlonely/surrealauth/log"
	"github.com/hatlonely/surrealauth/log/logger"
	"github.com/pkg/errors"
)

// WatcherOptions 表描述文件监听配置
type WatcherOptions struct {
	FilePath string       `cfg:"filePath" validate:"required"`
	Logger   *log.Options `cfg:"logger"`
}

// Listener 表描述加载完成后的回调
type Listener func(tables []*TableModel) error

// Watcher 监听表描述文件，文件变化时重新加载并通知使用者
type Watcher struct {
	filePath string

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once

	logger logger.Logger
}

func NewWatcherWithOptions(options *WatcherOptions) (*Watcher, error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}
	if options.FilePath == "" {
		return nil, errors.New("filePath is required")
	}

	l, err := log.NewLoggerWithOptions(options.Logger)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create logger")
	}

	filePath, err := filepath.Abs(options.FilePath)
	if err != nil {
		return nil, errors.Wrapf(err, "filepath.Abs [%s] failed", options.FilePath)
	}

	return &Watcher{
		filePath: filePath,
		done:     make(chan struct{}),
		logger:   l.WithGroup("schemaWatcher").With("filePath", filePath),
	}, nil
}

// OnChange 立即加载一次并通知，之后每次文件写入、创建或重命名时重新加载
// 首次加载失败直接返回错误；之后的加载失败只记录日志
func (w *Watcher) OnChange(listener Listener) error {
	if err := w.notify(listener); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "fsnotify.NewWatcher failed")
	}
	if err := watcher.Add(filepath.Dir(w.filePath)); err != nil {
		watcher.Close()
		return errors.Wrap(err, "watcher.Add failed")
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer watcher.Close()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if filepath.Clean(event.Name) != w.filePath {
					continue
				}
				if err := w.notify(listener); err != nil {
					w.logger.Warn("reload failed", "error", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("watcher error", "error", err)
			case <-w.done:
				return
			}
		}
	}()

	return nil
}

func (w *Watcher) notify(listener Listener) error {
	tables, err := LoadTables(w.filePath)
	if err != nil {
		return err
	}
	w.logger.Debug("tables loaded", "count", len(tables))
	if err := listener(tables); err != nil {
		return errors.WithMessage(err, "listener failed")
	}
	return nil
}

func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
	})
	w.wg.Wait()
	return nil
}
