package log

import (
	"sync/atomic"

	"github.com/hatlonely/surrealauth/log/logger"
)

// Options 日志配置
type Options = logger.SLogOptions

type holder struct {
	logger logger.Logger
}

var defaultLogger atomic.Value

func init() {
	// 默认向终端输出 text 格式日志
	slog, err := logger.NewSLogWithOptions(&logger.SLogOptions{
		Level:  "info",
		Format: "text",
	})
	if err != nil {
		panic("failed to initialize default logger: " + err.Error())
	}
	defaultLogger.Store(holder{logger: slog})
}

// Default 默认日志器
func Default() logger.Logger {
	return defaultLogger.Load().(holder).logger
}

// SetDefault 替换默认日志器，nil 被忽略
func SetDefault(l logger.Logger) {
	if l != nil {
		defaultLogger.Store(holder{logger: l})
	}
}

// NewLoggerWithOptions options 为 nil 时返回默认日志器
func NewLoggerWithOptions(options *Options) (logger.Logger, error) {
	if options == nil {
		return Default(), nil
	}
	return logger.NewSLogWithOptions(options)
}
