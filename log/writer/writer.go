package writer

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Writer 日志输出器接口
type Writer interface {
	io.Writer
	io.Closer
}

// Options 输出目标配置
type Options struct {
	// 输出类型：console, file
	Type string `cfg:"type" def:"console" validate:"omitempty,oneof=console file"`
	// console 输出目标：stdout, stderr
	Target string `cfg:"target" def:"stdout"`
	// file 输出路径
	Path string `cfg:"path"`
}

// NewWriterWithOptions 按类型创建输出器，options 为 nil 时输出到标准输出
func NewWriterWithOptions(options *Options) (Writer, error) {
	if options == nil {
		return NewConsoleWriterWithOptions(nil)
	}

	switch strings.ToLower(options.Type) {
	case "", "console":
		return NewConsoleWriterWithOptions(&ConsoleWriterOptions{Target: options.Target})
	case "file":
		return NewFileWriterWithOptions(&FileWriterOptions{Path: options.Path})
	}
	return nil, errors.Errorf("unsupported writer type [%s]", options.Type)
}
