package logger

import (
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/hatlonely/surrealauth/log/writer"
	"github.com/pkg/errors"
)

// RedactedValue 脱敏后的占位值
const RedactedValue = "******"

// SLogOptions 日志初始化选项
type SLogOptions struct {
	// 日志级别：debug, info, warn, error
	Level string `cfg:"level" def:"info" validate:"omitempty,oneof=debug info warn warning error"`

	// 输出格式：text, json
	Format string `cfg:"format" def:"text" validate:"omitempty,oneof=text json"`

	// 输出目标，为空时输出到标准输出
	Output *writer.Options `cfg:"output"`

	// 时间格式
	TimeFormat string `cfg:"timeFormat"`

	// 是否显示调用者信息
	AddSource bool `cfg:"addSource"`

	// 自定义字段
	Fields map[string]any `cfg:"fields"`

	// 需要脱敏的字段名，忽略大小写，对嵌套的 map 同样生效
	// 带点号的键按最后一段匹配，例如 "bind__3.password"
	// 为空时使用 DefaultRedactKeys
	Redact []string `cfg:"redact"`
}

// DefaultRedactKeys 认证数据中常见的敏感字段
var DefaultRedactKeys = []string{"password", "token", "accessToken", "refreshToken", "idToken", "secret"}

// SLog 基于 log/slog 的 Logger 实现
type SLog struct {
	*slog.Logger
}

func NewSLogWithOptions(options *SLogOptions) (*SLog, error) {
	if options == nil {
		return nil, errors.New("options cannot be nil")
	}

	w, err := writer.NewWriterWithOptions(options.Output)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create writer")
	}

	return NewSLogWithWriter(options, w)
}

// NewSLogWithWriter 使用指定的输出创建日志器，忽略 options.Output
func NewSLogWithWriter(options *SLogOptions, w io.Writer) (*SLog, error) {
	if options == nil {
		return nil, errors.New("options cannot be nil")
	}

	level, err := ParseLevel(options.Level)
	if err != nil {
		return nil, err
	}

	redact := options.Redact
	if len(redact) == 0 {
		redact = DefaultRedactKeys
	}
	r := newRedactor(redact)

	timeFormat := options.TimeFormat
	if timeFormat == time.RFC3339 {
		timeFormat = ""
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: options.AddSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				if timeFormat != "" {
					return slog.String(a.Key, a.Value.Time().Format(timeFormat))
				}
				return a
			}
			return r.attr(a)
		},
	}

	var handler slog.Handler
	switch strings.ToLower(options.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	case "text", "":
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		return nil, errors.Errorf("unsupported format: %s", options.Format)
	}

	l := slog.New(handler)
	if len(options.Fields) > 0 {
		keys := make([]string, 0, len(options.Fields))
		for k := range options.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		args := make([]any, 0, len(keys)*2)
		for _, k := range keys {
			args = append(args, k, options.Fields[k])
		}
		l = l.With(args...)
	}

	return &SLog{Logger: l}, nil
}

// ParseLevel 解析日志级别，空字符串为 info
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.Errorf("unknown level: %s", level)
}

func (l *SLog) With(args ...any) Logger {
	return &SLog{Logger: l.Logger.With(args...)}
}

func (l *SLog) WithGroup(name string) Logger {
	return &SLog{Logger: l.Logger.WithGroup(name)}
}

type redactor map[string]struct{}

func newRedactor(keys []string) redactor {
	r := make(redactor, len(keys))
	for _, k := range keys {
		r[strings.ToLower(k)] = struct{}{}
	}
	return r
}

func (r redactor) sensitive(key string) bool {
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		key = key[i+1:]
	}
	_, ok := r[strings.ToLower(key)]
	return ok
}

func (r redactor) attr(a slog.Attr) slog.Attr {
	if r.sensitive(a.Key) {
		return slog.String(a.Key, RedactedValue)
	}
	if a.Value.Kind() == slog.KindAny {
		if v, changed := r.value(a.Value.Any()); changed {
			return slog.Any(a.Key, v)
		}
	}
	return a
}

// value 返回脱敏后的副本，原始数据不变
func (r redactor) value(v any) (any, bool) {
	switch vv := v.(type) {
	case map[string]any:
		var out map[string]any
		for k, item := range vv {
			var replaced any
			var changed bool
			if r.sensitive(k) {
				replaced, changed = RedactedValue, true
			} else {
				replaced, changed = r.value(item)
			}
			if !changed {
				continue
			}
			if out == nil {
				out = make(map[string]any, len(vv))
				for k2, v2 := range vv {
					out[k2] = v2
				}
			}
			out[k] = replaced
		}
		if out == nil {
			return v, false
		}
		return out, true
	case []any:
		var out []any
		for i, item := range vv {
			replaced, changed := r.value(item)
			if !changed {
				continue
			}
			if out == nil {
				out = append([]any(nil), vv...)
			}
			out[i] = replaced
		}
		if out == nil {
			return v, false
		}
		return out, true
	}
	return v, false
}
