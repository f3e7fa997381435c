// Package cfg 加载配置文件到结构体
//
// 加载顺序为：配置文件、环境变量、def 默认值，最后执行 validate 校验
//
//	type Options struct {
//	    Endpoint string `cfg:"endpoint" validate:"required"`
//	    Debug    bool   `cfg:"debug" def:"false"`
//	}
//
//	var options Options
//	err := cfg.Load("config.yaml", &options)
package cfg

import (
	"os"

	"github.com/hatlonely/surrealauth/cfg/decoder"
	"github.com/hatlonely/surrealauth/cfg/validator"
	"github.com/pkg/errors"
)

type LoadOptions struct {
	// File 配置文件，为空时只使用环境变量和默认值
	File string `cfg:"file"`
	// EnvPrefix 环境变量前缀，为空时不读取环境变量
	EnvPrefix string `cfg:"envPrefix"`
	// Key 只加载配置文件中的某个子配置，如 "adapter"
	Key string `cfg:"key"`
}

// Load 从配置文件加载配置，格式由扩展名决定
func Load(filename string, object any) error {
	return LoadWithOptions(&LoadOptions{File: filename}, object)
}

func LoadWithOptions(options *LoadOptions, object any) error {
	if options == nil {
		options = &LoadOptions{}
	}

	if options.File != "" {
		if err := Decode(options.File, options.Key, object); err != nil {
			return err
		}
	}
	if options.EnvPrefix != "" {
		if err := ApplyEnv(options.EnvPrefix, object); err != nil {
			return errors.WithMessage(err, "ApplyEnv failed")
		}
	}
	if err := SetDefaults(object); err != nil {
		return errors.WithMessage(err, "SetDefaults failed")
	}
	if err := Validate(object); err != nil {
		return errors.WithMessage(err, "Validate failed")
	}
	return nil
}

// Decode 读取配置文件并转换到结构体，不设置默认值也不校验
func Decode(filename string, key string, object any) error {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "os.ReadFile [%s] failed", filename)
	}
	d, err := decoder.NewDecoderWithExt(filename)
	if err != nil {
		return err
	}
	s, err := d.Decode(buf)
	if err != nil {
		return errors.WithMessagef(err, "decode [%s] failed", filename)
	}
	if err := s.Sub(key).ConvertTo(object); err != nil {
		return errors.WithMessagef(err, "convert [%s] failed", filename)
	}
	return nil
}

// Validate 使用 validate tag 校验配置
func Validate(object any) error {
	return validator.ValidateStruct(object)
}
