package decoder

import (
	"path/filepath"
	"strings"

	"github.com/hatlonely/surrealauth/cfg/storage"
	"github.com/pkg/errors"
)

// Decoder 将原始配置数据解码为存储对象
type Decoder interface {
	Decode(data []byte) (storage.Storage, error)
}

// NewDecoderWithExt 根据文件扩展名选择解码器，支持 .yaml .yml .json .toml .ini
func NewDecoderWithExt(filename string) (Decoder, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		return &YamlDecoder{}, nil
	case ".json":
		return &JsonDecoder{}, nil
	case ".toml":
		return &TomlDecoder{}, nil
	case ".ini":
		return NewIniDecoder(), nil
	default:
		return nil, errors.Errorf("unsupported config format [%s]", ext)
	}
}
