package adapter

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// IDGenerator 为新建记录生成 key
type IDGenerator interface {
	Generate() string
}

type UUIDOptions struct {
	// Version 可选 v1, v4, v6, v7
	Version string `cfg:"version" def:"v4" validate:"omitempty,oneof=v1 v4 v6 v7"`
	// WithHyphens 是否保留连字符，默认输出 32 位十六进制
	WithHyphens bool `cfg:"withHyphens"`
}

type UUIDGenerator struct {
	version     string
	withHyphens bool
}

func NewUUIDGeneratorWithOptions(options *UUIDOptions) *UUIDGenerator {
	g := &UUIDGenerator{version: "v4"}
	if options == nil {
		return g
	}
	if options.Version != "" {
		g.version = options.Version
	}
	g.withHyphens = options.WithHyphens
	return g
}

func (g *UUIDGenerator) Generate() string {
	var u uuid.UUID
	switch g.version {
	case "v1":
		u = uuid.Must(uuid.NewUUID())
	case "v6":
		u = uuid.Must(uuid.NewV6())
	case "v7":
		u = uuid.Must(uuid.NewV7())
	default:
		u = uuid.New()
	}

	if g.withHyphens {
		return u.String()
	}
	return hex.EncodeToString(u[:])
}
