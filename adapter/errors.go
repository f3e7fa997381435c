package adapter

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrUnknownExecutor = errors.New("unknown executor")

// MissingEndpointError 没有配置数据库地址，在创建适配器时返回
type MissingEndpointError struct{}

func (e *MissingEndpointError) Error() string {
	return "surrealdb endpoint is required"
}

// CreateFailedError 创建语句没有返回记录
type CreateFailedError struct {
	Model string
}

func (e *CreateFailedError) Error() string {
	return fmt.Sprintf("failed to create record in [%s]", e.Model)
}
