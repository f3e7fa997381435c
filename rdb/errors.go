package rdb

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNilRequest     = errors.New("nil request")
	ErrUnknownMethod  = errors.New("unknown method")
	ErrInvalidRequest = errors.New("invalid request")
)

// UnsupportedOperatorError 条件使用了不支持的操作符
type UnsupportedOperatorError struct {
	Operator Operator
	Field    string
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("unsupported operator: %s", e.Operator)
}
