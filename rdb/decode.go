package rdb

import (
	"encoding/json"

	"github.com/hatlonely/surrealauth/cfg/validator"
	"github.com/pkg/errors"
)

type envelope struct {
	Method Method `json:"method"`
}

// NewRequest 按方法创建空请求
func NewRequest(method Method) (Request, error) {
	switch method {
	case MethodCount:
		return &CountRequest{}, nil
	case MethodFindOne:
		return &FindOneRequest{}, nil
	case MethodFindMany:
		return &FindManyRequest{}, nil
	case MethodCreate:
		return &CreateRequest{}, nil
	case MethodUpdate:
		return &UpdateRequest{}, nil
	case MethodUpdateMany:
		return &UpdateManyRequest{}, nil
	case MethodDelete:
		return &DeleteRequest{}, nil
	case MethodDeleteMany:
		return &DeleteManyRequest{}, nil
	}
	return nil, errors.WithMessagef(ErrUnknownMethod, "method [%s]", method)
}

// DecodeRequest 解析带 method 标签的 JSON 请求并校验
func DecodeRequest(buf []byte) (Request, error) {
	var env envelope
	if err := json.Unmarshal(buf, &env); err != nil {
		return nil, errors.Wrap(err, "json.Unmarshal failed")
	}

	req, err := NewRequest(env.Method)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(buf, req); err != nil {
		return nil, errors.Wrapf(err, "decode %s request failed", env.Method)
	}
	if err := validator.ValidateStruct(req); err != nil {
		return nil, errors.WithMessage(ErrInvalidRequest, err.Error())
	}

	return req, nil
}
