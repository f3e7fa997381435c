// Package rdb 定义认证框架的通用存储请求模型，并将请求翻译为 SurrealQL
package rdb

// Method 请求方法
type Method string

const (
	MethodCount      Method = "count"
	MethodFindOne    Method = "findOne"
	MethodFindMany   Method = "findMany"
	MethodCreate     Method = "create"
	MethodUpdate     Method = "update"
	MethodUpdateMany Method = "updateMany"
	MethodDelete     Method = "delete"
	MethodDeleteMany Method = "deleteMany"
)

// Request 请求接口，只能由本包内的请求类型实现
type Request interface {
	Method() Method
	request()
}

// CountRequest 统计记录数量
type CountRequest struct {
	Model string      `json:"model" validate:"required"`
	Where []Condition `json:"where,omitempty" validate:"omitempty,dive"`
}

// FindOneRequest 查询单条记录，结果基数由调用方保证
type FindOneRequest struct {
	Model  string      `json:"model" validate:"required"`
	Where  []Condition `json:"where" validate:"required,min=1,dive"`
	Select []string    `json:"select,omitempty"`
}

// FindManyRequest 查询多条记录
type FindManyRequest struct {
	Model  string      `json:"model" validate:"required"`
	Where  []Condition `json:"where,omitempty" validate:"omitempty,dive"`
	Limit  int         `json:"limit,omitempty"`
	SortBy *SortBy     `json:"sortBy,omitempty"`
	Offset int         `json:"offset,omitempty"`
	Select []string    `json:"select,omitempty"`
}

// CreateRequest 创建记录
type CreateRequest struct {
	Model  string   `json:"model" validate:"required"`
	Data   Data     `json:"data"`
	Select []string `json:"select,omitempty"`
}

// UpdateRequest 更新单条记录
type UpdateRequest struct {
	Model  string      `json:"model" validate:"required"`
	Where  []Condition `json:"where" validate:"required,min=1,dive"`
	Update Data        `json:"update"`
}

// UpdateManyRequest 批量更新，返回影响的记录数
type UpdateManyRequest struct {
	Model  string      `json:"model" validate:"required"`
	Where  []Condition `json:"where,omitempty" validate:"omitempty,dive"`
	Update Data        `json:"update"`
}

// DeleteRequest 删除单条记录
type DeleteRequest struct {
	Model string      `json:"model" validate:"required"`
	Where []Condition `json:"where" validate:"required,min=1,dive"`
}

// DeleteManyRequest 批量删除，返回删除的记录数
type DeleteManyRequest struct {
	Model string      `json:"model" validate:"required"`
	Where []Condition `json:"where,omitempty" validate:"omitempty,dive"`
}

func (*CountRequest) Method() Method      { return MethodCount }
func (*FindOneRequest) Method() Method    { return MethodFindOne }
func (*FindManyRequest) Method() Method   { return MethodFindMany }
func (*CreateRequest) Method() Method     { return MethodCreate }
func (*UpdateRequest) Method() Method     { return MethodUpdate }
func (*UpdateManyRequest) Method() Method { return MethodUpdateMany }
func (*DeleteRequest) Method() Method     { return MethodDelete }
func (*DeleteManyRequest) Method() Method { return MethodDeleteMany }

func (*CountRequest) request()      {}
func (*FindOneRequest) request()    {}
func (*FindManyRequest) request()   {}
func (*CreateRequest) request()     {}
func (*UpdateRequest) request()     {}
func (*UpdateManyRequest) request() {}
func (*DeleteRequest) request()     {}
func (*DeleteManyRequest) request() {}

// ModelOf 返回请求的模型名
func ModelOf(req Request) string {
	switch r := req.(type) {
	case *CountRequest:
		return r.Model
	case *FindOneRequest:
		return r.Model
	case *FindManyRequest:
		return r.Model
	case *CreateRequest:
		return r.Model
	case *UpdateRequest:
		return r.Model
	case *UpdateManyRequest:
		return r.Model
	case *DeleteRequest:
		return r.Model
	case *DeleteManyRequest:
		return r.Model
	}
	return ""
}
