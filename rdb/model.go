package rdb

// IDField 标识字段，存储形式为 table:key 的记录标识
const IDField = "id"

// Reference 引用的目标模型
type Reference struct {
	Model string `json:"model" yaml:"model"`
}

// FieldAttributes 字段属性
type FieldAttributes struct {
	Type       string     `json:"type,omitempty"`
	Required   bool       `json:"required,omitempty"`
	Unique     bool       `json:"unique,omitempty"`
	References *Reference `json:"references,omitempty"`
}

// IsReference 是否是引用字段
func (a *FieldAttributes) IsReference() bool {
	return a != nil && a.References != nil && a.References.Model != ""
}

// FieldResolver 字段元数据查询
// 同一次翻译中结果必须一致，翻译器不缓存查询结果
type FieldResolver interface {
	// FieldName 逻辑字段名对应的存储字段名，未知字段返回 false
	FieldName(model, field string) (string, bool)
	// FieldAttributes 字段属性，未知字段返回 false
	FieldAttributes(model, field string) (*FieldAttributes, bool)
}

// IdentityResolver 字段名原样映射，没有任何属性
type IdentityResolver struct{}

func (IdentityResolver) FieldName(model, field string) (string, bool) {
	return field, field != ""
}

func (IdentityResolver) FieldAttributes(model, field string) (*FieldAttributes, bool) {
	return nil, false
}

// ResolverFunc 由两个函数组成的 FieldResolver
type ResolverFunc struct {
	Name       func(model, field string) (string, bool)
	Attributes func(model, field string) (*FieldAttributes, bool)
}

func (r ResolverFunc) FieldName(model, field string) (string, bool) {
	if r.Name == nil {
		return IdentityResolver{}.FieldName(model, field)
	}
	return r.Name(model, field)
}

func (r ResolverFunc) FieldAttributes(model, field string) (*FieldAttributes, bool) {
	if r.Attributes == nil {
		return nil, false
	}
	return r.Attributes(model, field)
}
