package schema

import (
	"github.com/hatlonely/surrealauth/rdb"
)

// Resolver 基于表描述的静态字段解析器，模型可以用 modelName 或声明的 key 查找
type Resolver struct {
	tables map[string]*TableModel
}

// NewResolver 创建字段解析器，nil 表被忽略
func NewResolver(tables []*TableModel) *Resolver {
	r := &Resolver{tables: map[string]*TableModel{}}
	for _, table := range tables {
		if table == nil {
			continue
		}
		if table.Key != "" {
			r.tables[table.Key] = table
		}
		r.tables[table.Name()] = table
	}
	return r
}

func (r *Resolver) field(model, field string) (*FieldDefinition, bool) {
	table, ok := r.tables[model]
	if !ok {
		return nil, false
	}
	if f, ok := table.Field(field); ok {
		return f, true
	}
	for _, f := range table.Fields {
		if f != nil && f.FieldName == field {
			return f, true
		}
	}
	return nil, false
}

// FieldName 标识字段总是可以解析，其余字段返回 fieldName 或声明的 key
func (r *Resolver) FieldName(model, field string) (string, bool) {
	if field == rdb.IDField {
		_, ok := r.tables[model]
		return rdb.IDField, ok
	}
	f, ok := r.field(model, field)
	if !ok {
		return "", false
	}
	return f.Name(), true
}

func (r *Resolver) FieldAttributes(model, field string) (*rdb.FieldAttributes, bool) {
	f, ok := r.field(model, field)
	if !ok {
		return nil, false
	}
	return &rdb.FieldAttributes{
		Type:       f.Type.String(),
		Required:   f.Required,
		Unique:     f.Unique,
		References: f.References,
	}, true
}

// Reference 字段引用的模型
func (r *Resolver) Reference(model, field string) (string, bool) {
	attrs, ok := r.FieldAttributes(model, field)
	if !ok || !attrs.IsReference() {
		return "", false
	}
	return attrs.References.Model, true
}
