// Package schema 根据表描述生成 SurrealQL 表、字段、索引定义以及行级权限规则
package schema

import (
	"encoding/json"
	"strings"

	"github.com/hatlonely/surrealauth/rdb"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// TableModel 表描述
type TableModel struct {
	Key       string             `yaml:"-" json:"-"`
	ModelName string             `yaml:"modelName" json:"modelName"`
	Fields    []*FieldDefinition `yaml:"-" json:"-"`
}

// Name 表名，未指定 modelName 时使用声明的 key
func (t *TableModel) Name() string {
	if t.ModelName != "" {
		return t.ModelName
	}
	return t.Key
}

// Field 按声明的 key 查找字段
func (t *TableModel) Field(key string) (*FieldDefinition, bool) {
	for _, f := range t.Fields {
		if f != nil && f.Key == key {
			return f, true
		}
	}
	return nil, false
}

// FieldDefinition 字段描述
type FieldDefinition struct {
	Key        string         `yaml:"-" json:"-"`
	FieldName  string         `yaml:"fieldName" json:"fieldName,omitempty"`
	Type       FieldType      `yaml:"type" json:"type"`
	Required   bool           `yaml:"required" json:"required,omitempty"`
	Unique     bool           `yaml:"unique" json:"unique,omitempty"`
	References *rdb.Reference `yaml:"references" json:"references,omitempty"`
}

// Name 存储字段名，未指定 fieldName 时使用声明的 key
func (f *FieldDefinition) Name() string {
	if f.FieldName != "" {
		return f.FieldName
	}
	return f.Key
}

// FieldType 字段的逻辑类型，为标量类型名或字面量序列
type FieldType struct {
	Scalar   string
	Sequence []string
}

// Scalar 标量类型
func Scalar(name string) FieldType {
	return FieldType{Scalar: name}
}

// Literals 字面量序列类型
func Literals(values ...string) FieldType {
	if values == nil {
		values = []string{}
	}
	return FieldType{Sequence: values}
}

// IsSequence 是否是字面量序列
func (t FieldType) IsSequence() bool {
	return t.Sequence != nil
}

func (t FieldType) String() string {
	if t.IsSequence() {
		buf, _ := json.Marshal(t.Sequence)
		return string(buf)
	}
	return t.Scalar
}

func (t FieldType) MarshalJSON() ([]byte, error) {
	if t.IsSequence() {
		return json.Marshal(t.Sequence)
	}
	return json.Marshal(t.Scalar)
}

func (t *FieldType) UnmarshalJSON(buf []byte) error {
	if strings.HasPrefix(strings.TrimSpace(string(buf)), "[") {
		var values []string
		if err := json.Unmarshal(buf, &values); err != nil {
			return errors.Wrap(err, "decode type sequence failed")
		}
		*t = Literals(values...)
		return nil
	}
	var name string
	if err := json.Unmarshal(buf, &name); err != nil {
		return errors.Wrap(err, "decode type failed")
	}
	*t = Scalar(name)
	return nil
}

func (t *FieldType) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = Scalar(node.Value)
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return errors.Wrap(err, "decode type sequence failed")
		}
		*t = Literals(values...)
		return nil
	}
	return errors.Errorf("line %d: type should be a string or a list", node.Line)
}
