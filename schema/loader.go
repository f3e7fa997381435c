package schema

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadTables 从 YAML 或 JSON 文件加载表描述
func LoadTables(filename string) ([]*TableModel, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "os.ReadFile [%s] failed", filename)
	}
	tables, err := ParseTables(buf)
	if err != nil {
		return nil, errors.WithMessagef(err, "parse [%s] failed", filename)
	}
	return tables, nil
}

// ParseTables 解析表描述，保留表和字段的声明顺序
//
//	user:
//	  modelName: user
//	  fields:
//	    email: {type: string, required: true, unique: true}
//	session:
//	  fields:
//	    userId: {type: string, required: true, references: {model: user}}
//
// 值为 null 的表或字段保留为 nil
func ParseTables(buf []byte) ([]*TableModel, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, errors.Wrap(err, "yaml.Unmarshal failed")
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if isNull(root) {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.Errorf("line %d: tables should be a mapping", root.Line)
	}

	var tables []*TableModel
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		if isNull(value) {
			tables = append(tables, nil)
			continue
		}
		table, err := parseTable(key, value)
		if err != nil {
			return nil, errors.WithMessagef(err, "table [%s]", key)
		}
		tables = append(tables, table)
	}

	return tables, nil
}

func parseTable(key string, node *yaml.Node) (*TableModel, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.Errorf("line %d: table should be a mapping", node.Line)
	}

	table := &TableModel{Key: key}
	if err := node.Decode(table); err != nil {
		return nil, errors.Wrap(err, "decode table failed")
	}

	fields := mappingValue(node, "fields")
	if fields == nil || isNull(fields) {
		return table, nil
	}
	if fields.Kind != yaml.MappingNode {
		return nil, errors.Errorf("line %d: fields should be a mapping", fields.Line)
	}

	for i := 0; i+1 < len(fields.Content); i += 2 {
		fieldKey, value := fields.Content[i].Value, fields.Content[i+1]
		if isNull(value) {
			table.Fields = append(table.Fields, nil)
			continue
		}
		field := &FieldDefinition{}
		if err := value.Decode(field); err != nil {
			return nil, errors.Wrapf(err, "decode field [%s] failed", fieldKey)
		}
		field.Key = fieldKey
		table.Fields = append(table.Fields, field)
	}

	return table, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}
