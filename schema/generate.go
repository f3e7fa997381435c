package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hatlonely/surrealauth/surql"
)

// DefaultPath 默认的 schema 输出文件
const DefaultPath = "./better-auth-schema.surql"

var storageTypes = map[string]string{
	"string":   "string",
	"number":   "number",
	"boolean":  "bool",
	"date":     "datetime",
	"number[]": "array<number>",
	"string[]": "array<string>",
}

// GenerateOptions 生成选项
type GenerateOptions struct {
	// 输出文件路径，为空时使用 DefaultPath
	File string `cfg:"file"`
	// 权限规则中使用的角色集合，为空时使用默认值
	Roles *RoleSets `cfg:"roles"`
}

// Result 生成结果
type Result struct {
	Code string `json:"code"`
	Path string `json:"path"`
}

// Generate 生成表、字段、索引定义及权限规则
// 按表、字段的声明顺序输出，nil 表和 nil 字段被跳过，每个表之后输出一个空行
func Generate(tables []*TableModel, options *GenerateOptions) (*Result, error) {
	var roles *RoleSets
	path := DefaultPath
	if options != nil {
		roles = options.Roles
		if options.File != "" {
			path = options.File
		}
	}

	available := Available(tables)
	var lines []string
	for _, table := range tables {
		if table == nil {
			continue
		}

		name := table.Name()
		tableName := surql.EscapeIdent(name)
		def := "DEFINE TABLE " + tableName + " SCHEMALESS"
		if perm := Permissions(name, available, roles); perm != "" {
			def += "\n  " + perm
		}
		lines = append(lines, def+";")

		for _, field := range table.Fields {
			if field == nil {
				continue
			}
			typ, err := StorageType(field)
			if err != nil {
				if e, ok := err.(*UnsupportedTypeError); ok {
					e.Table = name
				}
				return nil, err
			}

			fieldName := surql.EscapeIdent(field.Name())
			lines = append(lines, "DEFINE FIELD "+fieldName+" ON TABLE "+tableName+" TYPE "+typ+";")
			if field.Unique {
				index := surql.EscapeIdent(joinCamelCase(name, name, "unique"))
				lines = append(lines, "DEFINE INDEX "+index+" ON TABLE "+tableName+" COLUMNS "+fieldName+" UNIQUE;")
			}
		}
		lines = append(lines, "")
	}

	return &Result{Code: strings.Join(lines, "\n"), Path: path}, nil
}

// StorageType 字段的存储类型
// 引用字段为 record<model>，非必填字段包裹为 option<...>，模型名不转义
func StorageType(field *FieldDefinition) (string, error) {
	if field.Type.IsSequence() {
		return "", &UnsupportedTypeError{Field: field.Name(), Type: field.Type}
	}

	typ, ok := storageTypes[field.Type.Scalar]
	if field.References != nil && field.References.Model != "" {
		typ, ok = "record<"+field.References.Model+">", true
	}
	if !ok {
		return "", &UnsupportedTypeError{Field: field.Name(), Type: field.Type}
	}

	if !field.Required {
		typ = "option<" + typ + ">"
	}
	return typ, nil
}

// Available 参与生成的表名集合
func Available(tables []*TableModel) TableSet {
	set := TableSet{}
	for _, table := range tables {
		if table != nil {
			set[table.Name()] = struct{}{}
		}
	}
	return set
}

// joinCamelCase 第一段原样保留，之后每段首字母大写
func joinCamelCase(parts ...string) string {
	var b strings.Builder
	for i, part := range parts {
		if i == 0 || part == "" {
			b.WriteString(part)
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	return b.String()
}
