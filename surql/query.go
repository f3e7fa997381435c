// Package surql 提供 SurrealQL 查询文本的构建工具
//
// Query 分别按顺序保存文本片段和绑定参数，只在序列化时拼接成 $bind__N 占位符，
// 参数值不会被插入到查询文本中
package surql

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BindPrefix 绑定参数名前缀，参数名为 bind__1、bind__2 ...
const BindPrefix = "bind__"

// Query SurrealQL 查询
// 不变式：len(texts) == len(values) + 1，len(fields) == len(values)
type Query struct {
	texts  []string
	values []any
	fields []string
}

// New 创建空查询
func New() *Query {
	return &Query{texts: []string{""}}
}

// Append 追加查询文本
func (q *Query) Append(text string) *Query {
	q.texts[len(q.texts)-1] += text
	return q
}

// Bind 追加一个绑定参数
func (q *Query) Bind(value any) *Query {
	return q.BindField("", value)
}

// BindField 追加一个绑定参数，并记录参数对应的字段名
func (q *Query) BindField(field string, value any) *Query {
	q.values = append(q.values, value)
	q.fields = append(q.fields, field)
	q.texts = append(q.texts, "")
	return q
}

// Text 返回带占位符的查询文本
func (q *Query) Text() string {
	var b strings.Builder
	for i, text := range q.texts {
		if i > 0 {
			b.WriteString("$")
			b.WriteString(ParamName(i))
		}
		b.WriteString(text)
	}
	return b.String()
}

func (q *Query) String() string {
	return q.Text()
}

// Segments 返回文本片段，片段之间是绑定参数
func (q *Query) Segments() []string {
	return append([]string(nil), q.texts...)
}

// Values 按出现顺序返回绑定参数
func (q *Query) Values() []any {
	return append([]any(nil), q.values...)
}

// Vars 返回参数名到参数值的映射，供执行层绑定
func (q *Query) Vars() map[string]any {
	vars := make(map[string]any, len(q.values))
	for i, v := range q.values {
		vars[ParamName(i+1)] = v
	}
	return vars
}

// LabeledVars 与 Vars 相同，但有字段名的参数键为 "bind__N.field"，用于日志输出
func (q *Query) LabeledVars() map[string]any {
	vars := make(map[string]any, len(q.values))
	for i, v := range q.values {
		name := ParamName(i + 1)
		if q.fields[i] != "" {
			name += "." + q.fields[i]
		}
		vars[name] = v
	}
	return vars
}

// ParamName 第 n 个参数的名称（从 1 开始）
func ParamName(n int) string {
	return BindPrefix + strconv.Itoa(n)
}

// Inline 将参数值以字面量形式内联，只用于日志和调试输出，不能用于执行
func (q *Query) Inline() string {
	var b strings.Builder
	for i, text := range q.texts {
		if i > 0 {
			b.WriteString(Literal(q.values[i-1]))
		}
		b.WriteString(text)
	}
	return b.String()
}

// Literal 将值格式化为 SurrealQL 字面量
func Literal(value any) string {
	switch v := value.(type) {
	case nil:
		return "NONE"
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case Table:
		return v.String()
	case RecordID:
		return v.String()
	case *RecordID:
		if v == nil {
			return "NONE"
		}
		return v.String()
	case time.Time:
		return "d" + strconv.Quote(v.UTC().Format(time.RFC3339Nano))
	case []RecordID:
		items := make([]string, len(v))
		for i, id := range v {
			items[i] = id.String()
		}
		return "[" + strings.Join(items, ", ") + "]"
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = Literal(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case []string:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = strconv.Quote(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]string, len(keys))
		for i, k := range keys {
			items[i] = EscapeIdent(k) + ": " + Literal(v[k])
		}
		return "{ " + strings.Join(items, ", ") + " }"
	default:
		return fmt.Sprint(v)
	}
}
