package adapter

import (
	"github.com/hatlonely/surrealauth/rdb"
	"github.com/hatlonely/surrealauth/surql"
)

// TransformOutput 将结果行中的记录标识还原为裸 key
// id 使用请求模型去前缀，引用字段使用被引用的模型去前缀；非 map 的结果原样返回
func TransformOutput(resolver rdb.FieldResolver, model string, row any) any {
	m, ok := row.(map[string]any)
	if !ok {
		return row
	}

	out := make(map[string]any, len(m))
	for k, v := range m {
		switch {
		case k == rdb.IDField:
			out[k] = surql.StripRecordID(model, v)
		case resolver != nil:
			if attrs, ok := resolver.FieldAttributes(model, k); ok && attrs.IsReference() {
				out[k] = stripReference(attrs.References.Model, v)
				continue
			}
			out[k] = v
		default:
			out[k] = v
		}
	}
	return out
}

func stripReference(model string, v any) any {
	switch val := v.(type) {
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = surql.StripRecordID(model, item)
		}
		return items
	case []surql.RecordID:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = item.KeyString()
		}
		return items
	default:
		return surql.StripRecordID(model, v)
	}
}

// TransformRows 对结果集逐行转换，结果不是列表时视为单行
func TransformRows(resolver rdb.FieldResolver, model string, result any) []any {
	switch rows := result.(type) {
	case nil:
		return []any{}
	case []any:
		out := make([]any, len(rows))
		for i, row := range rows {
			out[i] = TransformOutput(resolver, model, row)
		}
		return out
	case []map[string]any:
		out := make([]any, len(rows))
		for i, row := range rows {
			out[i] = TransformOutput(resolver, model, row)
		}
		return out
	default:
		return []any{TransformOutput(resolver, model, rows)}
	}
}
