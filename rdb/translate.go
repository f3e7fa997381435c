package rdb

import (
	"reflect"
	"strings"

	"github.com/hatlonely/surrealauth/surql"
)

var binaryOperators = map[Operator]string{
	OperatorEq:       "=",
	OperatorNe:       "!=",
	OperatorGt:       ">",
	OperatorGte:      ">=",
	OperatorLt:       "<",
	OperatorLte:      "<=",
	OperatorIn:       "IN",
	OperatorContains: "CONTAINS",
}

// Translate 将请求翻译为 SurrealQL 查询
// 不修改输入；操作符不在支持范围内时返回 *UnsupportedOperatorError，此时不产生任何查询文本
// resolver 为 nil 时字段名原样使用
func Translate(req Request, resolver FieldResolver) (*surql.Query, error) {
	if isNilRequest(req) {
		return nil, ErrNilRequest
	}
	if resolver == nil {
		resolver = IdentityResolver{}
	}

	t := &translator{
		model:    ModelOf(req),
		resolver: resolver,
		query:    surql.New(),
	}

	var err error
	switch r := req.(type) {
	case *CountRequest:
		err = t.count(r)
	case *FindOneRequest:
		err = t.find(r.Select, r.Where, nil, 0, 0)
	case *FindManyRequest:
		err = t.find(r.Select, r.Where, r.SortBy, r.Limit, r.Offset)
	case *CreateRequest:
		err = t.create(r)
	case *UpdateRequest:
		err = t.update("UPDATE ", "", r.Where, r.Update)
	case *UpdateManyRequest:
		err = t.update("RETURN (UPDATE ", " RETURN true).len()", r.Where, r.Update)
	case *DeleteRequest:
		err = t.delete("DELETE ", "", r.Where)
	case *DeleteManyRequest:
		err = t.delete("RETURN (DELETE ", " RETURN true).len()", r.Where)
	default:
		err = ErrUnknownMethod
	}
	if err != nil {
		return nil, err
	}

	return t.query, nil
}

func isNilRequest(req Request) bool {
	if req == nil {
		return true
	}
	rv := reflect.ValueOf(req)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

type translator struct {
	model    string
	resolver FieldResolver
	query    *surql.Query
}

// target 解析后的查询目标
type target struct {
	ids     []surql.RecordID
	hoisted bool
	filters []Condition
}

// split 校验所有操作符，并将标识字段上的条件提升为记录标识
// in 加序列值按元素逐个转换；字符串匹配类操作符保留在过滤条件中；其余操作符转换为单个记录标识
func (t *translator) split(where []Condition) (*target, error) {
	for i := range where {
		if op := where[i].op(); !op.Valid() {
			return nil, &UnsupportedOperatorError{Operator: op, Field: where[i].Field}
		}
	}

	tg := &target{}
	for _, c := range where {
		op := c.op()
		if c.Field == IDField {
			if items, ok := sequence(c.Value); ok && op == OperatorIn {
				for _, item := range items {
					tg.ids = append(tg.ids, surql.NewRecordID(t.model, item))
				}
				tg.hoisted = true
				continue
			}
			if !op.StringMatch() {
				tg.ids = append(tg.ids, surql.NewRecordID(t.model, c.Value))
				tg.hoisted = true
				continue
			}
		}
		tg.filters = append(tg.filters, c)
	}

	return tg, nil
}

// bindTarget 有提升的记录标识时以标识列表作为目标，否则以整张表作为目标
func (t *translator) bindTarget(tg *target) {
	if tg != nil && tg.hoisted {
		ids := make([]surql.RecordID, len(tg.ids))
		copy(ids, tg.ids)
		t.query.Bind(ids)
		return
	}
	t.query.Bind(surql.Table(t.model))
}

func (t *translator) count(r *CountRequest) error {
	tg, err := t.split(r.Where)
	if err != nil {
		return err
	}
	t.query.Append("RETURN (SELECT count() FROM ")
	t.bindTarget(tg)
	t.filter(tg.filters)
	t.query.Append(" GROUP ALL).count")
	return nil
}

func (t *translator) find(columns []string, where []Condition, sortBy *SortBy, limit int, offset int) error {
	tg, err := t.split(where)
	if err != nil {
		return err
	}

	projection := "*"
	if len(columns) > 0 {
		escaped := make([]string, len(columns))
		for i, column := range columns {
			escaped[i] = surql.EscapeIdent(column)
		}
		projection = strings.Join(escaped, ", ")
	}

	t.query.Append("SELECT " + projection + " FROM ")
	t.bindTarget(tg)
	t.filter(tg.filters)

	if sortBy != nil && sortBy.Field != "" {
		field, ok := t.resolver.FieldName(t.model, sortBy.Field)
		if !ok || field == "" {
			field = sortBy.Field
		}
		direction := "DESC"
		if sortBy.Ascending() {
			direction = "ASC"
		}
		t.query.Append(" ORDER BY " + surql.EscapeIdent(field) + " " + direction)
	}
	// limit 为 0 视为未设置
	if limit > 0 {
		t.query.Append(" LIMIT ").Bind(limit)
	}
	if offset > 0 {
		t.query.Append(" START AT ").Bind(offset)
	}
	return nil
}

func (t *translator) create(r *CreateRequest) error {
	t.query.Append("CREATE ")
	t.bindTarget(nil)
	t.assign(r.Data)
	return nil
}

func (t *translator) update(head string, tail string, where []Condition, data Data) error {
	tg, err := t.split(where)
	if err != nil {
		return err
	}
	t.query.Append(head)
	t.bindTarget(tg)
	t.assign(data)
	t.filter(tg.filters)
	t.query.Append(tail)
	return nil
}

func (t *translator) delete(head string, tail string, where []Condition) error {
	tg, err := t.split(where)
	if err != nil {
		return err
	}
	t.query.Append(head)
	t.bindTarget(tg)
	t.filter(tg.filters)
	t.query.Append(tail)
	return nil
}

// assign 按数据自身的键顺序生成赋值语句，无法解析的键被忽略
func (t *translator) assign(data Data) {
	n := 0
	for _, p := range data {
		field, ok := t.resolver.FieldName(t.model, p.Key)
		if !ok || field == "" {
			continue
		}
		if n == 0 {
			t.query.Append(" SET ")
		} else {
			t.query.Append(", ")
		}
		t.query.Append(surql.EscapeIdent(field) + " = ").BindField(field, t.value(p.Key, p.Value))
		n++
	}
}

// filter 生成 WHERE 子句，第一个条件的连接符不输出
func (t *translator) filter(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			t.query.Append(" WHERE ")
		} else {
			t.query.Append(" " + string(c.Connector.Normalize()) + " ")
		}

		field := surql.EscapeIdent(c.Field)
		value := t.value(c.Field, c.Value)
		switch op := c.op(); op {
		case OperatorStartsWith:
			t.query.Append("string::starts_with(" + field + ", ").BindField(c.Field, value).Append(")")
		case OperatorEndsWith:
			t.query.Append("string::ends_with(" + field + ", ").BindField(c.Field, value).Append(")")
		default:
			t.query.Append(field + " " + binaryOperators[op] + " ").BindField(c.Field, value)
		}
	}
}

// value 引用字段的值转换为被引用模型的记录标识，序列按元素转换
func (t *translator) value(field string, v any) any {
	attrs, ok := t.resolver.FieldAttributes(t.model, field)
	if !ok || !attrs.IsReference() || v == nil {
		return v
	}
	if items, ok := sequence(v); ok {
		ids := make([]surql.RecordID, len(items))
		for i, item := range items {
			ids[i] = surql.NewRecordID(attrs.References.Model, item)
		}
		return ids
	}
	return surql.NewRecordID(attrs.References.Model, v)
}

// sequence 将切片或数组展开，[]byte 不视为序列
func sequence(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
