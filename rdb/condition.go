package rdb

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Operator 条件操作符
type Operator string

const (
	OperatorEq         Operator = "eq"
	OperatorNe         Operator = "ne"
	OperatorGt         Operator = "gt"
	OperatorGte        Operator = "gte"
	OperatorLt         Operator = "lt"
	OperatorLte        Operator = "lte"
	OperatorIn         Operator = "in"
	OperatorStartsWith Operator = "starts_with"
	OperatorEndsWith   Operator = "ends_with"
	OperatorContains   Operator = "contains"
)

// Valid 是否是支持的操作符
func (o Operator) Valid() bool {
	switch o {
	case OperatorEq, OperatorNe, OperatorGt, OperatorGte, OperatorLt, OperatorLte,
		OperatorIn, OperatorStartsWith, OperatorEndsWith, OperatorContains:
		return true
	}
	return false
}

// StringMatch 字符串匹配类操作符无法通过记录标识直接寻址
func (o Operator) StringMatch() bool {
	return o == OperatorStartsWith || o == OperatorEndsWith || o == OperatorContains
}

// Connector 条件连接符，决定当前条件与前一个条件的组合方式
type Connector string

const (
	ConnectorAnd Connector = "AND"
	ConnectorOr  Connector = "OR"
)

// Normalize 空值及未知值按 AND 处理，OR 不区分大小写
func (c Connector) Normalize() Connector {
	if strings.EqualFold(string(c), string(ConnectorOr)) {
		return ConnectorOr
	}
	return ConnectorAnd
}

// Condition 过滤条件
type Condition struct {
	Field     string    `json:"field" validate:"required"`
	Operator  Operator  `json:"operator,omitempty"`
	Value     any       `json:"value"`
	Connector Connector `json:"connector,omitempty"`
}

// op 操作符缺省为 eq
func (c *Condition) op() Operator {
	if c.Operator == "" {
		return OperatorEq
	}
	return c.Operator
}

// SortBy 排序
type SortBy struct {
	Field     string `json:"field" validate:"required"`
	Direction string `json:"direction"`
}

// Ascending direction 为 asc 时升序，其余降序
func (s *SortBy) Ascending() bool {
	return strings.EqualFold(s.Direction, "asc")
}

// Pair 键值对
type Pair struct {
	Key   string
	Value any
}

// Data 有序的写入数据，按键的声明顺序生成赋值语句
type Data []Pair

// NewData 按 key1, value1, key2, value2 ... 的顺序创建 Data
func NewData(kvs ...any) Data {
	data := make(Data, 0, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		key, _ := kvs[i].(string)
		data = append(data, Pair{Key: key, Value: kvs[i+1]})
	}
	return data
}

// Get 获取字段值
func (d Data) Get(key string) (any, bool) {
	for _, p := range d {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Has 是否包含字段
func (d Data) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Keys 按顺序返回所有键
func (d Data) Keys() []string {
	keys := make([]string, len(d))
	for i, p := range d {
		keys[i] = p.Key
	}
	return keys
}

// With 返回设置了字段值的副本，已存在的键原位替换，否则追加到末尾
func (d Data) With(key string, value any) Data {
	out := make(Data, len(d), len(d)+1)
	copy(out, d)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Pair{Key: key, Value: value})
}

// Map 转换为 map，丢失顺序
func (d Data) Map() map[string]any {
	m := make(map[string]any, len(d))
	for _, p := range d {
		m[p.Key] = p.Value
	}
	return m
}

func (d Data) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, errors.Wrapf(err, "marshal key [%s] failed", p.Key)
		}
		val, err := json.Marshal(p.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "marshal value of [%s] failed", p.Key)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *Data) UnmarshalJSON(buf []byte) error {
	dec := json.NewDecoder(bytes.NewReader(buf))
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "decode data failed")
	}
	if tok == nil {
		*d = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("data should be an object, got [%v]", tok)
	}

	data := Data{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return errors.Wrap(err, "decode data key failed")
		}
		key, ok := tok.(string)
		if !ok {
			return errors.Errorf("invalid data key [%v]", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return errors.Wrapf(err, "decode value of [%s] failed", key)
		}
		data = append(data, Pair{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return errors.Wrap(err, "decode data failed")
	}

	*d = data
	return nil
}
