package surql

import (
	"fmt"
	"strconv"
	"strings"
)

// Table 表目标，查询时作为绑定参数传递
type Table string

func (t Table) String() string {
	return EscapeIdent(string(t))
}

// RecordID 记录标识，由表名和表内 key 组成，文本形式为 table:key
type RecordID struct {
	Table string
	Key   any
}

// NewRecordID 创建记录标识，value 本身已是 RecordID 时直接返回
func NewRecordID(table string, key any) RecordID {
	if id, ok := key.(RecordID); ok {
		return id
	}
	if id, ok := key.(*RecordID); ok && id != nil {
		return *id
	}
	return RecordID{Table: table, Key: key}
}

func (r RecordID) String() string {
	return EscapeIdent(r.Table) + ":" + formatKey(r.Key)
}

// KeyString 返回不带表名前缀和转义符的 key
func (r RecordID) KeyString() string {
	switch k := r.Key.(type) {
	case string:
		return k
	case nil:
		return ""
	default:
		return fmt.Sprint(k)
	}
}

func formatKey(key any) string {
	switch k := key.(type) {
	case string:
		return EscapeIdent(k)
	case int:
		return strconv.Itoa(k)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(k)
	case float64:
		if k == float64(int64(k)) {
			return strconv.FormatInt(int64(k), 10)
		}
		return EscapeIdent(strconv.FormatFloat(k, 'f', -1, 64))
	default:
		return EscapeIdent(fmt.Sprint(k))
	}
}

// StripRecordID 将记录标识还原为裸 key
// RecordID 直接取 key；字符串去掉 table: 前缀和 ⟨⟩ 转义；其他值原样返回
func StripRecordID(table string, value any) any {
	switch v := value.(type) {
	case RecordID:
		return v.KeyString()
	case *RecordID:
		if v == nil {
			return nil
		}
		return v.KeyString()
	case string:
		v = strings.TrimPrefix(v, EscapeIdent(table)+":")
		return unescapeIdent(v)
	default:
		return value
	}
}
