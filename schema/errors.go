package schema

import "fmt"

// UnsupportedTypeError 字段类型无法映射为存储类型
type UnsupportedTypeError struct {
	Table string
	Field string
	Type  FieldType
}

func (e *UnsupportedTypeError) Error() string {
	if e.Type.IsSequence() {
		return fmt.Sprintf("array type not supported: %s", e.Type)
	}
	return fmt.Sprintf("unsupported type: %q", e.Type.Scalar)
}
