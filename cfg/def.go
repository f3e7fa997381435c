package cfg

import (
	"reflect"
	"time"

	"github.com/hatlonely/surrealauth/cfg/storage"
	"github.com/pkg/errors"
)

// SetDefaults 根据 def tag 为零值字段设置默认值
// 嵌套结构体递归处理，为 nil 的结构体指针会被分配
func SetDefaults(object any) error {
	rv := reflect.ValueOf(object)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("object must be a non-nil pointer")
	}
	return setDefaults(rv.Elem())
}

var timeType = reflect.TypeOf(time.Time{})

func setDefaults(rv reflect.Value) error {
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct || rv.Type() == timeType {
		return nil
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)
		if !value.CanSet() {
			continue
		}

		if isStruct(field.Type) {
			if err := setDefaults(value); err != nil {
				return errors.WithMessagef(err, "field [%s]", field.Name)
			}
			continue
		}

		def, ok := field.Tag.Lookup("def")
		if !ok || !value.IsZero() {
			continue
		}
		if err := storage.SetString(value, def); err != nil {
			return errors.WithMessagef(err, "field [%s] default [%s]", field.Name, def)
		}
	}
	return nil
}

func isStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct && t != timeType
}
