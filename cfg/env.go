package cfg

import (
	"os"
	"reflect"
	"strings"
	"unicode"

	"github.com/hatlonely/surrealauth/cfg/storage"
	"github.com/pkg/errors"
)

// ApplyEnv 使用环境变量覆盖配置
// 变量名为前缀加上字段路径的大写下划线形式，如 prefix 为 SURREALAUTH 时
// Connect.Endpoint 对应 SURREALAUTH_CONNECT_ENDPOINT，GenerateID(cfg:"generateId") 对应 SURREALAUTH_GENERATE_ID
// 结构体指针只有在存在对应变量时才会被分配
func ApplyEnv(prefix string, object any) error {
	rv := reflect.ValueOf(object)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("object must be a non-nil pointer")
	}

	env := map[string]string{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return applyEnv(env, strings.ToUpper(prefix), rv.Elem())
}

func applyEnv(env map[string]string, prefix string, rv reflect.Value) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)
		if !value.CanSet() {
			continue
		}
		name := storage.FieldName(field)
		if name == "-" {
			continue
		}
		key := EnvKey(prefix, name)

		if isStruct(field.Type) {
			if !hasPrefix(env, key+"_") {
				continue
			}
			if value.Kind() == reflect.Ptr {
				if value.IsNil() {
					value.Set(reflect.New(field.Type.Elem()))
				}
				value = value.Elem()
			}
			if err := applyEnv(env, key, value); err != nil {
				return err
			}
			continue
		}

		v, ok := env[key]
		if !ok {
			continue
		}
		if err := storage.SetString(value, v); err != nil {
			return errors.WithMessagef(err, "env [%s]", key)
		}
	}
	return nil
}

func hasPrefix(env map[string]string, prefix string) bool {
	for k := range env {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// EnvKey 将字段名转换为环境变量名，驼峰在大小写边界处以下划线分隔
func EnvKey(prefix string, name string) string {
	var b strings.Builder
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteByte('_')
	}
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
