package surql

import "strings"

// EscapeIdent 转义 SurrealQL 标识符
// 只由字母、数字、下划线组成且不以数字开头的标识符原样返回，其余使用 ⟨⟩ 包裹
func EscapeIdent(name string) string {
	if isPlainIdent(name) {
		return name
	}
	return "⟨" + strings.ReplaceAll(name, "⟩", `\⟩`) + "⟩"
}

func isPlainIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// unescapeIdent 去掉 ⟨⟩ 包裹并还原转义
func unescapeIdent(s string) string {
	if strings.HasPrefix(s, "⟨") && strings.HasSuffix(s, "⟩") && len(s) >= len("⟨⟩") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "⟨"), "⟩")
	}
	return strings.ReplaceAll(s, `\⟩`, "⟩")
}
