package story

import (
	"strings"
)

// ExtractJSONArray 从模型输出中截取最宽的 "[...]" 片段。
// 这是一个容错逻辑：模型可能会在 JSON 数组前后夹杂多余文本，
// 此处只做括号定位，不做严格解析；解析交给调用方。
func ExtractJSONArray(s string) (string, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return "", false
	}

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}
