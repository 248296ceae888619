package handler

import (
	"bytes"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// wrapCachedData 将缓存层返回的原始 JSON 包进统一响应结构，
// 避免对缓存字节做一次多余的反序列化。
func wrapCachedData(c *gin.Context, data []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"code":200,"message":"success","data":`)
	buf.Write(data)
	if traceID := c.GetString("trace_id"); traceID != "" {
		buf.WriteString(`,"trace_id":`)
		encoded, _ := json.Marshal(traceID)
		buf.Write(encoded)
	}
	buf.WriteString(`}`)
	return buf.Bytes()
}
