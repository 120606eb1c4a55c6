package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const (
	headerRequestID = "X-Request-ID"

	requestIDKey = "request_id"
	traceIDKey   = "trace_id"
)

// RequestID 为每个请求分配追踪 ID
// 沿用客户端传入的合法 ID，否则生成 UUID；存在 span 时一并记录 trace_id
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(headerRequestID)
		if !validRequestID(rid) {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Header(headerRequestID, rid)

		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			c.Set(traceIDKey, sc.TraceID().String())
		}

		c.Next()
	}
}

// validRequestID 只接受 64 位以内的可打印 ASCII，避免污染日志
func validRequestID(rid string) bool {
	if rid == "" || len(rid) > 64 {
		return false
	}
	for i := 0; i < len(rid); i++ {
		if rid[i] < 0x21 || rid[i] > 0x7e {
			return false
		}
	}
	return true
}
