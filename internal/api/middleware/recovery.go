package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/response"
)

// Recovery 捕获 panic 并返回统一的 500 响应
// release 为 false 时在 details 中附带 panic 信息
func Recovery(logger *zap.Logger, release bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			logger.Error("请求处理发生 panic",
				zap.Any("panic", rec),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString(requestIDKey)),
				zap.ByteString("stack", debug.Stack()),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			if release {
				response.InternalError(c)
			} else {
				response.ErrorWithDetails(c, http.StatusInternalServerError, 50000, "服务器内部错误", fmt.Sprint(rec))
			}
			c.Abort()
		}()

		c.Next()
	}
}
