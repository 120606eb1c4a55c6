package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/errors"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/response"
)

// handleServiceError 将 Service 层错误映射为 HTTP 响应
//
// 业务错误按类别映射状态码并透传业务码；其余错误一律 500，
// 非 release 模式下在 details 中附带原始错误信息
func handleServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	appErr, ok := apperrors.As(err)
	if !ok {
		if gin.Mode() != gin.ReleaseMode {
			response.ErrorWithDetails(c, http.StatusInternalServerError, 50000, "服务器内部错误", err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Error(c, statusOf(appErr.Kind), appErr.Code, appErr.Message)
}

func statusOf(kind error) int {
	switch {
	case errors.Is(kind, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, apperrors.ErrValidation), errors.Is(kind, apperrors.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(kind, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// handleBindError 请求参数校验失败；读取请求体超限时返回 413
func handleBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
		return
	}
	if gin.Mode() != gin.ReleaseMode {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
		return
	}
	response.BadRequest(c, 10001, "参数校验失败")
}
