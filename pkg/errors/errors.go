// Package errors 定义业务错误分类。
//
// 服务层的哨兵错误通过 New 包装一个错误类别（NotFound / Forbidden / Validation /
// Conflict / Unauthorized / Internal），Handler 层用 errors.Is 判断类别并映射为 HTTP 状态码。
package errors

import "errors"

// 错误类别
var (
	ErrNotFound     = errors.New("资源不存在")
	ErrForbidden    = errors.New("无权操作")
	ErrValidation   = errors.New("参数校验失败")
	ErrConflict     = errors.New("操作冲突")
	ErrUnauthorized = errors.New("未认证")
	ErrInternal     = errors.New("内部错误")
)

// Error 带类别与业务码的错误
type Error struct {
	Kind    error
	Code    int
	Message string
}

// New 创建业务错误
func New(kind error, code int, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string { return e.Message }

// Unwrap 使 errors.Is(err, ErrNotFound) 等类别判断生效
func (e *Error) Unwrap() error { return e.Kind }

// As 提取业务错误；非业务错误返回 nil, false
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
