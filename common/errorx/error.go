package errorx

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// BizError 业务错误，实现 error 接口
type BizError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	cause error
}

// Error 实现 error 接口
func (e *BizError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("BizError: code=%d, message=%s, cause=%v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("BizError: code=%d, message=%s", e.Code, e.Message)
}

// Unwrap 返回底层错误，支持 errors.Is / errors.As
func (e *BizError) Unwrap() error {
	return e.cause
}

// HTTPStatus 获取对应的 HTTP 状态码
func (e *BizError) HTTPStatus() int {
	return HTTPStatus(e.Code)
}

// New 创建业务错误（使用默认消息）
func New(code int) *BizError {
	return &BizError{
		Code:    code,
		Message: GetMessage(code),
	}
}

// NewWithMessage 创建业务错误（自定义消息）
func NewWithMessage(code int, message string) *BizError {
	return &BizError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装底层错误。消息保持默认文案，底层错误只用于日志和 errors.Is
func Wrap(code int, err error) *BizError {
	return &BizError{
		Code:    code,
		Message: GetMessage(code),
		cause:   err,
	}
}

// Is 判断是否为特定错误码
func Is(err error, code int) bool {
	var bizErr *BizError
	if errors.As(err, &bizErr) {
		return bizErr.Code == code
	}
	return false
}

// IsDomain 判断是否为业务规则错误（报名状态相关），这类错误不代表存储故障
func IsDomain(err error) bool {
	var bizErr *BizError
	if !errors.As(err, &bizErr) {
		return false
	}
	switch bizErr.Code {
	case CodeActivityNotFound, CodeAlreadyEnrolled, CodeNotEnrolled, CodeInvalidParams:
		return true
	default:
		return false
	}
}

// FromError 从 error 转换为 BizError
//  1. *BizError（含 errors.Wrap 包装）：直接返回
//  2. 其他错误：返回内部错误（隐藏细节）
func FromError(err error) *BizError {
	if err == nil {
		return nil
	}

	var bizErr *BizError
	if errors.As(pkgerrors.Cause(err), &bizErr) {
		return bizErr
	}

	return Wrap(CodeInternalError, err)
}

// ============ 常用错误快捷方法 ============

// ErrInvalidParams 参数错误
func ErrInvalidParams(msg string) *BizError {
	if msg == "" {
		return New(CodeInvalidParams)
	}
	return NewWithMessage(CodeInvalidParams, msg)
}

// ErrNotFound 资源不存在
func ErrNotFound() *BizError {
	return New(CodeNotFound)
}

// ErrStorageUnavailable 存储不可用（连接失败、事务失败、熔断打开）
func ErrStorageUnavailable(err error) *BizError {
	return Wrap(CodeServiceUnavailable, err)
}

// ============ 报名相关错误 ============

// ErrActivityNotFound 活动不存在
func ErrActivityNotFound() *BizError {
	return New(CodeActivityNotFound)
}

// ErrAlreadyEnrolled 已报名
func ErrAlreadyEnrolled() *BizError {
	return New(CodeAlreadyEnrolled)
}

// ErrNotEnrolled 未报名（包括成员不存在）
func ErrNotEnrolled() *BizError {
	return New(CodeNotEnrolled)
}
