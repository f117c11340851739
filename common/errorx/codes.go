/**
 * @projectName: activity-signup
 * @package: errorx
 * @className: codes
 * @description: 统一错误码定义
 * @version: 1.0
 */

package errorx

import "net/http"

// 错误码规范：
// 0       - 成功
// 1xxx    - 通用错误
// 3xxx    - 报名服务错误

const (
	CodeSuccess            = 0    // 成功
	CodeInternalError      = 1000 // 内部服务器错误
	CodeInvalidParams      = 1001 // 参数校验失败
	CodeNotFound           = 1004 // 资源不存在
	CodeServiceUnavailable = 1006 // 存储不可用

	// 报名服务 3001-3010
	CodeActivityNotFound = 3001 // 活动不存在
	CodeAlreadyEnrolled  = 3002 // 已报名
	CodeNotEnrolled      = 3003 // 未报名
)

// codeMessages 错误码对应的默认消息（前端直接展示，保持英文）
var codeMessages = map[int]string{
	CodeSuccess:            "success",
	CodeInternalError:      "Internal Server Error",
	CodeInvalidParams:      "Invalid request parameters",
	CodeNotFound:           "Not Found",
	CodeServiceUnavailable: "Storage unavailable",
	CodeActivityNotFound:   "Activity not found",
	CodeAlreadyEnrolled:    "Student is already signed up",
	CodeNotEnrolled:        "Student is not signed up for this activity",
}

// codeStatus 错误码到 HTTP 状态码的映射
var codeStatus = map[int]int{
	CodeSuccess:            http.StatusOK,
	CodeInternalError:      http.StatusInternalServerError,
	CodeInvalidParams:      http.StatusUnprocessableEntity,
	CodeNotFound:           http.StatusNotFound,
	CodeServiceUnavailable: http.StatusInternalServerError,
	CodeActivityNotFound:   http.StatusNotFound,
	CodeAlreadyEnrolled:    http.StatusBadRequest,
	CodeNotEnrolled:        http.StatusBadRequest,
}

// GetMessage 根据错误码获取默认消息
func GetMessage(code int) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	return codeMessages[CodeInternalError]
}

// HTTPStatus 根据错误码获取 HTTP 状态码，未知错误码一律 500
func HTTPStatus(code int) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
