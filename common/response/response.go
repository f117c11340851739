package response

import (
	"context"
	"net/http"

	"activity-signup/common/errorx"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// ErrorBody 统一错误响应结构
//
// detail 只是给人看的简短描述，调用方不应解析
type ErrorBody struct {
	Detail string `json:"detail"`
}

// SetupGlobalErrorHandler 设置 go-zero 全局错误处理器
//
// 所有 httpx.ErrorCtx 调用都会走这里：
//   - BizError：按错误码映射 HTTP 状态码
//   - 其他错误：500，细节只写日志
//
// 必须在 server.Start() 之前调用
func SetupGlobalErrorHandler() {
	httpx.SetErrorHandlerCtx(func(ctx context.Context, err error) (int, any) {
		return Render(ctx, err)
	})
}

// Render 把 error 转成状态码和响应体
func Render(ctx context.Context, err error) (int, any) {
	bizErr := errorx.FromError(err)
	status := bizErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logx.WithContext(ctx).Errorf("[Response] 请求失败: code=%d, err=%v", bizErr.Code, err)
	}
	return status, ErrorBody{Detail: bizErr.Message}
}

// Fail 直接写错误响应（用于 NotFound 等不经过 httpx.ErrorCtx 的场景）
func Fail(ctx context.Context, w http.ResponseWriter, err error) {
	status, body := Render(ctx, err)
	httpx.WriteJsonCtx(ctx, w, status, body)
}
