// ============================================================================
// 路由注册
// ============================================================================
//
// 中间件执行顺序：
//   TraceID -> Handler
//
// 未匹配的路由（含 /static/*）交给 NotFoundHandler
//
// ============================================================================

package handler

import (
	"net/http"

	"activity-signup/app/signup/api/internal/handler/activity"
	"activity-signup/app/signup/api/internal/svc"
	"activity-signup/common/middleware"

	"github.com/zeromicro/go-zero/rest"
)

// RegisterHandlers 注册所有路由
func RegisterHandlers(server *rest.Server, svcCtx *svc.ServiceContext) {
	// ==================== 全局中间件 ====================
	server.Use(middleware.TraceIDMiddleware)

	server.AddRoutes(Routes(svcCtx))
}

// Routes 全部路由定义
func Routes(svcCtx *svc.ServiceContext) []rest.Route {
	return []rest.Route{
		// ==================== 页面 / 健康检查 ====================
		{
			Method:  http.MethodGet,
			Path:    "/",
			Handler: RootRedirectHandler(),
		},
		{
			Method:  http.MethodGet,
			Path:    "/health",
			Handler: HealthHandler(svcCtx),
		},

		// ==================== 活动报名 ====================
		{
			Method:  http.MethodGet,
			Path:    "/activities",
			Handler: activity.ListActivitiesHandler(svcCtx),
		},
		{
			Method:  http.MethodPost,
			Path:    "/activities/:activity_name/signup",
			Handler: activity.SignupHandler(svcCtx),
		},
		{
			Method:  http.MethodDelete,
			Path:    "/activities/:activity_name/unregister",
			Handler: activity.UnregisterHandler(svcCtx),
		},
	}
}
