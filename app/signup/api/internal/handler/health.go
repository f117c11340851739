// ============================================================================
// 健康检查与首页跳转
// ============================================================================

package handler

import (
	"context"
	"net/http"
	"time"

	"activity-signup/app/signup/api/internal/svc"
	"activity-signup/app/signup/api/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// IndexPath 静态首页地址
const IndexPath = "/static/index.html"

var startTime = time.Now()

// RootRedirectHandler 首页跳转
// GET /
func RootRedirectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
	}
}

// HealthHandler 健康检查接口
// GET /health
// 用途：容器探针、负载均衡健康检查；数据库不可达时返回 503
func HealthHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := types.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().Format(time.RFC3339),
			Uptime:    time.Since(startTime).String(),
			Database:  "up",
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := svcCtx.Gateway.Ping(ctx); err != nil {
			logx.WithContext(r.Context()).Errorf("[Health] 数据库不可达: %v", err)
			resp.Status = "unhealthy"
			resp.Database = "down"
			httpx.WriteJsonCtx(r.Context(), w, http.StatusServiceUnavailable, resp)
			return
		}

		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
