package middleware

import (
	"net/http"

	"activity-signup/common/ctxdata"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

// TraceIDMiddleware 为每个请求注入 request_id / trace_id
//
// 工作流程：
//  1. request_id 优先取 X-Request-ID，没有则生成 UUID
//  2. trace_id 优先取 X-Trace-ID，没有则沿用 request_id
//  3. 两者注入 context，trace_id 同时挂到 logx 字段上
//  4. 回写响应头，方便前端排查
//
// 使用方式：
//
//	server.Use(middleware.TraceIDMiddleware)
func TraceIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		traceID := r.Header.Get(HeaderTraceID)
		if traceID == "" {
			traceID = requestID
		}

		ctx := ctxdata.WithRequestID(r.Context(), requestID)
		ctx = ctxdata.WithTraceID(ctx, traceID)
		ctx = logx.ContextWithFields(ctx, logx.Field("trace_id", traceID))

		w.Header().Set(HeaderRequestID, requestID)
		w.Header().Set(HeaderTraceID, traceID)

		next(w, r.WithContext(ctx))
	}
}
