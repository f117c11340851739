package activity

import (
	"net/http"

	"activity-signup/app/signup/api/internal/logic/activity"
	"activity-signup/app/signup/api/internal/svc"
	"activity-signup/app/signup/api/internal/types"
	"activity-signup/common/errorx"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// 报名活动
func SignupHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SignupRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, errorx.ErrInvalidParams(err.Error()))
			return
		}
		if err := requireEmailParam(r); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := activity.NewSignupLogic(r.Context(), svcCtx)
		resp, err := l.Signup(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

// requireEmailParam 查询串必须携带 email，值可以为空（?email= 合法）
func requireEmailParam(r *http.Request) error {
	if !r.URL.Query().Has("email") {
		return errorx.ErrInvalidParams(`field "email" is not set`)
	}
	return nil
}
