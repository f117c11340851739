package activity

import (
	"net/http"

	"activity-signup/app/signup/api/internal/logic/activity"
	"activity-signup/app/signup/api/internal/svc"
	"activity-signup/app/signup/api/internal/types"
	"activity-signup/common/errorx"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// 退出报名
func UnregisterHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
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

		l := activity.NewUnregisterLogic(r.Context(), svcCtx)
		resp, err := l.Unregister(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
