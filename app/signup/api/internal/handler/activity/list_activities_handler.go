package activity

import (
	"net/http"

	"activity-signup/app/signup/api/internal/logic/activity"
	"activity-signup/app/signup/api/internal/svc"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// 活动列表
func ListActivitiesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := activity.NewListActivitiesLogic(r.Context(), svcCtx)
		resp, err := l.ListActivities()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
