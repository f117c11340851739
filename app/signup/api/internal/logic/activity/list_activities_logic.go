package activity

import (
	"context"

	"activity-signup/app/signup/api/internal/svc"
	"activity-signup/app/signup/api/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type ListActivitiesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 活动列表（含报名名单）
func NewListActivitiesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListActivitiesLogic {
	return &ListActivitiesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListActivitiesLogic) ListActivities() (types.ActivityListResponse, error) {
	views, err := l.svcCtx.Enrollment.ListActivities(l.ctx)
	if err != nil {
		l.Errorf("ListActivities failed: err=%v", err)
		return nil, err
	}

	resp := make(types.ActivityListResponse, len(views))
	for _, v := range views {
		resp[v.Name] = types.ActivityEntry{
			Description:     v.Description,
			Schedule:        v.Schedule,
			MaxParticipants: v.MaxParticipants,
			Participants:    v.Participants,
		}
	}
	return resp, nil
}
