package activity

import (
	"context"

	"activity-signup/app/signup/api/internal/svc"
	"activity-signup/app/signup/api/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type UnregisterLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 退出报名
func NewUnregisterLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UnregisterLogic {
	return &UnregisterLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *UnregisterLogic) Unregister(req *types.SignupRequest) (*types.MessageResponse, error) {
	conf, err := l.svcCtx.Enrollment.Withdraw(l.ctx, req.ActivityName, req.Email)
	if err != nil {
		return nil, err
	}
	return &types.MessageResponse{Message: conf.Message}, nil
}
