package activity

import (
	"context"

	"activity-signup/app/signup/api/internal/svc"
	"activity-signup/app/signup/api/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type SignupLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 报名活动
func NewSignupLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SignupLogic {
	return &SignupLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SignupLogic) Signup(req *types.SignupRequest) (*types.MessageResponse, error) {
	conf, err := l.svcCtx.Enrollment.Enroll(l.ctx, req.ActivityName, req.Email)
	if err != nil {
		return nil, err
	}
	return &types.MessageResponse{Message: conf.Message}, nil
}
