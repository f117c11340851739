package enrollment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"activity-signup/app/signup/model"
	"activity-signup/common/errorx"

	"github.com/zeromicro/go-zero/core/breaker"
	"github.com/zeromicro/go-zero/core/logx"
	"gorm.io/gorm"
)

// CatalogueSource 活动目录读取（可由缓存实现）
type CatalogueSource interface {
	GetList(ctx context.Context) ([]model.Activity, error)
}

// EventPublisher 报名事件发布，提交成功后调用，不影响主流程
type EventPublisher interface {
	PublishMemberJoined(ctx context.Context, activity *model.Activity, member *model.Member, joinedAt time.Time)
	PublishMemberLeft(ctx context.Context, activity *model.Activity, member *model.Member, leftAt time.Time)
}

// Confirmation 报名/退出成功结果
type Confirmation struct {
	Message  string
	Activity *model.Activity
	Member   *model.Member
	Outcome  model.EnsureOutcome // 仅报名时有值
}

// Deps Service 依赖
type Deps struct {
	Gateway    *model.Gateway
	Activities *model.ActivityModel
	Members    *model.MemberModel
	Signups    *model.SignupModel

	Catalogue CatalogueSource  // 可选，nil 时在会话内查表
	Breaker   breaker.Breaker  // 可选，nil 时使用默认熔断器
	Events    EventPublisher   // 可选
	Now       func() time.Time // 可选，默认 time.Now().UTC()
}

// Service 报名服务
//
// 每个 (成员, 活动) 只有两种状态：未报名 ⇄ 已报名。
// Enroll 只能从未报名进入，Withdraw 只能从已报名退出，其余情况返回对应业务错误。
// 每次操作在一个存储会话内完成，业务错误会回滚整个会话。
type Service struct {
	gateway    *model.Gateway
	activities *model.ActivityModel
	members    *model.MemberModel
	signups    *model.SignupModel
	catalogue  CatalogueSource
	breaker    breaker.Breaker
	events     EventPublisher
	now        func() time.Time
}

func NewService(deps Deps) *Service {
	s := &Service{
		gateway:    deps.Gateway,
		activities: deps.Activities,
		members:    deps.Members,
		signups:    deps.Signups,
		catalogue:  deps.Catalogue,
		breaker:    deps.Breaker,
		events:     deps.Events,
		now:        deps.Now,
	}
	if s.breaker == nil {
		s.breaker = breaker.NewBreaker(breaker.WithName("signup-enrollment"))
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	return s
}

// ==================== 报名 ====================

// Enroll 报名
//
// 顺序：
//  1. 查活动（不存在直接返回，不会创建成员）
//  2. 查找或创建成员
//  3. 已有报名记录返回 AlreadyEnrolled
//  4. 写入报名记录（唯一索引冲突同样视为 AlreadyEnrolled），提交
func (s *Service) Enroll(ctx context.Context, activityName, email string) (*Confirmation, error) {
	var (
		activity *model.Activity
		member   *model.Member
		outcome  model.EnsureOutcome
		signedAt time.Time
	)

	err := s.runSession(ctx, opEnroll, func(tx *gorm.DB) error {
		var err error
		activity, err = s.activities.WithTx(tx).FindByName(ctx, activityName)
		if err != nil {
			if errors.Is(err, model.ErrActivityNotFound) {
				return errorx.ErrActivityNotFound()
			}
			return err
		}

		member, outcome, err = s.members.WithTx(tx).Ensure(ctx, email)
		if err != nil {
			return err
		}

		signups := s.signups.WithTx(tx)
		exists, err := signups.ExistsByMemberActivity(ctx, member.ID, activity.ID)
		if err != nil {
			return err
		}
		if exists {
			return errorx.ErrAlreadyEnrolled()
		}

		signedAt = s.now()
		err = signups.Create(ctx, &model.Signup{
			MemberID:   member.ID,
			ActivityID: activity.ID,
			SignedUpAt: signedAt,
		})
		if errors.Is(err, model.ErrSignupDuplicate) {
			return errorx.ErrAlreadyEnrolled()
		}
		return err
	})
	if err != nil {
		logx.WithContext(ctx).Infof("[Enrollment] 报名失败: activity=%s, email=%s, err=%v", activityName, email, err)
		return nil, err
	}

	if outcome == model.MemberCreated {
		membersCreated.Inc()
	}
	logx.WithContext(ctx).Infof("[Enrollment] 报名成功: activity=%s, email=%s, member_id=%d, member=%s",
		activityName, email, member.ID, outcome)
	if s.events != nil {
		s.events.PublishMemberJoined(ctx, activity, member, signedAt)
	}

	return &Confirmation{
		Message:  fmt.Sprintf("Signed up %s for %s", email, activityName),
		Activity: activity,
		Member:   member,
		Outcome:  outcome,
	}, nil
}

// ==================== 退出报名 ====================

// Withdraw 退出报名
//
// 成员不存在与未报名返回同一个 NotEnrolled，不会创建成员
func (s *Service) Withdraw(ctx context.Context, activityName, email string) (*Confirmation, error) {
	var (
		activity *model.Activity
		member   *model.Member
	)

	err := s.runSession(ctx, opWithdraw, func(tx *gorm.DB) error {
		var err error
		activity, err = s.activities.WithTx(tx).FindByName(ctx, activityName)
		if err != nil {
			if errors.Is(err, model.ErrActivityNotFound) {
				return errorx.ErrActivityNotFound()
			}
			return err
		}

		member, err = s.members.WithTx(tx).FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, model.ErrMemberNotFound) {
				return errorx.ErrNotEnrolled()
			}
			return err
		}

		signups := s.signups.WithTx(tx)
		signup, err := signups.FindByMemberActivity(ctx, member.ID, activity.ID)
		if err != nil {
			if errors.Is(err, model.ErrSignupNotFound) {
				return errorx.ErrNotEnrolled()
			}
			return err
		}

		err = signups.Delete(ctx, signup.ID)
		if errors.Is(err, model.ErrSignupNotFound) {
			return errorx.ErrNotEnrolled()
		}
		return err
	})
	if err != nil {
		logx.WithContext(ctx).Infof("[Enrollment] 退出失败: activity=%s, email=%s, err=%v", activityName, email, err)
		return nil, err
	}

	logx.WithContext(ctx).Infof("[Enrollment] 退出成功: activity=%s, email=%s, member_id=%d", activityName, email, member.ID)
	if s.events != nil {
		s.events.PublishMemberLeft(ctx, activity, member, s.now())
	}

	return &Confirmation{
		Message:  fmt.Sprintf("Unregistered %s from %s", email, activityName),
		Activity: activity,
		Member:   member,
	}, nil
}

// ==================== 会话 ====================

// runSession 在熔断保护下执行一个存储会话
//
// 业务错误不计入熔断；熔断打开或存储错误统一转换为 StorageUnavailable
func (s *Service) runSession(ctx context.Context, op string, fn func(tx *gorm.DB) error) (err error) {
	start := time.Now()
	defer func() {
		observe(op, start, err)
	}()

	err = s.breaker.DoWithAcceptable(func() error {
		return s.gateway.WithSession(ctx, fn)
	}, acceptable)
	return toBizError(err)
}

// acceptable 判断错误是否计入熔断
func acceptable(err error) bool {
	return err == nil || errorx.IsDomain(err)
}

// toBizError 非业务错误统一包装为 StorageUnavailable
func toBizError(err error) error {
	if err == nil {
		return nil
	}
	var bizErr *errorx.BizError
	if errors.As(err, &bizErr) {
		return bizErr
	}
	return errorx.ErrStorageUnavailable(err)
}
