package enrollment

import (
	"context"
	"time"

	"activity-signup/app/signup/model"

	"gorm.io/gorm"
)

// ActivityView 活动及其报名名单
type ActivityView struct {
	Name            string
	Description     *string
	Schedule        *string
	MaxParticipants *int
	Participants    []string // 成员邮箱，按报名先后
}

// ListActivities 返回全部活动及报名名单（按活动 ID 升序）
//
// 目录优先从 CatalogueSource 读取（目录只读，可缓存），名单总是在会话内实时查询
func (s *Service) ListActivities(ctx context.Context) ([]ActivityView, error) {
	var catalogue []model.Activity
	if s.catalogue != nil {
		start := time.Now()
		list, err := s.catalogue.GetList(ctx)
		if err != nil {
			err = toBizError(err)
			observe(opList, start, err)
			return nil, err
		}
		catalogue = list
	}

	var participants []model.Participant
	err := s.runSession(ctx, opList, func(tx *gorm.DB) error {
		var err error
		if catalogue == nil {
			catalogue, err = s.activities.WithTx(tx).ListAll(ctx)
			if err != nil {
				return err
			}
		}
		participants, err = s.signups.WithTx(tx).ListParticipants(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return project(catalogue, participants), nil
}

// project 把目录和名单拼成视图，名单中不在目录里的活动忽略
func project(catalogue []model.Activity, participants []model.Participant) []ActivityView {
	byActivity := make(map[uint64][]string, len(catalogue))
	for _, p := range participants {
		byActivity[p.ActivityID] = append(byActivity[p.ActivityID], p.Email)
	}

	views := make([]ActivityView, 0, len(catalogue))
	for _, a := range catalogue {
		emails := byActivity[a.ID]
		if emails == nil {
			emails = []string{}
		}
		views = append(views, ActivityView{
			Name:            a.Name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    emails,
		})
	}
	return views
}
