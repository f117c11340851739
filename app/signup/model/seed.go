package model

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"
	"gorm.io/gorm"
)

// seedActivity 种子活动定义
type seedActivity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
}

// catalogueSeed 活动目录（产品固定内容，顺序即插入顺序）
var catalogueSeed = []seedActivity{
	{"Chess Club", "Learn strategies and compete in chess tournaments", "Fridays, 3:30 PM - 5:00 PM", 12},
	{"Programming Class", "Learn programming fundamentals and build software projects", "Tuesdays and Thursdays, 3:30 PM - 4:30 PM", 20},
	{"Gym Class", "Physical education and sports activities", "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM", 30},
	{"Soccer Team", "Join the school soccer team and compete in matches", "Tuesdays and Thursdays, 4:00 PM - 5:30 PM", 22},
	{"Basketball Team", "Practice and play basketball with the school team", "Wednesdays and Fridays, 3:30 PM - 5:00 PM", 15},
	{"Art Club", "Explore your creativity through painting and drawing", "Thursdays, 3:30 PM - 5:00 PM", 15},
	{"Drama Club", "Act, direct, and produce plays and performances", "Mondays and Wednesdays, 4:00 PM - 5:30 PM", 20},
	{"Math Club", "Solve challenging problems and participate in math competitions", "Tuesdays, 3:30 PM - 4:30 PM", 10},
	{"Debate Team", "Develop public speaking and argumentation skills", "Fridays, 4:00 PM - 5:30 PM", 12},
}

// SeedActivities 返回种子活动目录的副本
func SeedActivities() []Activity {
	activities := make([]Activity, 0, len(catalogueSeed))
	for _, s := range catalogueSeed {
		description, schedule, maxParticipants := s.Description, s.Schedule, s.MaxParticipants
		activities = append(activities, Activity{
			Name:            s.Name,
			Description:     &description,
			Schedule:        &schedule,
			MaxParticipants: &maxParticipants,
		})
	}
	return activities
}

// Migrate 建表（已存在则跳过）
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Activity{}, &Member{}, &Signup{})
}

// Bootstrap 启动时初始化存储
//
//  1. 建表及唯一索引、外键
//  2. 活动表为空时写入种子目录（单事务，重复启动不会重复写入）
func Bootstrap(ctx context.Context, db *gorm.DB) error {
	if err := Migrate(db.WithContext(ctx)); err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := NewActivityModel(tx).Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			logx.Infof("[Bootstrap] 活动目录已存在，跳过种子数据: count=%d", count)
			return nil
		}

		activities := SeedActivities()
		if err := tx.Create(&activities).Error; err != nil {
			return err
		}
		logx.Infof("[Bootstrap] 写入种子活动目录: count=%d", len(activities))
		return nil
	})
}
