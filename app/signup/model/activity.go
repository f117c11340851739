package model

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ==================== Activity 活动模型 ====================
//
// 活动目录在启动时写入种子数据，之后只读。
// 可选字段使用指针，区分"未设置"与零值。

type Activity struct {
	ID              uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string  `gorm:"type:varchar(100);uniqueIndex:uk_activity_name;not null" json:"name"`
	Description     *string `gorm:"type:varchar(500)" json:"description"`
	Schedule        *string `gorm:"type:varchar(200)" json:"schedule"`
	MaxParticipants *int    `json:"max_participants"` // 仅作展示，不做名额校验
}

func (Activity) TableName() string {
	return "activities"
}

// ==================== ActivityModel 数据访问层 ====================

type ActivityModel struct {
	db *gorm.DB
}

func NewActivityModel(db *gorm.DB) *ActivityModel {
	return &ActivityModel{db: db}
}

// WithTx 返回绑定到事务的 Model
func (m *ActivityModel) WithTx(tx *gorm.DB) *ActivityModel {
	return &ActivityModel{db: tx}
}

// FindByName 按名称精确查询（区分大小写）
//
// MySQL 默认排序规则不区分大小写，查询结果再做一次精确比较
func (m *ActivityModel) FindByName(ctx context.Context, name string) (*Activity, error) {
	var activity Activity
	err := m.db.WithContext(ctx).
		Where("name = ?", name).
		Take(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	if activity.Name != name {
		return nil, ErrActivityNotFound
	}
	return &activity, nil
}

// ListAll 获取全部活动（按 ID 升序）
func (m *ActivityModel) ListAll(ctx context.Context) ([]Activity, error) {
	var activities []Activity
	err := m.db.WithContext(ctx).
		Order("id ASC").
		Find(&activities).Error
	return activities, err
}

// Count 统计活动数量
func (m *ActivityModel) Count(ctx context.Context) (int64, error) {
	var count int64
	err := m.db.WithContext(ctx).
		Model(&Activity{}).
		Count(&count).Error
	return count, err
}
