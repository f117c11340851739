package model

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ==================== Signup 报名记录模型 ====================
//
// 同一 (member_id, activity_id) 最多一条记录，由唯一索引 uk_member_activity 保证。
// 退出报名直接删除记录。

type Signup struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	MemberID   uint64 `gorm:"uniqueIndex:uk_member_activity,priority:1;not null" json:"member_id"`
	ActivityID uint64 `gorm:"uniqueIndex:uk_member_activity,priority:2;index:idx_activity_id;not null" json:"activity_id"`

	SignedUpAt time.Time `gorm:"not null" json:"signed_up_at"` // UTC

	Member   *Member   `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"-"`
	Activity *Activity `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Signup) TableName() string {
	return "signups"
}

// Participant 报名名单投影（活动ID + 成员邮箱）
type Participant struct {
	ActivityID uint64
	Email      string
}

// ==================== SignupModel 数据访问层 ====================

type SignupModel struct {
	db *gorm.DB
}

func NewSignupModel(db *gorm.DB) *SignupModel {
	return &SignupModel{db: db}
}

// WithTx 返回绑定到事务的 Model
func (m *SignupModel) WithTx(tx *gorm.DB) *SignupModel {
	return &SignupModel{db: tx}
}

// Create 创建报名记录，唯一索引冲突返回 ErrSignupDuplicate
func (m *SignupModel) Create(ctx context.Context, signup *Signup) error {
	if signup.SignedUpAt.IsZero() {
		signup.SignedUpAt = time.Now().UTC()
	}
	err := m.db.WithContext(ctx).Omit("Member", "Activity").Create(signup).Error
	if isDuplicateKeyErr(err) {
		return ErrSignupDuplicate
	}
	return err
}

// FindByMemberActivity 根据成员ID和活动ID查询
func (m *SignupModel) FindByMemberActivity(ctx context.Context, memberID, activityID uint64) (*Signup, error) {
	var signup Signup
	err := m.db.WithContext(ctx).
		Where("member_id = ? AND activity_id = ?", memberID, activityID).
		Take(&signup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSignupNotFound
		}
		return nil, err
	}
	return &signup, nil
}

// ExistsByMemberActivity 判断是否已报名
func (m *SignupModel) ExistsByMemberActivity(ctx context.Context, memberID, activityID uint64) (bool, error) {
	var count int64
	err := m.db.WithContext(ctx).
		Model(&Signup{}).
		Where("member_id = ? AND activity_id = ?", memberID, activityID).
		Count(&count).Error
	return count > 0, err
}

// Delete 按主键删除报名记录，记录不存在返回 ErrSignupNotFound
func (m *SignupModel) Delete(ctx context.Context, id uint64) error {
	result := m.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Signup{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSignupNotFound
	}
	return nil
}

// ListParticipants 查询全部报名名单（signups JOIN members）
//
// 按报名记录 ID 升序，即报名先后顺序
func (m *SignupModel) ListParticipants(ctx context.Context) ([]Participant, error) {
	var participants []Participant
	err := m.db.WithContext(ctx).
		Table("signups s").
		Select("s.activity_id AS activity_id, mb.email AS email").
		Joins("INNER JOIN members mb ON mb.id = s.member_id").
		Order("s.id ASC").
		Scan(&participants).Error
	return participants, err
}
