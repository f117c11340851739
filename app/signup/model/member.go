package model

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ==================== Member 成员模型 ====================

type Member struct {
	ID       uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"type:varchar(100);not null" json:"name"`
	Email    string  `gorm:"type:varchar(255);uniqueIndex:uk_member_email;not null" json:"email"`
	Grade    *string `gorm:"type:varchar(20)" json:"grade"` // 报名流程不写入
	IsActive bool    `gorm:"not null;default:true" json:"is_active"`
}

func (Member) TableName() string {
	return "members"
}

// ==================== 查找或创建结果 ====================

// EnsureOutcome 标记 Ensure 是命中已有成员还是新建
type EnsureOutcome int8

const (
	MemberFound   EnsureOutcome = 1 // 已存在
	MemberCreated EnsureOutcome = 2 // 本次新建
)

func (o EnsureOutcome) String() string {
	switch o {
	case MemberFound:
		return "found"
	case MemberCreated:
		return "created"
	default:
		return "unknown"
	}
}

// DisplayNameFromEmail 由邮箱推导默认显示名
//
// 取第一个 @ 之前的部分（没有 @ 则取整串），首字母转标题形式、其余小写：
//
//	jane.doe@school.edu => Jane.doe
//	ßtraße@school.edu   => Sstraße（标题形式可能多于一个字符）
func DisplayNameFromEmail(email string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}
	if local == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(local)
	return cases.Title(language.Und).String(local[:size]) + cases.Lower(language.Und).String(local[size:])
}

// ==================== MemberModel 数据访问层 ====================

type MemberModel struct {
	db *gorm.DB
}

func NewMemberModel(db *gorm.DB) *MemberModel {
	return &MemberModel{db: db}
}

// WithTx 返回绑定到事务的 Model
func (m *MemberModel) WithTx(tx *gorm.DB) *MemberModel {
	return &MemberModel{db: tx}
}

// FindByEmail 按邮箱精确查询（取第一条）
func (m *MemberModel) FindByEmail(ctx context.Context, email string) (*Member, error) {
	var member Member
	err := m.db.WithContext(ctx).
		Where("email = ?", email).
		Order("id ASC").
		Take(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// Ensure 按邮箱查找成员，不存在则创建
//
// 流程：
//  1. 按邮箱查询，命中直接返回 MemberFound
//  2. 未命中则 INSERT ... ON CONFLICT(email) DO NOTHING
//  3. 插入成功返回 MemberCreated；被并发请求抢先插入时加锁重新查询，返回 MemberFound
func (m *MemberModel) Ensure(ctx context.Context, email string) (*Member, EnsureOutcome, error) {
	member, err := m.FindByEmail(ctx, email)
	if err == nil {
		return member, MemberFound, nil
	}
	if !errors.Is(err, ErrMemberNotFound) {
		return nil, 0, err
	}

	member = &Member{
		Name:     DisplayNameFromEmail(email),
		Email:    email,
		IsActive: true,
	}
	result := m.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(member)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	if result.RowsAffected > 0 {
		return member, MemberCreated, nil
	}

	member, err = m.findByEmailLocked(ctx, email)
	if err != nil {
		return nil, 0, err
	}
	return member, MemberFound, nil
}

// findByEmailLocked 加共享锁读取，读到的是最新已提交的行而不是事务快照
// SQLite 没有行锁，写事务本身已串行，直接普通读取
func (m *MemberModel) findByEmailLocked(ctx context.Context, email string) (*Member, error) {
	db := m.db.WithContext(ctx)
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: clause.LockingStrengthShare})
	}
	var member Member
	err := db.Where("email = ?", email).
		Order("id ASC").
		Take(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}
