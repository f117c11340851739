package model

import (
	"errors"
	"strings"

	mysqlerr "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ==================== 错误定义 ====================

var (
	ErrActivityNotFound = errors.New("活动不存在")
	ErrMemberNotFound   = errors.New("成员不存在")
	ErrSignupNotFound   = errors.New("报名记录不存在")
	ErrSignupDuplicate  = errors.New("报名记录已存在")
)

// mysqlDuplicateEntry MySQL 唯一键冲突错误号
const mysqlDuplicateEntry = 1062

// isDuplicateKeyErr 判断是否为重复键错误
//
// 兼容三种来源：
//   - gorm TranslateError 翻译后的 gorm.ErrDuplicatedKey
//   - MySQL 驱动原始错误 1062
//   - SQLite 原始错误 "UNIQUE constraint failed"
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlerr.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
