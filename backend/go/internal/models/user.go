package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserStatus 定义了用户账户的生命周期状态。
type UserStatus string

const (
	StatusPending     UserStatus = "pending"     // 账号待激活或验证
	StatusActive      UserStatus = "active"      // 账号正常
	StatusSuspended   UserStatus = "suspended"   // 账号被暂停
	StatusDeactivated UserStatus = "deactivated" // 账号已停用
)

// User 代表系统中的一个用户账户。
// 移动端通过邮箱加密码注册登录，后端签发 JWT；journal/advisor 服务
// 以该账户的 ID（十进制字符串形式）作为 MongoDB 文档的 user_id。
type User struct {
	gorm.Model

	FullName string `gorm:"size:255"`
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"size:255" json:"-"` // 存储哈希后的密码，json中忽略

	Status      UserStatus `gorm:"type:varchar(20);default:'active';not null"`
	LastLoginAt *time.Time

	// Settings 存放客户端的个性化设置（主题、提醒开关等），后端不解析。
	Settings datatypes.JSON
}

func (User) TableName() string {
	return "users"
}
