package model

import (
	"time"
)

// User 用户模型
// 索引与唯一约束：用户名唯一、邮箱唯一
// 说明：密码仅存储哈希（PasswordHash），不存储明文

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(64);not null;uniqueIndex;comment:用户名" json:"username"`
	Email        string    `gorm:"type:varchar(128);uniqueIndex;comment:邮箱" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null;comment:密码哈希" json:"-"`
	Name         string    `gorm:"type:varchar(64);comment:显示名称" json:"name"`
	CreatedAt    time.Time `gorm:"comment:创建时间" json:"created_at"`
	UpdatedAt    time.Time `gorm:"comment:更新时间" json:"updated_at"`

	Contacts []Contact `gorm:"foreignKey:UserID" json:"-"`
	Messages []Message `gorm:"foreignKey:UserID" json:"-"`
}

// TableName 全局配置使用单数表名
func (User) TableName() string { return "user" }
