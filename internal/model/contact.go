package model

import (
	"time"
)

// Contact 联系人，归属于某个用户
// 邮件消息发往 Email，短信发往 Phone

type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;comment:所属用户ID" json:"user_id"`
	Name      string    `gorm:"type:varchar(128);not null;comment:姓名" json:"name" validate:"required,max=128"`
	Email     string    `gorm:"type:varchar(128);comment:邮箱" json:"email" validate:"omitempty,email,max=128"`
	Phone     string    `gorm:"type:varchar(32);comment:电话" json:"phone" validate:"required_without=Email,max=32"`
	Notes     string    `gorm:"type:text;comment:备注" json:"notes"`
	CreatedAt time.Time `gorm:"comment:创建时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"comment:更新时间" json:"updated_at"`

	User     *User     `gorm:"foreignKey:UserID" json:"-"`
	Messages []Message `gorm:"foreignKey:ContactID" json:"-"`
}

func (Contact) TableName() string { return "contact" }
