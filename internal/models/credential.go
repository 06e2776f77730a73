package models

import (
	"time"
)

// Credential 登录凭证表
type Credential struct {
	ID           uint      `gorm:"primarykey" json:"id"`                 // 主键
	Username     string    `gorm:"uniqueIndex;not null" json:"username"` // 用户名
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`    // 邮箱
	PasswordHash string    `gorm:"not null" json:"-"`                    // 密码哈希（不返回给前端）
	CreatedAt    time.Time `gorm:"index" json:"created_at"`              // 创建时间
}

// TableName 指定表名
func (Credential) TableName() string {
	return "credentials"
}
