package models

import (
	"time"
)

// Profile 收货资料表，与 Credential 一对一
type Profile struct {
	ID         uint      `gorm:"primarykey" json:"id"`                        // 主键
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"`         // 用户ID
	FirstName  string    `gorm:"default:''" json:"first_name"`                // 名
	LastName   string    `gorm:"default:''" json:"last_name"`                 // 姓
	Phone      string    `gorm:"default:''" json:"phone"`                     // 电话
	Address    string    `gorm:"default:''" json:"address"`                   // 地址
	City       string    `gorm:"default:''" json:"city"`                      // 城市
	PostalCode string    `gorm:"default:''" json:"postal_code"`               // 邮编
	Country    string    `gorm:"default:'Thailand'" json:"country"`           // 国家
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt  time.Time `gorm:"index" json:"updated_at"`                     // 更新时间
}

// TableName 指定表名
func (Profile) TableName() string {
	return "profiles"
}
