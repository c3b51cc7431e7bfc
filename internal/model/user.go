package model

import "time"

// User 用户（handle 即 username，全局唯一）
type User struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Username  string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email     string `gorm:"type:varchar(128)"`
	Password  string `gorm:"type:varchar(128);not null"` // bcrypt hash
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }
