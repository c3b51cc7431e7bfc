package model

import "time"

// 字段上限；表单层越界直接拒绝，种子工具按此截断
const (
	TicketTitleMax       = 128
	TicketDescriptionMax = 2048
)

// Ticket 求评帖（请求他人对某个对象写评价）
type Ticket struct {
	ID          string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string `gorm:"type:varchar(36);index:idx_ticket_user;not null" json:"user_id"`
	Title       string `gorm:"type:varchar(128);not null" json:"title"`
	Description string `gorm:"type:varchar(2048)" json:"description"`
	ImageRef    string `gorm:"type:varchar(256)" json:"image_ref,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Ticket) TableName() string { return "tickets" }
