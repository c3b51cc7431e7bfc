package model

import "time"

const (
	ReviewHeadlineMax = 128
	ReviewBodyMax     = 8192
	RatingMin         = 0
	RatingMax         = 5
)

// Review 评价，必须挂在一个 Ticket 上
// 同一用户对同一 Ticket 只能评一次
// ux_review_user_ticket = (user_id, ticket_id)
type Review struct {
	ID        string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string `gorm:"type:varchar(36);index:idx_review_user;uniqueIndex:ux_review_user_ticket;not null" json:"user_id"`
	TicketID  string `gorm:"type:varchar(36);index:idx_review_ticket;uniqueIndex:ux_review_user_ticket;not null" json:"ticket_id"`
	Rating    int    `gorm:"not null" json:"rating"`
	Headline  string `gorm:"type:varchar(128);not null" json:"headline"`
	Body      string `gorm:"type:varchar(8192)" json:"body"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Review) TableName() string { return "reviews" }
