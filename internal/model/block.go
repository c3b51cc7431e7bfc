package model

import "time"

// Block 屏蔽关系（A 屏蔽 B）
// 数据模型与 Follow 对称；feed 默认不消费，按过滤器注入
type Block struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	BlockerID string `gorm:"type:varchar(36);index:idx_block_blocker;index:idx_block_pair,unique;not null"`
	BlockedID string `gorm:"type:varchar(36);not null;index:idx_block_pair,unique"`
	// idx_block_pair = (blocker_id, blocked_id)
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Block) TableName() string { return "blocks" }
