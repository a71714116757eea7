package models

import (
	"time"

	"gorm.io/gorm"
)

// ChatMessage 表示一條房間聊天消息，只增不改
type ChatMessage struct {
	gorm.Model
	MessageID string    `gorm:"uniqueIndex;size:40" json:"message_id"`
	RoomID    uint      `gorm:"index" json:"room_id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Message   string    `gorm:"type:text" json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
