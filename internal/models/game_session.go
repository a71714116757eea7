package models

import (
	"gorm.io/gorm"
)

// GameSession 是一場遊戲的持久化記錄
// 進行中的狀態（分數、答題歷史）由遊戲引擎在記憶體中維護，
// 這裡只在建立與結束時落盤
type GameSession struct {
	gorm.Model
	SessionID   string        `gorm:"uniqueIndex;size:40" json:"session_id"`
	RoomID      uint          `gorm:"index" json:"room_id"`
	QuestionIDs []uint        `gorm:"serializer:json" json:"question_ids"`
	Scores      map[uint]int  `gorm:"serializer:json" json:"scores"`
	Status      SessionStatus `json:"status"`
}

// SessionStatus 定義遊戲狀態的類型
type SessionStatus string

const (
	SessionStatusActive   SessionStatus = "active"
	SessionStatusFinished SessionStatus = "finished"
)
