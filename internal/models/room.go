package models

import (
	"gorm.io/gorm"
)

// Room 表示一個遊戲房間
type Room struct {
	gorm.Model
	Name       string     `json:"name"`
	HostUserID uint       `json:"host_user_id"`
	Members    []uint     `gorm:"serializer:json" json:"members"` // 成員用戶 ID，按加入順序排列
	Capacity   int        `json:"capacity"`
	Status     RoomStatus `json:"status"`
	Config     RoomConfig `gorm:"embedded" json:"config"`
}

// RoomConfig 是房間的遊戲設置
// TimePerQuestion 僅供前端倒數顯示，引擎不強制執行
type RoomConfig struct {
	Subject         string `json:"subject"`           // 科目，例如 "matematicas"
	GradeLevel      string `json:"grade_level"`       // 年級
	Difficulty      string `json:"difficulty"`        // 難度: facil / medio / dificil
	TimePerQuestion int    `json:"time_per_question"` // 每題秒數
	TotalQuestions  int    `json:"total_questions"`   // 題目總數
}

// RoomStatus 定義房間狀態的類型
type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"
	RoomStatusPlaying  RoomStatus = "playing"
	RoomStatusFinished RoomStatus = "finished"
)
