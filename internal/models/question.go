package models

import (
	"gorm.io/gorm"
)

// Question 表示一道題目，對遊戲引擎來說是唯讀的
type Question struct {
	gorm.Model
	Subject      string   `gorm:"index:idx_subject_grade" json:"subject"`
	GradeLevel   string   `gorm:"index:idx_subject_grade" json:"grade_level"`
	Difficulty   string   `json:"difficulty"`
	Text         string   `gorm:"type:text" json:"text"`
	Options      []string `gorm:"serializer:json" json:"options"`
	CorrectIndex int      `json:"-"` // 正確選項的索引，不對外序列化
}
