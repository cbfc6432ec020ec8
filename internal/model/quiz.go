package model

import "time"

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title           string     `gorm:"size:255;not null" json:"title"`
	ClassroomID     uint       `gorm:"index;type:bigint unsigned;not null" json:"classroomId"`
	IsActive        bool       `gorm:"default:true" json:"isActive"`
	AllowedAttempts int        `gorm:"default:1" json:"allowedAttempts"`
	Deadline        *time.Time `json:"deadline,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
