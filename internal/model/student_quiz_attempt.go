package model

import "time"

// StudentQuizAttempt is one student's run through a quiz. A nil CompletedAt
// means the attempt is still in progress; Score is a 0-100 percentage with
// two decimal places, nil until scored.
// swagger:model StudentQuizAttempt
type StudentQuizAttempt struct {
	BaseModel
	StudentID   uint       `gorm:"index;type:bigint unsigned;not null" json:"studentId"`
	Student     *User      `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	QuizID      uint       `gorm:"index;type:bigint unsigned;not null" json:"quizId"`
	Quiz        *Quiz      `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	StartedAt   time.Time  `gorm:"autoCreateTime" json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Score       *float64   `gorm:"type:decimal(5,2)" json:"score,omitempty"`
}

func (StudentQuizAttempt) TableName() string {
	return "student_quiz_attempts"
}

func (a *StudentQuizAttempt) IsCompleted() bool {
	return a.CompletedAt != nil
}
