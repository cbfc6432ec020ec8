package model

import "time"

// StudentQuestionAttempt is one question within a quiz attempt, created
// lazily the first time progression surfaces the question. The
// (quiz_attempt, question) pair is unique so a concurrent double-advance
// cannot materialize two records.
// swagger:model StudentQuestionAttempt
type StudentQuestionAttempt struct {
	BaseModel
	QuizAttemptID uint            `gorm:"uniqueIndex:uniq_attempt_question;type:bigint unsigned;not null" json:"quizAttemptId"`
	QuestionID    uint            `gorm:"uniqueIndex:uniq_attempt_question;type:bigint unsigned;not null" json:"questionId"`
	Question      *Question       `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	StartedAt     time.Time       `gorm:"autoCreateTime" json:"startedAt"`
	SubmittedAt   *time.Time      `json:"submittedAt,omitempty"`
	Answers       []StudentAnswer `gorm:"foreignKey:QuestionAttemptID" json:"answers,omitempty"`
}

func (StudentQuestionAttempt) TableName() string {
	return "student_question_attempts"
}
