package model

// StudentAnswer is one submitted answer text under a question attempt.
// Correctness is computed at submission time and never revised.
// swagger:model StudentAnswer
type StudentAnswer struct {
	BaseModel
	QuestionAttemptID uint   `gorm:"uniqueIndex:uniq_question_attempt_text;type:bigint unsigned;not null" json:"questionAttemptId"`
	Text              string `gorm:"size:255;uniqueIndex:uniq_question_attempt_text;not null" json:"text"`
	IsCorrect         bool   `gorm:"default:false" json:"isCorrect"`
}

func (StudentAnswer) TableName() string {
	return "student_answers"
}
