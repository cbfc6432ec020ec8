package model

// Question is one quiz item. Order is unique within a quiz and assigned
// as max(order)+1 at creation when the request leaves it blank.
// swagger:model Question
type Question struct {
	BaseModel
	QuizID             uint   `gorm:"uniqueIndex:uniq_quiz_order;type:bigint unsigned;not null" json:"quizId"`
	Text               string `gorm:"type:text;not null" json:"text"`
	Order              int    `gorm:"uniqueIndex:uniq_quiz_order;column:question_order" json:"order"`
	HasMultipleAnswers bool   `gorm:"default:false" json:"hasMultipleAnswers"`
	IsWritten          bool   `gorm:"default:false" json:"isWritten"`
	TimeLimit          *int   `json:"timeLimit,omitempty"` // seconds
}

func (Question) TableName() string {
	return "questions"
}
