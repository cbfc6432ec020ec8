package model

// Answer is a candidate answer to a question; text is unique per question.
// swagger:model Answer
type Answer struct {
	BaseModel
	QuestionID uint   `gorm:"uniqueIndex:uniq_question_answer_text;type:bigint unsigned;not null" json:"questionId"`
	Text       string `gorm:"size:255;uniqueIndex:uniq_question_answer_text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Answer) TableName() string {
	return "answers"
}
