package repository

import (
	"classquiz_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) Create(answer *model.Answer) error {
	return r.DB.Create(answer).Error
}

func (r *AnswerRepository) FindByID(id uint) (*model.Answer, error) {
	var a model.Answer
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AnswerRepository) ListByQuestion(questionID uint) ([]model.Answer, error) {
	var as []model.Answer
	err := r.DB.Where("question_id = ?", questionID).Find(&as).Error
	return as, err
}

func (r *AnswerRepository) CorrectByQuestion(questionID uint) ([]model.Answer, error) {
	var as []model.Answer
	err := r.DB.Where("question_id = ? AND is_correct = ?", questionID, true).Find(&as).Error
	return as, err
}

func (r *AnswerRepository) ExistsForQuestion(questionID uint, text string) (bool, error) {
	var n int64
	err := r.DB.Model(&model.Answer{}).
		Where("question_id = ? AND text = ?", questionID, text).
		Count(&n).Error
	return n > 0, err
}

func (r *AnswerRepository) Update(answer *model.Answer) error {
	return r.DB.Save(answer).Error
}

func (r *AnswerRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Answer{}, id).Error
}
