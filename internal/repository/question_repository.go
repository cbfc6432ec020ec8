package repository

import (
	"classquiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	if err := r.DB.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) ListByQuiz(quizID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("quiz_id = ?", quizID).Order("question_order ASC").Find(&qs).Error
	return qs, err
}

// FirstUnanswered returns the lowest-ordered question of the quiz whose ID is
// not in the attempted set. A gorm.ErrRecordNotFound means the quiz is done.
func (r *QuestionRepository) FirstUnanswered(quizID uint, attemptedIDs []uint) (*model.Question, error) {
	var q model.Question
	query := r.DB.Where("quiz_id = ?", quizID)
	if len(attemptedIDs) > 0 {
		query = query.Where("id NOT IN ?", attemptedIDs)
	}
	if err := query.Order("question_order ASC").First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) MaxOrder(quizID uint) (int, error) {
	var max *int
	err := r.DB.Model(&model.Question{}).
		Where("quiz_id = ?", quizID).
		Select("MAX(question_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}
