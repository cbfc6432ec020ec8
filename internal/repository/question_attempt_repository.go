package repository

import (
	"errors"

	"classquiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionAttemptRepository struct {
	DB *gorm.DB
}

func NewQuestionAttemptRepository(db *gorm.DB) *QuestionAttemptRepository {
	return &QuestionAttemptRepository{DB: db}
}

// GetOrCreate returns the question attempt for the (quiz attempt, question)
// pair, creating it on first access. The unique index on the pair turns a
// concurrent double-create into a retryable lookup.
func (r *QuestionAttemptRepository) GetOrCreate(quizAttemptID, questionID uint) (*model.StudentQuestionAttempt, error) {
	var qa model.StudentQuestionAttempt
	err := r.DB.Where("quiz_attempt_id = ? AND question_id = ?", quizAttemptID, questionID).
		First(&qa).Error
	if err == nil {
		return &qa, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	qa = model.StudentQuestionAttempt{QuizAttemptID: quizAttemptID, QuestionID: questionID}
	if createErr := r.DB.Create(&qa).Error; createErr != nil {
		// lost the race; the row exists now
		var existing model.StudentQuestionAttempt
		if lookupErr := r.DB.Where("quiz_attempt_id = ? AND question_id = ?", quizAttemptID, questionID).
			First(&existing).Error; lookupErr == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &qa, nil
}

func (r *QuestionAttemptRepository) FindByID(id uint) (*model.StudentQuestionAttempt, error) {
	var qa model.StudentQuestionAttempt
	if err := r.DB.Preload("Question").First(&qa, id).Error; err != nil {
		return nil, err
	}
	return &qa, nil
}

func (r *QuestionAttemptRepository) ListByQuizAttempt(quizAttemptID uint) ([]model.StudentQuestionAttempt, error) {
	var qas []model.StudentQuestionAttempt
	err := r.DB.Preload("Question").Preload("Answers").
		Where("quiz_attempt_id = ?", quizAttemptID).
		Find(&qas).Error
	return qas, err
}

// AttemptedQuestionIDs returns the IDs of every question the quiz attempt
// has been served, submitted or not. A served question is never re-served.
func (r *QuestionAttemptRepository) AttemptedQuestionIDs(quizAttemptID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.StudentQuestionAttempt{}).
		Where("quiz_attempt_id = ?", quizAttemptID).
		Pluck("question_id", &ids).Error
	return ids, err
}

func (r *QuestionAttemptRepository) CountSubmitted(quizAttemptID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&model.StudentQuestionAttempt{}).
		Where("quiz_attempt_id = ? AND submitted_at IS NOT NULL", quizAttemptID).
		Count(&n).Error
	return n, err
}

func (r *QuestionAttemptRepository) Update(attempt *model.StudentQuestionAttempt) error {
	return r.DB.Save(attempt).Error
}
