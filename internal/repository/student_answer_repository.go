package repository

import (
	"errors"
	"strings"

	"classquiz_backend/internal/model"

	"gorm.io/gorm"
)

type StudentAnswerRepository struct {
	DB *gorm.DB
}

func NewStudentAnswerRepository(db *gorm.DB) *StudentAnswerRepository {
	return &StudentAnswerRepository{DB: db}
}

func (r *StudentAnswerRepository) CreateBatch(answers []model.StudentAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.DB.Create(&answers).Error
}

func (r *StudentAnswerRepository) ListByQuestionAttempt(questionAttemptID uint) ([]model.StudentAnswer, error) {
	var as []model.StudentAnswer
	err := r.DB.Where("question_attempt_id = ?", questionAttemptID).Find(&as).Error
	return as, err
}

// CountByQuizAttempt tallies the answer rows recorded under the quiz
// attempt, and how many of them were graded correct.
func (r *StudentAnswerRepository) CountByQuizAttempt(quizAttemptID uint) (total, correct int64, err error) {
	err = r.DB.Model(&model.StudentAnswer{}).
		Joins("JOIN student_question_attempts qa ON qa.id = student_answers.question_attempt_id").
		Where("qa.quiz_attempt_id = ?", quizAttemptID).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.DB.Model(&model.StudentAnswer{}).
		Joins("JOIN student_question_attempts qa ON qa.id = student_answers.question_attempt_id").
		Where("qa.quiz_attempt_id = ? AND student_answers.is_correct = ?", quizAttemptID, true).
		Count(&correct).Error
	if err != nil {
		return 0, 0, err
	}
	return total, correct, nil
}

// IsDuplicateKey reports whether err came from a unique-constraint
// violation, across the MySQL and sqlite drivers.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}
