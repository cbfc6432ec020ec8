package repository

import (
	"classquiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var q model.Quiz
	if err := r.DB.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuizRepository) FindActiveByID(id uint) (*model.Quiz, error) {
	var q model.Quiz
	if err := r.DB.Where("is_active = ?", true).First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// visibleScope narrows quizzes to classrooms the caller owns (teacher)
// or is enrolled in (student).
func (r *QuizRepository) visibleScope(userID uint, role model.UserRole) *gorm.DB {
	q := r.DB.Model(&model.Quiz{})
	switch role {
	case model.Teacher:
		return q.Joins("JOIN classrooms c ON c.id = quizzes.classroom_id").
			Where("c.teacher_id = ? AND c.deleted_at IS NULL", userID)
	case model.Student:
		return q.Joins("JOIN classroom_students cs ON cs.classroom_id = quizzes.classroom_id").
			Where("cs.user_id = ?", userID)
	case model.Admin:
		return q
	default:
		return q.Where("1 = 0")
	}
}

func (r *QuizRepository) FindVisible(id, userID uint, role model.UserRole) (*model.Quiz, error) {
	var q model.Quiz
	if err := r.visibleScope(userID, role).Where("quizzes.id = ?", id).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuizRepository) ListVisible(userID uint, role model.UserRole) ([]model.Quiz, error) {
	var qs []model.Quiz
	err := r.visibleScope(userID, role).Find(&qs).Error
	return qs, err
}

func (r *QuizRepository) ListVisibleByClassroom(classroomID, userID uint, role model.UserRole) ([]model.Quiz, error) {
	var qs []model.Quiz
	err := r.visibleScope(userID, role).Where("quizzes.classroom_id = ?", classroomID).Find(&qs).Error
	return qs, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("quiz_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Answer{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, id).Error
	})
}
