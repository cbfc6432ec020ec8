package repository

import (
	"classquiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuizAttemptRepository struct {
	DB *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

func (r *QuizAttemptRepository) Create(attempt *model.StudentQuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *QuizAttemptRepository) FindByID(id uint) (*model.StudentQuizAttempt, error) {
	var a model.StudentQuizAttempt
	if err := r.DB.Preload("Quiz").First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *QuizAttemptRepository) FindByIDForStudent(id, studentID uint) (*model.StudentQuizAttempt, error) {
	var a model.StudentQuizAttempt
	err := r.DB.Preload("Quiz").
		Where("id = ? AND student_id = ?", id, studentID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListForStudent returns the student's attempts in classrooms they are still
// enrolled in, newest first. quizID filters to a single quiz when non-zero.
func (r *QuizAttemptRepository) ListForStudent(studentID, quizID uint) ([]model.StudentQuizAttempt, error) {
	var as []model.StudentQuizAttempt
	q := r.DB.Preload("Quiz").
		Joins("JOIN quizzes q ON q.id = student_quiz_attempts.quiz_id AND q.deleted_at IS NULL").
		Joins("JOIN classroom_students cs ON cs.classroom_id = q.classroom_id AND cs.user_id = ?", studentID).
		Where("student_quiz_attempts.student_id = ?", studentID)
	if quizID != 0 {
		q = q.Where("student_quiz_attempts.quiz_id = ?", quizID)
	}
	err := q.Order("student_quiz_attempts.started_at DESC").Find(&as).Error
	return as, err
}

// ListArchivedForStudent returns attempts whose classroom no longer lists the
// student, i.e. history from classrooms they left or were removed from.
func (r *QuizAttemptRepository) ListArchivedForStudent(studentID uint) ([]model.StudentQuizAttempt, error) {
	var as []model.StudentQuizAttempt
	err := r.DB.Preload("Quiz").
		Joins("JOIN quizzes q ON q.id = student_quiz_attempts.quiz_id AND q.deleted_at IS NULL").
		Where("student_quiz_attempts.student_id = ?", studentID).
		Where("NOT EXISTS (SELECT 1 FROM classroom_students cs WHERE cs.classroom_id = q.classroom_id AND cs.user_id = ?)", studentID).
		Order("student_quiz_attempts.started_at DESC").
		Find(&as).Error
	return as, err
}

func (r *QuizAttemptRepository) ListByClassroomForStudent(classroomID, studentID uint) ([]model.StudentQuizAttempt, error) {
	var as []model.StudentQuizAttempt
	err := r.DB.Preload("Quiz").
		Joins("JOIN quizzes q ON q.id = student_quiz_attempts.quiz_id AND q.deleted_at IS NULL").
		Where("q.classroom_id = ? AND student_quiz_attempts.student_id = ?", classroomID, studentID).
		Order("student_quiz_attempts.started_at DESC").
		Find(&as).Error
	return as, err
}

// ListByQuiz returns every attempt on the quiz, for teacher-facing stats.
func (r *QuizAttemptRepository) ListByQuiz(quizID uint) ([]model.StudentQuizAttempt, error) {
	var as []model.StudentQuizAttempt
	err := r.DB.Preload("Student").
		Where("quiz_id = ?", quizID).
		Order("started_at DESC").
		Find(&as).Error
	return as, err
}

func (r *QuizAttemptRepository) HasActiveAttempt(studentID, quizID uint) (bool, error) {
	var n int64
	err := r.DB.Model(&model.StudentQuizAttempt{}).
		Where("student_id = ? AND quiz_id = ? AND completed_at IS NULL", studentID, quizID).
		Count(&n).Error
	return n > 0, err
}

func (r *QuizAttemptRepository) CountByStudentAndQuiz(studentID, quizID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&model.StudentQuizAttempt{}).
		Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		Count(&n).Error
	return n, err
}

func (r *QuizAttemptRepository) Update(attempt *model.StudentQuizAttempt) error {
	return r.DB.Save(attempt).Error
}
