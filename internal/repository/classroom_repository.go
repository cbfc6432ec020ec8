package repository

import (
	"classquiz_backend/internal/model"

	"gorm.io/gorm"
)

type ClassroomRepository struct {
	DB *gorm.DB
}

func NewClassroomRepository(db *gorm.DB) *ClassroomRepository {
	return &ClassroomRepository{DB: db}
}

func (r *ClassroomRepository) Create(classroom *model.Classroom) error {
	return r.DB.Create(classroom).Error
}

func (r *ClassroomRepository) FindByID(id uint) (*model.Classroom, error) {
	var c model.Classroom
	if err := r.DB.Preload("Students").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindVisible resolves a classroom only when the caller may see it:
// teachers see classrooms they own, students see classrooms they are
// enrolled in. Anything else reads as record-not-found.
func (r *ClassroomRepository) FindVisible(id, userID uint, role model.UserRole) (*model.Classroom, error) {
	var c model.Classroom
	q := r.DB.Preload("Students")
	switch role {
	case model.Teacher:
		q = q.Where("teacher_id = ?", userID)
	case model.Student:
		q = q.Joins("JOIN classroom_students cs ON cs.classroom_id = classrooms.id").
			Where("cs.user_id = ?", userID)
	case model.Admin:
		// unrestricted
	default:
		return nil, gorm.ErrRecordNotFound
	}
	if err := q.First(&c, "classrooms.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClassroomRepository) ListForTeacher(teacherID uint) ([]model.Classroom, error) {
	var cs []model.Classroom
	err := r.DB.Preload("Students").Where("teacher_id = ?", teacherID).Find(&cs).Error
	return cs, err
}

func (r *ClassroomRepository) ListForStudent(studentID uint) ([]model.Classroom, error) {
	var cs []model.Classroom
	err := r.DB.
		Joins("JOIN classroom_students cs ON cs.classroom_id = classrooms.id").
		Where("cs.user_id = ?", studentID).
		Find(&cs).Error
	return cs, err
}

func (r *ClassroomRepository) Update(classroom *model.Classroom) error {
	return r.DB.Save(classroom).Error
}

// Delete removes the classroom along with its enrollment code and quizzes
// (questions, answers and attempts follow their quiz).
func (r *ClassroomRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("classroom_id = ?", id).Delete(&model.EnrollmentCode{}).Error; err != nil {
			return err
		}
		var quizIDs []uint
		if err := tx.Model(&model.Quiz{}).Where("classroom_id = ?", id).Pluck("id", &quizIDs).Error; err != nil {
			return err
		}
		if len(quizIDs) > 0 {
			var questionIDs []uint
			if err := tx.Model(&model.Question{}).Where("quiz_id IN ?", quizIDs).Pluck("id", &questionIDs).Error; err != nil {
				return err
			}
			if len(questionIDs) > 0 {
				if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Answer{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.Question{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.Quiz{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Classroom{}, id).Error
	})
}

func (r *ClassroomRepository) AddStudent(classroomID uint, student *model.User) error {
	return r.DB.Model(&model.Classroom{BaseModel: model.BaseModel{ID: classroomID}}).
		Association("Students").
		Append(student)
}

func (r *ClassroomRepository) RemoveStudent(classroomID uint, student *model.User) error {
	return r.DB.Model(&model.Classroom{BaseModel: model.BaseModel{ID: classroomID}}).
		Association("Students").
		Delete(student)
}

func (r *ClassroomRepository) IsStudentEnrolled(classroomID, studentID uint) (bool, error) {
	var count int64
	err := r.DB.Table("classroom_students").
		Where("classroom_id = ? AND user_id = ?", classroomID, studentID).
		Count(&count).Error
	return count > 0, err
}
