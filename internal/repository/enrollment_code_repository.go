package repository

import (
	"classquiz_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentCodeRepository struct {
	DB *gorm.DB
}

func NewEnrollmentCodeRepository(db *gorm.DB) *EnrollmentCodeRepository {
	return &EnrollmentCodeRepository{DB: db}
}

func (r *EnrollmentCodeRepository) Create(code *model.EnrollmentCode) error {
	return r.DB.Create(code).Error
}

func (r *EnrollmentCodeRepository) Update(code *model.EnrollmentCode) error {
	return r.DB.Save(code).Error
}

func (r *EnrollmentCodeRepository) FindByClassroom(classroomID uint) (*model.EnrollmentCode, error) {
	var c model.EnrollmentCode
	if err := r.DB.Where("classroom_id = ?", classroomID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *EnrollmentCodeRepository) FindByCode(code string) (*model.EnrollmentCode, error) {
	var c model.EnrollmentCode
	if err := r.DB.Where("code = ?", code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CodeExists checks global uniqueness, across all classrooms.
func (r *EnrollmentCodeRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.EnrollmentCode{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}
