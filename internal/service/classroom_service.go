package service

import (
	"errors"

	"classquiz_backend/internal/model"
	"classquiz_backend/internal/repository"
	"classquiz_backend/internal/util"

	"gorm.io/gorm"
)

type ClassroomService struct {
	ClassroomRepo *repository.ClassroomRepository
}

func NewClassroomService(classroomRepo *repository.ClassroomRepository) *ClassroomService {
	return &ClassroomService{ClassroomRepo: classroomRepo}
}

func (s *ClassroomService) Create(name string, teacherID uint) (*model.Classroom, error) {
	classroom := &model.Classroom{
		Name:      name,
		TeacherID: teacherID,
	}
	if err := s.ClassroomRepo.Create(classroom); err != nil {
		return nil, err
	}
	return classroom, nil
}

func (s *ClassroomService) Get(id, userID uint, role model.UserRole) (*model.Classroom, error) {
	classroom, err := s.ClassroomRepo.FindVisible(id, userID, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassroomNotFound
		}
		return nil, err
	}
	return classroom, nil
}

func (s *ClassroomService) List(userID uint, role model.UserRole) ([]model.Classroom, error) {
	if role == model.Teacher {
		return s.ClassroomRepo.ListForTeacher(userID)
	}
	return s.ClassroomRepo.ListForStudent(userID)
}

func (s *ClassroomService) Update(id uint, name string, userID uint, role model.UserRole) (*model.Classroom, error) {
	classroom, err := s.Get(id, userID, role)
	if err != nil {
		return nil, err
	}
	classroom.Name = name
	if err := s.ClassroomRepo.Update(classroom); err != nil {
		return nil, err
	}
	return classroom, nil
}

func (s *ClassroomService) Delete(id, userID uint, role model.UserRole) error {
	if _, err := s.Get(id, userID, role); err != nil {
		return err
	}
	return s.ClassroomRepo.Delete(id)
}

// RemoveStudent drops the student from the roster. Their past attempts stay
// intact and surface under the archived attempts listing.
func (s *ClassroomService) RemoveStudent(classroomID, studentID, userID uint, role model.UserRole) error {
	if _, err := s.Get(classroomID, userID, role); err != nil {
		return err
	}
	return s.ClassroomRepo.RemoveStudent(classroomID, &model.User{BaseModel: model.BaseModel{ID: studentID}})
}
