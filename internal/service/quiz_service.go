package service

import (
	"errors"
	"time"

	"classquiz_backend/internal/model"
	"classquiz_backend/internal/repository"
	"classquiz_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo      *repository.QuizRepository
	ClassroomRepo *repository.ClassroomRepository
}

func NewQuizService(quizRepo *repository.QuizRepository, classroomRepo *repository.ClassroomRepository) *QuizService {
	return &QuizService{
		QuizRepo:      quizRepo,
		ClassroomRepo: classroomRepo,
	}
}

type QuizInput struct {
	Title           string     `json:"title" binding:"required"`
	ClassroomID     uint       `json:"classroomId" binding:"required"`
	IsActive        *bool      `json:"isActive"`
	AllowedAttempts int        `json:"allowedAttempts"`
	Deadline        *time.Time `json:"deadline"`
}

func (s *QuizService) Create(input QuizInput, teacherID uint, role model.UserRole) (*model.Quiz, error) {
	if _, err := s.ClassroomRepo.FindVisible(input.ClassroomID, teacherID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotClassroomOwner
		}
		return nil, err
	}

	quiz := &model.Quiz{
		Title:           input.Title,
		ClassroomID:     input.ClassroomID,
		IsActive:        true,
		AllowedAttempts: 1,
		Deadline:        input.Deadline,
	}
	if input.IsActive != nil {
		quiz.IsActive = *input.IsActive
	}
	if input.AllowedAttempts > 0 {
		quiz.AllowedAttempts = input.AllowedAttempts
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Get(id, userID uint, role model.UserRole) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindVisible(id, userID, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) List(userID uint, role model.UserRole) ([]model.Quiz, error) {
	return s.QuizRepo.ListVisible(userID, role)
}

func (s *QuizService) ListByClassroom(classroomID, userID uint, role model.UserRole) ([]model.Quiz, error) {
	if _, err := s.ClassroomRepo.FindVisible(classroomID, userID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassroomNotFound
		}
		return nil, err
	}
	return s.QuizRepo.ListVisibleByClassroom(classroomID, userID, role)
}

func (s *QuizService) Update(id uint, input QuizInput, userID uint, role model.UserRole) (*model.Quiz, error) {
	quiz, err := s.Get(id, userID, role)
	if err != nil {
		return nil, err
	}
	if input.Title != "" {
		quiz.Title = input.Title
	}
	if input.IsActive != nil {
		quiz.IsActive = *input.IsActive
	}
	if input.AllowedAttempts > 0 {
		quiz.AllowedAttempts = input.AllowedAttempts
	}
	if input.Deadline != nil {
		quiz.Deadline = input.Deadline
	}
	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Delete(id, userID uint, role model.UserRole) error {
	if _, err := s.Get(id, userID, role); err != nil {
		return err
	}
	return s.QuizRepo.Delete(id)
}
