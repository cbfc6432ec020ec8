package service

import (
	"errors"
	"strings"

	"classquiz_backend/internal/model"
	"classquiz_backend/internal/repository"
	"classquiz_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	QuizRepo     *repository.QuizRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository, quizRepo *repository.QuizRepository) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		QuizRepo:     quizRepo,
	}
}

type QuestionInput struct {
	QuizID             uint   `json:"quizId" binding:"required"`
	Text               string `json:"text" binding:"required"`
	Order              *int   `json:"order"`
	HasMultipleAnswers bool   `json:"hasMultipleAnswers"`
	IsWritten          bool   `json:"isWritten"`
	TimeLimit          *int   `json:"timeLimit"`
}

// Create adds a question to the quiz. When the request carries no order the
// question lands after every existing one.
func (s *QuestionService) Create(input QuestionInput, teacherID uint, role model.UserRole) (*model.Question, error) {
	if _, err := s.QuizRepo.FindVisible(input.QuizID, teacherID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotQuizOwner
		}
		return nil, err
	}

	order := 0
	if input.Order != nil {
		order = *input.Order
	} else {
		max, err := s.QuestionRepo.MaxOrder(input.QuizID)
		if err != nil {
			return nil, err
		}
		order = max + 1
	}

	question := &model.Question{
		QuizID:             input.QuizID,
		Text:               strings.TrimSpace(input.Text),
		Order:              order,
		HasMultipleAnswers: input.HasMultipleAnswers,
		IsWritten:          input.IsWritten,
		TimeLimit:          input.TimeLimit,
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Get(id, userID uint, role model.UserRole) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if _, err := s.QuizRepo.FindVisible(question.QuizID, userID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) ListByQuiz(quizID, userID uint, role model.UserRole) ([]model.Question, error) {
	if _, err := s.QuizRepo.FindVisible(quizID, userID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return s.QuestionRepo.ListByQuiz(quizID)
}

func (s *QuestionService) Update(id uint, input QuestionInput, userID uint, role model.UserRole) (*model.Question, error) {
	question, err := s.Get(id, userID, role)
	if err != nil {
		return nil, err
	}
	if input.Text != "" {
		question.Text = strings.TrimSpace(input.Text)
	}
	if input.Order != nil {
		question.Order = *input.Order
	}
	question.HasMultipleAnswers = input.HasMultipleAnswers
	question.IsWritten = input.IsWritten
	if input.TimeLimit != nil {
		question.TimeLimit = input.TimeLimit
	}
	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Delete(id, userID uint, role model.UserRole) error {
	if _, err := s.Get(id, userID, role); err != nil {
		return err
	}
	return s.QuestionRepo.Delete(id)
}
