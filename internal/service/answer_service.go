package service

import (
	"errors"
	"strings"

	"classquiz_backend/internal/model"
	"classquiz_backend/internal/repository"
	"classquiz_backend/internal/util"

	"gorm.io/gorm"
)

type AnswerService struct {
	AnswerRepo   *repository.AnswerRepository
	QuestionRepo *repository.QuestionRepository
	QuizRepo     *repository.QuizRepository
}

func NewAnswerService(
	answerRepo *repository.AnswerRepository,
	questionRepo *repository.QuestionRepository,
	quizRepo *repository.QuizRepository,
) *AnswerService {
	return &AnswerService{
		AnswerRepo:   answerRepo,
		QuestionRepo: questionRepo,
		QuizRepo:     quizRepo,
	}
}

type AnswerInput struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Text       string `json:"text" binding:"required"`
	IsCorrect  bool   `json:"isCorrect"`
}

func (s *AnswerService) ownedQuestion(questionID, userID uint, role model.UserRole) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if _, err := s.QuizRepo.FindVisible(question.QuizID, userID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotQuestionOwner
		}
		return nil, err
	}
	return question, nil
}

// Create adds a candidate answer. Text is stripped of surrounding whitespace
// before the per-question duplicate check.
func (s *AnswerService) Create(input AnswerInput, teacherID uint, role model.UserRole) (*model.Answer, error) {
	if _, err := s.ownedQuestion(input.QuestionID, teacherID, role); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(input.Text)
	exists, err := s.AnswerRepo.ExistsForQuestion(input.QuestionID, text)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrDuplicateAnswer
	}

	answer := &model.Answer{
		QuestionID: input.QuestionID,
		Text:       text,
		IsCorrect:  input.IsCorrect,
	}
	if err := s.AnswerRepo.Create(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *AnswerService) Get(id, userID uint, role model.UserRole) (*model.Answer, error) {
	answer, err := s.AnswerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if _, err := s.ownedQuestion(answer.QuestionID, userID, role); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *AnswerService) ListByQuestion(questionID, userID uint, role model.UserRole) ([]model.Answer, error) {
	if _, err := s.ownedQuestion(questionID, userID, role); err != nil {
		return nil, err
	}
	return s.AnswerRepo.ListByQuestion(questionID)
}

func (s *AnswerService) Update(id uint, input AnswerInput, userID uint, role model.UserRole) (*model.Answer, error) {
	answer, err := s.Get(id, userID, role)
	if err != nil {
		return nil, err
	}
	if input.Text != "" {
		text := strings.TrimSpace(input.Text)
		if text != answer.Text {
			exists, err := s.AnswerRepo.ExistsForQuestion(answer.QuestionID, text)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, util.ErrDuplicateAnswer
			}
			answer.Text = text
		}
	}
	answer.IsCorrect = input.IsCorrect
	if err := s.AnswerRepo.Update(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *AnswerService) Delete(id, userID uint, role model.UserRole) error {
	if _, err := s.Get(id, userID, role); err != nil {
		return err
	}
	return s.AnswerRepo.Delete(id)
}
