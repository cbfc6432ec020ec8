package service

import (
	"errors"

	"classquiz_backend/internal/model"
	"classquiz_backend/internal/repository"
	"classquiz_backend/internal/util"

	"gorm.io/gorm"
)

type StatsService struct {
	AttemptRepo         *repository.QuizAttemptRepository
	QuestionAttemptRepo *repository.QuestionAttemptRepository
	QuizRepo            *repository.QuizRepository
}

func NewStatsService(
	attemptRepo *repository.QuizAttemptRepository,
	questionAttemptRepo *repository.QuestionAttemptRepository,
	quizRepo *repository.QuizRepository,
) *StatsService {
	return &StatsService{
		AttemptRepo:         attemptRepo,
		QuestionAttemptRepo: questionAttemptRepo,
		QuizRepo:            quizRepo,
	}
}

// ListAttempts returns every attempt on the quiz for its owning teacher.
func (s *StatsService) ListAttempts(quizID, teacherID uint, role model.UserRole) ([]model.StudentQuizAttempt, error) {
	if _, err := s.QuizRepo.FindVisible(quizID, teacherID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return s.AttemptRepo.ListByQuiz(quizID)
}

// AttemptDetail is one attempt expanded with its per-question submissions.
type AttemptDetail struct {
	Attempt          *model.StudentQuizAttempt      `json:"attempt"`
	QuestionAttempts []model.StudentQuestionAttempt `json:"questionAttempts"`
}

func (s *StatsService) GetAttemptDetail(quizID, attemptID, teacherID uint, role model.UserRole) (*AttemptDetail, error) {
	if _, err := s.QuizRepo.FindVisible(quizID, teacherID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.QuizID != quizID {
		return nil, util.ErrAttemptNotFound
	}

	questionAttempts, err := s.QuestionAttemptRepo.ListByQuizAttempt(attempt.ID)
	if err != nil {
		return nil, err
	}
	return &AttemptDetail{Attempt: attempt, QuestionAttempts: questionAttempts}, nil
}

// SetScore lets the owning teacher override an attempt's score, for written
// questions graded by hand. The value must land in [0, 100].
func (s *StatsService) SetScore(quizID, attemptID uint, score float64, teacherID uint, role model.UserRole) (*model.StudentQuizAttempt, error) {
	if score < 0 || score > 100 {
		return nil, util.ErrInvalidScore
	}

	detail, err := s.GetAttemptDetail(quizID, attemptID, teacherID, role)
	if err != nil {
		return nil, err
	}

	attempt := detail.Attempt
	attempt.Score = &score
	if err := s.AttemptRepo.Update(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}
