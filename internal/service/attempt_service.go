package service

import (
	"errors"
	"math"
	"strings"
	"time"

	"classquiz_backend/internal/model"
	"classquiz_backend/internal/repository"
	"classquiz_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// submitGraceSeconds is shaved off a question's time limit before the
// submission is judged late, absorbing client clock and network skew.
const submitGraceSeconds = 2

type AttemptService struct {
	AttemptRepo         *repository.QuizAttemptRepository
	QuestionAttemptRepo *repository.QuestionAttemptRepository
	StudentAnswerRepo   *repository.StudentAnswerRepository
	QuizRepo            *repository.QuizRepository
	QuestionRepo        *repository.QuestionRepository
	AnswerRepo          *repository.AnswerRepository
	ClassroomRepo       *repository.ClassroomRepository
	Logger              *zap.Logger
}

func NewAttemptService(
	attemptRepo *repository.QuizAttemptRepository,
	questionAttemptRepo *repository.QuestionAttemptRepository,
	studentAnswerRepo *repository.StudentAnswerRepository,
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	answerRepo *repository.AnswerRepository,
	classroomRepo *repository.ClassroomRepository,
	logger *zap.Logger,
) *AttemptService {
	return &AttemptService{
		AttemptRepo:         attemptRepo,
		QuestionAttemptRepo: questionAttemptRepo,
		StudentAnswerRepo:   studentAnswerRepo,
		QuizRepo:            quizRepo,
		QuestionRepo:        questionRepo,
		AnswerRepo:          answerRepo,
		ClassroomRepo:       classroomRepo,
		Logger:              logger,
	}
}

// Start opens a new attempt after checking every gate: the quiz exists and
// is active, the deadline has not passed, the student is enrolled in its
// classroom, holds no open attempt, and has attempts left.
func (s *AttemptService) Start(quizID, studentID uint) (*model.StudentQuizAttempt, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if !quiz.IsActive {
		return nil, util.ErrQuizNotActive
	}
	if quiz.Deadline != nil && time.Now().After(*quiz.Deadline) {
		return nil, util.ErrDeadlinePassed
	}

	enrolled, err := s.ClassroomRepo.IsStudentEnrolled(quiz.ClassroomID, studentID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	active, err := s.AttemptRepo.HasActiveAttempt(studentID, quizID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, util.ErrActiveAttemptExists
	}

	used, err := s.AttemptRepo.CountByStudentAndQuiz(studentID, quizID)
	if err != nil {
		return nil, err
	}
	if used >= int64(quiz.AllowedAttempts) {
		return nil, util.ErrAttemptsExhausted
	}

	attempt := &model.StudentQuizAttempt{
		StudentID: studentID,
		QuizID:    quizID,
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *AttemptService) Get(attemptID, studentID uint) (*model.StudentQuizAttempt, error) {
	attempt, err := s.AttemptRepo.FindByIDForStudent(attemptID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	return attempt, nil
}

func (s *AttemptService) List(studentID, quizID uint) ([]model.StudentQuizAttempt, error) {
	return s.AttemptRepo.ListForStudent(studentID, quizID)
}

func (s *AttemptService) ListArchived(studentID uint) ([]model.StudentQuizAttempt, error) {
	return s.AttemptRepo.ListArchivedForStudent(studentID)
}

func (s *AttemptService) ListByClassroom(classroomID, studentID uint) ([]model.StudentQuizAttempt, error) {
	enrolled, err := s.ClassroomRepo.IsStudentEnrolled(classroomID, studentID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrClassroomNotFound
	}
	return s.AttemptRepo.ListByClassroomForStudent(classroomID, studentID)
}

// NextQuestionResult carries either the question to work on next or, once
// every question is submitted, the completed attempt with its score.
type NextQuestionResult struct {
	Completed       bool                          `json:"completed"`
	Attempt         *model.StudentQuizAttempt     `json:"attempt,omitempty"`
	QuestionAttempt *model.StudentQuestionAttempt `json:"questionAttempt,omitempty"`
	Question        *model.Question               `json:"question,omitempty"`
	Answers         []model.Answer                `json:"answers,omitempty"`
}

// NextQuestion surfaces the lowest-ordered question the attempt has not yet
// been served, creating its question attempt in the same step. A served
// question is never re-served, so calling again moves on even without a
// submission. When nothing is left the attempt is closed and scored.
func (s *AttemptService) NextQuestion(attemptID, studentID uint) (*NextQuestionResult, error) {
	attempt, err := s.Get(attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt.IsCompleted() {
		return &NextQuestionResult{Completed: true, Attempt: attempt}, nil
	}

	attemptedIDs, err := s.QuestionAttemptRepo.AttemptedQuestionIDs(attempt.ID)
	if err != nil {
		return nil, err
	}

	question, err := s.QuestionRepo.FirstUnanswered(attempt.QuizID, attemptedIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			attempt, err := s.complete(attempt)
			if err != nil {
				return nil, err
			}
			return &NextQuestionResult{Completed: true, Attempt: attempt}, nil
		}
		return nil, err
	}

	questionAttempt, err := s.QuestionAttemptRepo.GetOrCreate(attempt.ID, question.ID)
	if err != nil {
		return nil, err
	}

	// candidate answers go out without the correctness flag
	answers, err := s.AnswerRepo.ListByQuestion(question.ID)
	if err != nil {
		return nil, err
	}
	public := make([]model.Answer, len(answers))
	for i, a := range answers {
		a.IsCorrect = false
		public[i] = a
	}

	return &NextQuestionResult{
		Attempt:         attempt,
		QuestionAttempt: questionAttempt,
		Question:        question,
		Answers:         public,
	}, nil
}

// complete stamps the attempt finished and records its score.
func (s *AttemptService) complete(attempt *model.StudentQuizAttempt) (*model.StudentQuizAttempt, error) {
	now := time.Now()
	attempt.CompletedAt = &now

	score, err := s.CalculateScore(attempt)
	if err != nil {
		return nil, err
	}
	attempt.Score = &score

	if err := s.AttemptRepo.Update(attempt); err != nil {
		return nil, err
	}
	s.Logger.Info("quiz attempt completed",
		zap.Uint("attempt_id", attempt.ID),
		zap.Uint("student_id", attempt.StudentID),
		zap.Float64("score", score))
	return attempt, nil
}

// CalculateScore returns the share of the attempt's recorded answers that
// were graded correct, as a percentage rounded half-up to two decimal
// places. An attempt with no answers scores zero.
func (s *AttemptService) CalculateScore(attempt *model.StudentQuizAttempt) (float64, error) {
	total, correct, err := s.StudentAnswerRepo.CountByQuizAttempt(attempt.ID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	pct := float64(correct) / float64(total) * 100
	return math.Round(pct*100) / 100, nil
}

type SubmitAnswersInput struct {
	QuestionAttemptID uint     `json:"questionAttemptId" binding:"required"`
	Answers           []string `json:"answers" binding:"required"`
}

type SubmitAnswersResult struct {
	QuestionAttempt *model.StudentQuestionAttempt `json:"questionAttempt"`
	Answers         []model.StudentAnswer         `json:"answers"`
}

// SubmitAnswers records the student's answers for one question attempt and
// grades them in place. Submissions past the question's time limit, less the
// grace window, are stored but marked incorrect.
func (s *AttemptService) SubmitAnswers(input SubmitAnswersInput, studentID uint) (*SubmitAnswersResult, error) {
	questionAttempt, err := s.QuestionAttemptRepo.FindByID(input.QuestionAttemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionAttemptGone
		}
		return nil, err
	}

	attempt, err := s.AttemptRepo.FindByID(questionAttempt.QuizAttemptID)
	if err != nil {
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, util.ErrSubmitForOwnAttempts
	}
	if questionAttempt.SubmittedAt != nil {
		return nil, util.ErrAlreadySubmitted
	}

	question := questionAttempt.Question
	if question == nil {
		question, err = s.QuestionRepo.FindByID(questionAttempt.QuestionID)
		if err != nil {
			return nil, err
		}
	}

	if !question.HasMultipleAnswers && len(input.Answers) > 1 {
		return nil, util.ErrSingleAnswerOnly
	}

	texts := make([]string, len(input.Answers))
	for i, raw := range input.Answers {
		texts[i] = strings.TrimSpace(raw)
	}

	now := time.Now()
	late := false
	if question.TimeLimit != nil {
		allowed := time.Duration(*question.TimeLimit-submitGraceSeconds) * time.Second
		late = now.Sub(questionAttempt.StartedAt) > allowed
	}

	var correctTexts []string
	if !late {
		correctAnswers, err := s.AnswerRepo.CorrectByQuestion(question.ID)
		if err != nil {
			return nil, err
		}
		correctTexts = make([]string, len(correctAnswers))
		for i, a := range correctAnswers {
			correctTexts[i] = a.Text
		}
	}

	records := make([]model.StudentAnswer, len(texts))
	for i, text := range texts {
		records[i] = model.StudentAnswer{
			QuestionAttemptID: questionAttempt.ID,
			Text:              text,
			IsCorrect:         !late && matchesAny(text, correctTexts),
		}
	}

	// answer rows may only exist under a submitted question attempt, so the
	// gate closes first
	questionAttempt.SubmittedAt = &now
	if err := s.QuestionAttemptRepo.Update(questionAttempt); err != nil {
		return nil, err
	}

	if err := s.StudentAnswerRepo.CreateBatch(records); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, util.ErrDuplicateAnswer
		}
		return nil, err
	}

	return &SubmitAnswersResult{
		QuestionAttempt: questionAttempt,
		Answers:         records,
	}, nil
}

// matchesAny compares case-insensitively against the accepted answers.
func matchesAny(text string, accepted []string) bool {
	for _, a := range accepted {
		if strings.EqualFold(text, a) {
			return true
		}
	}
	return false
}
