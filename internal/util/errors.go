package util

import "errors"

var (
	ErrEmailRegistered      = errors.New("this email is already registered")
	ErrClassroomNotFound    = errors.New("Classroom does not exist.")
	ErrQuizNotFound         = errors.New("Quiz does not exist.")
	ErrQuestionNotFound     = errors.New("Question does not exist.")
	ErrAttemptNotFound      = errors.New("Quiz attempt not found.")
	ErrQuestionAttemptGone  = errors.New("Question attempt does not exist.")
	ErrNotClassroomOwner    = errors.New("You can only create quizzes for your own classrooms.")
	ErrNotQuizOwner         = errors.New("You can only create questions for your own quizzes.")
	ErrNotQuestionOwner     = errors.New("You can only create answers for your own questions.")
	ErrNotEnrolled          = errors.New("You are not enrolled in this quiz's classroom.")
	ErrActiveAttemptExists  = errors.New("You already have an active attempt for this quiz.")
	ErrAttemptsExhausted    = errors.New("You have reached the maximum allowed attempts.")
	ErrAlreadySubmitted     = errors.New("This question attempt has already been completed.")
	ErrSingleAnswerOnly     = errors.New("This question allows only one answer.")
	ErrDuplicateAnswer      = errors.New("This answer already exists for this question.")
	ErrInvalidCode          = errors.New("Invalid or inactive enrollment code.")
	ErrAlreadyEnrolled      = errors.New("You are already enrolled in this classroom.")
	ErrQuizNotActive        = errors.New("This quiz is not active.")
	ErrDeadlinePassed       = errors.New("The deadline for this quiz has passed.")
	ErrInvalidScore         = errors.New("Invalid score provided.")
	ErrSubmitForOwnAttempts = errors.New("You can only submit answers for your own attempts.")
)
