package service

import (
	"errors"
	"testing"

	"classquiz_backend/internal/model"
	"classquiz_backend/internal/util"
)

func TestQuestionOrderAutoAssignment(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	classroom := e.seedClassroom(t, teacher)
	quiz := e.seedQuiz(t, classroom, 1)

	first, err := e.question.Create(QuestionInput{QuizID: quiz.ID, Text: "one"}, teacher.ID, model.Teacher)
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if first.Order != 1 {
		t.Fatalf("first order = %d, want 1", first.Order)
	}

	second, err := e.question.Create(QuestionInput{QuizID: quiz.ID, Text: "two"}, teacher.ID, model.Teacher)
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.Order != 2 {
		t.Fatalf("second order = %d, want 2", second.Order)
	}

	seven := 7
	explicit, err := e.question.Create(QuestionInput{QuizID: quiz.ID, Text: "seven", Order: &seven}, teacher.ID, model.Teacher)
	if err != nil {
		t.Fatalf("create explicit: %v", err)
	}
	if explicit.Order != 7 {
		t.Fatalf("explicit order = %d, want 7", explicit.Order)
	}

	next, err := e.question.Create(QuestionInput{QuizID: quiz.ID, Text: "eight"}, teacher.ID, model.Teacher)
	if err != nil {
		t.Fatalf("create after gap: %v", err)
	}
	if next.Order != 8 {
		t.Fatalf("order after gap = %d, want 8", next.Order)
	}
}

func TestQuestionListIsOrdered(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	classroom := e.seedClassroom(t, teacher)
	quiz := e.seedQuiz(t, classroom, 1)

	e.seedQuestion(t, quiz, 2, "second")
	e.seedQuestion(t, quiz, 1, "first")

	questions, err := e.question.ListByQuiz(quiz.ID, teacher.ID, model.Teacher)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("listed %d questions, want 2", len(questions))
	}
	if questions[0].Order != 1 || questions[1].Order != 2 {
		t.Fatalf("orders %d,%d, want 1,2", questions[0].Order, questions[1].Order)
	}
}

func TestQuestionCreateRequiresQuizOwnership(t *testing.T) {
	e := newEnv(t)
	owner := e.seedUser(t, "T1", "t1@example.com", model.Teacher)
	other := e.seedUser(t, "T2", "t2@example.com", model.Teacher)
	classroom := e.seedClassroom(t, owner)
	quiz := e.seedQuiz(t, classroom, 1)

	_, err := e.question.Create(QuestionInput{QuizID: quiz.ID, Text: "x"}, other.ID, model.Teacher)
	if !errors.Is(err, util.ErrNotQuizOwner) {
		t.Fatalf("foreign create: got %v, want ErrNotQuizOwner", err)
	}
}
