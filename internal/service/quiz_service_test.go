package service

import (
	"errors"
	"testing"

	"classquiz_backend/internal/model"
	"classquiz_backend/internal/util"
)

func TestQuizCreateRequiresClassroomOwnership(t *testing.T) {
	e := newEnv(t)
	owner := e.seedUser(t, "T1", "t1@example.com", model.Teacher)
	other := e.seedUser(t, "T2", "t2@example.com", model.Teacher)
	classroom := e.seedClassroom(t, owner)

	_, err := e.quiz.Create(QuizInput{Title: "Sneaky", ClassroomID: classroom.ID}, other.ID, model.Teacher)
	if !errors.Is(err, util.ErrNotClassroomOwner) {
		t.Fatalf("foreign create: got %v, want ErrNotClassroomOwner", err)
	}
}

func TestQuizDefaults(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	classroom := e.seedClassroom(t, teacher)

	quiz, err := e.quiz.Create(QuizInput{Title: "Midterm", ClassroomID: classroom.ID}, teacher.ID, model.Teacher)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !quiz.IsActive {
		t.Fatal("new quiz should default to active")
	}
	if quiz.AllowedAttempts != 1 {
		t.Fatalf("allowed attempts = %d, want default 1", quiz.AllowedAttempts)
	}
}

func TestQuizVisibility(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	outsider := e.seedUser(t, "S2", "s2@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 1)

	if _, err := e.quiz.Get(quiz.ID, student.ID, model.Student); err != nil {
		t.Fatalf("enrolled student read: %v", err)
	}
	if _, err := e.quiz.Get(quiz.ID, outsider.ID, model.Student); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("outsider read: got %v, want ErrQuizNotFound", err)
	}

	listed, err := e.quiz.ListByClassroom(classroom.ID, student.ID, model.Student)
	if err != nil {
		t.Fatalf("list by classroom: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != quiz.ID {
		t.Fatalf("student listed %d quizzes, want 1", len(listed))
	}
}

func TestQuizDeleteCascadesQuestions(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	classroom := e.seedClassroom(t, teacher)
	quiz := e.seedQuiz(t, classroom, 1)
	question := e.seedQuestion(t, quiz, 1, "alpha")

	if err := e.quiz.Delete(quiz.ID, teacher.ID, model.Teacher); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := e.questionRepo.FindByID(question.ID); err == nil {
		t.Fatal("question survived quiz deletion")
	}
	answers, err := e.answerRepo.ListByQuestion(question.ID)
	if err != nil {
		t.Fatalf("list answers: %v", err)
	}
	if len(answers) != 0 {
		t.Fatalf("%d answers survived quiz deletion", len(answers))
	}
}
