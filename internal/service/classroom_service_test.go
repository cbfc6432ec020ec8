package service

import (
	"errors"
	"testing"

	"classquiz_backend/internal/model"
	"classquiz_backend/internal/util"
)

func TestClassroomVisibilityScoping(t *testing.T) {
	e := newEnv(t)
	owner := e.seedUser(t, "T1", "t1@example.com", model.Teacher)
	other := e.seedUser(t, "T2", "t2@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	outsider := e.seedUser(t, "S2", "s2@example.com", model.Student)
	classroom := e.seedClassroom(t, owner, student)

	if _, err := e.classroom.Get(classroom.ID, owner.ID, model.Teacher); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if _, err := e.classroom.Get(classroom.ID, student.ID, model.Student); err != nil {
		t.Fatalf("enrolled student read: %v", err)
	}
	if _, err := e.classroom.Get(classroom.ID, other.ID, model.Teacher); !errors.Is(err, util.ErrClassroomNotFound) {
		t.Fatalf("foreign teacher read: got %v, want ErrClassroomNotFound", err)
	}
	if _, err := e.classroom.Get(classroom.ID, outsider.ID, model.Student); !errors.Is(err, util.ErrClassroomNotFound) {
		t.Fatalf("outsider read: got %v, want ErrClassroomNotFound", err)
	}
}

func TestClassroomListPerRole(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	mine := e.seedClassroom(t, teacher, student)

	other := e.seedUser(t, "T2", "t2@example.com", model.Teacher)
	e.seedClassroom(t, other)

	teacherList, err := e.classroom.List(teacher.ID, model.Teacher)
	if err != nil {
		t.Fatalf("teacher list: %v", err)
	}
	if len(teacherList) != 1 || teacherList[0].ID != mine.ID {
		t.Fatalf("teacher sees %d classrooms, want only their own", len(teacherList))
	}

	studentList, err := e.classroom.List(student.ID, model.Student)
	if err != nil {
		t.Fatalf("student list: %v", err)
	}
	if len(studentList) != 1 || studentList[0].ID != mine.ID {
		t.Fatalf("student sees %d classrooms, want only enrolled", len(studentList))
	}
}

func TestClassroomDeleteCascades(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	classroom := e.seedClassroom(t, teacher)
	quiz := e.seedQuiz(t, classroom, 1)
	question := e.seedQuestion(t, quiz, 1, "alpha")
	if _, err := e.enrollment.GetForClassroom(classroom.ID, teacher.ID, model.Teacher); err != nil {
		t.Fatalf("mint code: %v", err)
	}

	if err := e.classroom.Delete(classroom.ID, teacher.ID, model.Teacher); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := e.quizRepo.FindByID(quiz.ID); err == nil {
		t.Fatal("quiz survived classroom deletion")
	}
	if _, err := e.questionRepo.FindByID(question.ID); err == nil {
		t.Fatal("question survived classroom deletion")
	}
	if _, err := e.codeRepo.FindByClassroom(classroom.ID); err == nil {
		t.Fatal("enrollment code survived classroom deletion")
	}
}
