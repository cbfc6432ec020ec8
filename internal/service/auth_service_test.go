package service

import (
	"errors"
	"testing"

	"classquiz_backend/internal/model"
	"classquiz_backend/internal/util"
)

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t)

	user := &model.User{Name: "Ada", Email: "ada@example.com", Password: "password123", Role: model.Teacher}
	if err := e.auth.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Password == "password123" {
		t.Fatal("password stored in plaintext")
	}

	token, logged, err := e.auth.Login("ada@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("login returned empty token")
	}
	if logged.ID != user.ID {
		t.Fatalf("login returned user %d, want %d", logged.ID, user.ID)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	e := newEnv(t)

	first := &model.User{Name: "Ada", Email: "ada@example.com", Password: "password123"}
	if err := e.auth.Register(first); err != nil {
		t.Fatalf("first register: %v", err)
	}

	second := &model.User{Name: "Eve", Email: "ada@example.com", Password: "password456"}
	if err := e.auth.Register(second); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("duplicate register: got %v, want ErrEmailRegistered", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	e := newEnv(t)

	user := &model.User{Name: "Ada", Email: "ada@example.com", Password: "password123"}
	if err := e.auth.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := e.auth.Login("ada@example.com", "wrong-password"); err == nil {
		t.Fatal("login with wrong password should fail")
	}
}

func TestRegisterDefaultsToStudentRole(t *testing.T) {
	e := newEnv(t)

	user := &model.User{Name: "Ada", Email: "ada@example.com", Password: "password123", Role: model.Admin}
	if err := e.auth.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.Student {
		t.Fatalf("role = %s, admins cannot self-register", user.Role)
	}
}
