package service

import (
	"testing"
	"time"

	"classquiz_backend/internal/config"
	"classquiz_backend/internal/model"
	"classquiz_backend/internal/repository"
	"classquiz_backend/internal/service/testutil"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// env bundles every repository and service over one throwaway database.
type env struct {
	db *gorm.DB

	userRepo            *repository.UserRepository
	classroomRepo       *repository.ClassroomRepository
	codeRepo            *repository.EnrollmentCodeRepository
	quizRepo            *repository.QuizRepository
	questionRepo        *repository.QuestionRepository
	answerRepo          *repository.AnswerRepository
	attemptRepo         *repository.QuizAttemptRepository
	questionAttemptRepo *repository.QuestionAttemptRepository
	studentAnswerRepo   *repository.StudentAnswerRepository

	auth       *AuthService
	classroom  *ClassroomService
	enrollment *EnrollmentService
	quiz       *QuizService
	question   *QuestionService
	answer     *AnswerService
	attempt    *AttemptService
	stats      *StatsService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.DB(t)
	log := testutil.Logger(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret-test-secret-test-secret",
			ExpireTime: time.Hour,
		},
		Enrollment: config.EnrollmentConfig{CodeCacheTTLMinutes: 5},
	}

	e := &env{
		db:                  db,
		userRepo:            repository.NewUserRepository(db),
		classroomRepo:       repository.NewClassroomRepository(db),
		codeRepo:            repository.NewEnrollmentCodeRepository(db),
		quizRepo:            repository.NewQuizRepository(db),
		questionRepo:        repository.NewQuestionRepository(db),
		answerRepo:          repository.NewAnswerRepository(db),
		attemptRepo:         repository.NewQuizAttemptRepository(db),
		questionAttemptRepo: repository.NewQuestionAttemptRepository(db),
		studentAnswerRepo:   repository.NewStudentAnswerRepository(db),
	}

	e.auth = NewAuthService(e.userRepo, cfg)
	e.classroom = NewClassroomService(e.classroomRepo)
	e.enrollment = NewEnrollmentService(e.codeRepo, e.classroomRepo, e.userRepo, nil, cfg, log)
	e.quiz = NewQuizService(e.quizRepo, e.classroomRepo)
	e.question = NewQuestionService(e.questionRepo, e.quizRepo)
	e.answer = NewAnswerService(e.answerRepo, e.questionRepo, e.quizRepo)
	e.attempt = NewAttemptService(
		e.attemptRepo,
		e.questionAttemptRepo,
		e.studentAnswerRepo,
		e.quizRepo,
		e.questionRepo,
		e.answerRepo,
		e.classroomRepo,
		log,
	)
	e.stats = NewStatsService(e.attemptRepo, e.questionAttemptRepo, e.quizRepo)

	return e
}

func (e *env) seedUser(t *testing.T, name, email string, role model.UserRole) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &model.User{Name: name, Email: email, Password: string(hash), Role: role}
	if err := e.userRepo.Create(u); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func (e *env) seedClassroom(t *testing.T, teacher *model.User, students ...*model.User) *model.Classroom {
	t.Helper()
	c := &model.Classroom{Name: "Biology 101", TeacherID: teacher.ID}
	if err := e.classroomRepo.Create(c); err != nil {
		t.Fatalf("seed classroom: %v", err)
	}
	for _, s := range students {
		if err := e.classroomRepo.AddStudent(c.ID, s); err != nil {
			t.Fatalf("enroll %s: %v", s.Email, err)
		}
	}
	return c
}

func (e *env) seedQuiz(t *testing.T, classroom *model.Classroom, allowedAttempts int) *model.Quiz {
	t.Helper()
	q := &model.Quiz{
		Title:           "Midterm",
		ClassroomID:     classroom.ID,
		IsActive:        true,
		AllowedAttempts: allowedAttempts,
	}
	if err := e.quizRepo.Create(q); err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	return q
}

// seedQuestion creates a question with one correct answer and, unless the
// question is written, one wrong answer.
func (e *env) seedQuestion(t *testing.T, quiz *model.Quiz, order int, correctText string) *model.Question {
	t.Helper()
	q := &model.Question{QuizID: quiz.ID, Text: "Question " + correctText, Order: order}
	if err := e.questionRepo.Create(q); err != nil {
		t.Fatalf("seed question: %v", err)
	}
	if err := e.answerRepo.Create(&model.Answer{QuestionID: q.ID, Text: correctText, IsCorrect: true}); err != nil {
		t.Fatalf("seed correct answer: %v", err)
	}
	if err := e.answerRepo.Create(&model.Answer{QuestionID: q.ID, Text: "wrong " + correctText, IsCorrect: false}); err != nil {
		t.Fatalf("seed wrong answer: %v", err)
	}
	return q
}
