package service

import (
	"errors"
	"testing"
	"time"

	"classquiz_backend/internal/model"
	"classquiz_backend/internal/util"
)

func TestStartRequiresEnrollment(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	outsider := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher)
	quiz := e.seedQuiz(t, classroom, 1)

	if _, err := e.attempt.Start(quiz.ID, outsider.ID); !errors.Is(err, util.ErrNotEnrolled) {
		t.Fatalf("start while not enrolled: got %v, want ErrNotEnrolled", err)
	}
}

func TestStartRejectsInactiveQuiz(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 1)

	quiz.IsActive = false
	if err := e.quizRepo.Update(quiz); err != nil {
		t.Fatalf("deactivate quiz: %v", err)
	}

	if _, err := e.attempt.Start(quiz.ID, student.ID); !errors.Is(err, util.ErrQuizNotActive) {
		t.Fatalf("start on inactive quiz: got %v, want ErrQuizNotActive", err)
	}
}

func TestStartRejectsPastDeadline(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 1)

	past := time.Now().Add(-time.Hour)
	quiz.Deadline = &past
	if err := e.quizRepo.Update(quiz); err != nil {
		t.Fatalf("set deadline: %v", err)
	}

	if _, err := e.attempt.Start(quiz.ID, student.ID); !errors.Is(err, util.ErrDeadlinePassed) {
		t.Fatalf("start past deadline: got %v, want ErrDeadlinePassed", err)
	}
}

func TestStartRejectsSecondOpenAttempt(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 5)
	e.seedQuestion(t, quiz, 1, "alpha")

	if _, err := e.attempt.Start(quiz.ID, student.ID); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if _, err := e.attempt.Start(quiz.ID, student.ID); !errors.Is(err, util.ErrActiveAttemptExists) {
		t.Fatalf("second start: got %v, want ErrActiveAttemptExists", err)
	}
}

func TestStartEnforcesAttemptCap(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 1)
	e.seedQuestion(t, quiz, 1, "alpha")

	attempt, err := e.attempt.Start(quiz.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	finishAttempt(t, e, attempt.ID, student.ID, map[string]string{"alpha": "alpha"})

	if _, err := e.attempt.Start(quiz.ID, student.ID); !errors.Is(err, util.ErrAttemptsExhausted) {
		t.Fatalf("start past cap: got %v, want ErrAttemptsExhausted", err)
	}
}

// finishAttempt drives the attempt to completion, submitting the given
// response text for each question keyed by its correct answer.
func finishAttempt(t *testing.T, e *env, attemptID, studentID uint, responses map[string]string) *model.StudentQuizAttempt {
	t.Helper()
	for {
		step, err := e.attempt.NextQuestion(attemptID, studentID)
		if err != nil {
			t.Fatalf("next question: %v", err)
		}
		if step.Completed {
			return step.Attempt
		}

		correct, err := e.answerRepo.CorrectByQuestion(step.Question.ID)
		if err != nil {
			t.Fatalf("load correct answers: %v", err)
		}
		if len(correct) == 0 {
			t.Fatalf("question %d has no correct answer seeded", step.Question.ID)
		}
		response, ok := responses[correct[0].Text]
		if !ok {
			t.Fatalf("no scripted response for question with correct answer %q", correct[0].Text)
		}

		_, err = e.attempt.SubmitAnswers(SubmitAnswersInput{
			QuestionAttemptID: step.QuestionAttempt.ID,
			Answers:           []string{response},
		}, studentID)
		if err != nil {
			t.Fatalf("submit %q: %v", response, err)
		}
	}
}

func TestProgressionVisitsQuestionsInOrder(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 1)

	// seeded out of creation order on purpose
	e.seedQuestion(t, quiz, 3, "third")
	e.seedQuestion(t, quiz, 1, "first")
	e.seedQuestion(t, quiz, 2, "second")

	attempt, err := e.attempt.Start(quiz.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	var visited []int
	for {
		step, err := e.attempt.NextQuestion(attempt.ID, student.ID)
		if err != nil {
			t.Fatalf("next question: %v", err)
		}
		if step.Completed {
			break
		}
		visited = append(visited, step.Question.Order)
		if _, err := e.attempt.SubmitAnswers(SubmitAnswersInput{
			QuestionAttemptID: step.QuestionAttempt.ID,
			Answers:           []string{"pass"},
		}, student.ID); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	want := []int{1, 2, 3}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v", visited, want)
		}
	}
}

func TestNextQuestionSkipsServedQuestions(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 1)
	e.seedQuestion(t, quiz, 1, "alpha")
	e.seedQuestion(t, quiz, 2, "beta")

	attempt, err := e.attempt.Start(quiz.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// advancing without ever submitting walks each question exactly once
	first, err := e.attempt.NextQuestion(attempt.ID, student.ID)
	if err != nil {
		t.Fatalf("first advance: %v", err)
	}
	if first.Question.Order != 1 {
		t.Fatalf("first advance served order %d, want 1", first.Question.Order)
	}
	second, err := e.attempt.NextQuestion(attempt.ID, student.ID)
	if err != nil {
		t.Fatalf("second advance: %v", err)
	}
	if second.Question.Order != 2 {
		t.Fatalf("second advance served order %d, want 2", second.Question.Order)
	}
	if first.QuestionAttempt.ID == second.QuestionAttempt.ID {
		t.Fatal("each served question should get its own question attempt")
	}

	third, err := e.attempt.NextQuestion(attempt.ID, student.ID)
	if err != nil {
		t.Fatalf("third advance: %v", err)
	}
	if !third.Completed {
		t.Fatal("advancing past the last question should complete the attempt")
	}
	if third.Attempt.Score == nil || *third.Attempt.Score != 0 {
		t.Fatalf("skipped-through attempt score = %v, want 0", third.Attempt.Score)
	}
}

func TestPerfectRunScoresHundred(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 1)
	e.seedQuestion(t, quiz, 1, "alpha")
	e.seedQuestion(t, quiz, 2, "beta")

	attempt, err := e.attempt.Start(quiz.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	done := finishAttempt(t, e, attempt.ID, student.ID, map[string]string{
		"alpha": "alpha",
		"beta":  "beta",
	})

	if done.CompletedAt == nil {
		t.Fatal("attempt not marked completed")
	}
	if done.Score == nil || *done.Score != 100.00 {
		t.Fatalf("score = %v, want 100.00", done.Score)
	}
}

func TestScoreRoundsToTwoDecimals(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 2)
	e.seedQuestion(t, quiz, 1, "alpha")
	e.seedQuestion(t, quiz, 2, "beta")
	e.seedQuestion(t, quiz, 3, "gamma")

	attempt, err := e.attempt.Start(quiz.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	done := finishAttempt(t, e, attempt.ID, student.ID, map[string]string{
		"alpha": "alpha",
		"beta":  "miss",
		"gamma": "miss",
	})
	if done.Score == nil || *done.Score != 33.33 {
		t.Fatalf("1/3 score = %v, want 33.33", done.Score)
	}

	attempt2, err := e.attempt.Start(quiz.ID, student.ID)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	done2 := finishAttempt(t, e, attempt2.ID, student.ID, map[string]string{
		"alpha": "alpha",
		"beta":  "beta",
		"gamma": "miss",
	})
	if done2.Score == nil || *done2.Score != 66.67 {
		t.Fatalf("2/3 score = %v, want 66.67", done2.Score)
	}
}

func TestScoreCountsEveryAnswerRow(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 1)

	question := &model.Question{QuizID: quiz.ID, Text: "primary colors", Order: 1, HasMultipleAnswers: true}
	if err := e.questionRepo.Create(question); err != nil {
		t.Fatalf("seed question: %v", err)
	}
	for _, text := range []string{"red", "blue"} {
		if err := e.answerRepo.Create(&model.Answer{QuestionID: question.ID, Text: text, IsCorrect: true}); err != nil {
			t.Fatalf("seed answer %q: %v", text, err)
		}
	}

	attempt, err := e.attempt.Start(quiz.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	step, err := e.attempt.NextQuestion(attempt.ID, student.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, err := e.attempt.SubmitAnswers(SubmitAnswersInput{
		QuestionAttemptID: step.QuestionAttempt.ID,
		Answers:           []string{"red", "green", "purple"},
	}, student.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	done, err := e.attempt.NextQuestion(attempt.ID, student.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !done.Completed {
		t.Fatal("attempt should be completed")
	}
	// one correct of three recorded answers
	if done.Attempt.Score == nil || *done.Attempt.Score != 33.33 {
		t.Fatalf("score = %v, want 33.33", done.Attempt.Score)
	}
}

func TestDuplicateAnswersInOneSubmission(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 1)

	question := &model.Question{QuizID: quiz.ID, Text: "name two", Order: 1, HasMultipleAnswers: true}
	if err := e.questionRepo.Create(question); err != nil {
		t.Fatalf("seed question: %v", err)
	}
	if err := e.answerRepo.Create(&model.Answer{QuestionID: question.ID, Text: "red", IsCorrect: true}); err != nil {
		t.Fatalf("seed answer: %v", err)
	}

	attempt, err := e.attempt.Start(quiz.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	step, err := e.attempt.NextQuestion(attempt.ID, student.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	// both strip to the same text and collide on the unique key
	_, err = e.attempt.SubmitAnswers(SubmitAnswersInput{
		QuestionAttemptID: step.QuestionAttempt.ID,
		Answers:           []string{"red", "  red "},
	}, student.ID)
	if !errors.Is(err, util.ErrDuplicateAnswer) {
		t.Fatalf("duplicate submit: got %v, want ErrDuplicateAnswer", err)
	}

	var stored int64
	if err := e.db.Model(&model.StudentAnswer{}).
		Where("question_attempt_id = ?", step.QuestionAttempt.ID).
		Count(&stored).Error; err != nil {
		t.Fatalf("count answers: %v", err)
	}
	if stored != 0 {
		t.Fatalf("stored %d answers after failed submission, want 0", stored)
	}

	// the submission gate closed before the insert failed
	_, err = e.attempt.SubmitAnswers(SubmitAnswersInput{
		QuestionAttemptID: step.QuestionAttempt.ID,
		Answers:           []string{"red"},
	}, student.ID)
	if !errors.Is(err, util.ErrAlreadySubmitted) {
		t.Fatalf("retry submit: got %v, want ErrAlreadySubmitted", err)
	}
}

func TestAnswerMatchingIsCaseInsensitive(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 1)
	e.seedQuestion(t, quiz, 1, "Paris")

	attempt, err := e.attempt.Start(quiz.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	step, err := e.attempt.NextQuestion(attempt.ID, student.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	result, err := e.attempt.SubmitAnswers(SubmitAnswersInput{
		QuestionAttemptID: step.QuestionAttempt.ID,
		Answers:           []string{"  paris "},
	}, student.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(result.Answers) != 1 {
		t.Fatalf("recorded %d answers, want 1", len(result.Answers))
	}
	if result.Answers[0].Text != "paris" {
		t.Fatalf("stored text %q, want stripped %q", result.Answers[0].Text, "paris")
	}
	if !result.Answers[0].IsCorrect {
		t.Fatal("case-insensitive match should grade correct")
	}
}

func TestLateSubmissionGradesIncorrect(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 1)

	limit := 60
	question := &model.Question{QuizID: quiz.ID, Text: "timed", Order: 1, TimeLimit: &limit}
	if err := e.questionRepo.Create(question); err != nil {
		t.Fatalf("seed question: %v", err)
	}
	if err := e.answerRepo.Create(&model.Answer{QuestionID: question.ID, Text: "yes", IsCorrect: true}); err != nil {
		t.Fatalf("seed answer: %v", err)
	}

	attempt, err := e.attempt.Start(quiz.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	step, err := e.attempt.NextQuestion(attempt.ID, student.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	// push the start of the question 65s into the past
	started := time.Now().Add(-65 * time.Second)
	if err := e.db.Model(&model.StudentQuestionAttempt{}).
		Where("id = ?", step.QuestionAttempt.ID).
		Update("started_at", started).Error; err != nil {
		t.Fatalf("backdate question attempt: %v", err)
	}

	result, err := e.attempt.SubmitAnswers(SubmitAnswersInput{
		QuestionAttemptID: step.QuestionAttempt.ID,
		Answers:           []string{"yes"},
	}, student.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Answers[0].IsCorrect {
		t.Fatal("submission 65s into a 60s limit should grade incorrect")
	}
}

func TestSingleAnswerQuestionRejectsMultiple(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 1)
	e.seedQuestion(t, quiz, 1, "alpha")

	attempt, err := e.attempt.Start(quiz.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	step, err := e.attempt.NextQuestion(attempt.ID, student.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	_, err = e.attempt.SubmitAnswers(SubmitAnswersInput{
		QuestionAttemptID: step.QuestionAttempt.ID,
		Answers:           []string{"alpha", "beta"},
	}, student.ID)
	if !errors.Is(err, util.ErrSingleAnswerOnly) {
		t.Fatalf("multi submit: got %v, want ErrSingleAnswerOnly", err)
	}

	// the raw list length is what counts, repeats included
	_, err = e.attempt.SubmitAnswers(SubmitAnswersInput{
		QuestionAttemptID: step.QuestionAttempt.ID,
		Answers:           []string{"alpha", "alpha"},
	}, student.ID)
	if !errors.Is(err, util.ErrSingleAnswerOnly) {
		t.Fatalf("repeated submit: got %v, want ErrSingleAnswerOnly", err)
	}
}

func TestResubmissionIsRejected(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 1)
	e.seedQuestion(t, quiz, 1, "alpha")

	attempt, err := e.attempt.Start(quiz.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	step, err := e.attempt.NextQuestion(attempt.ID, student.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	input := SubmitAnswersInput{
		QuestionAttemptID: step.QuestionAttempt.ID,
		Answers:           []string{"alpha"},
	}
	if _, err := e.attempt.SubmitAnswers(input, student.ID); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := e.attempt.SubmitAnswers(input, student.ID); !errors.Is(err, util.ErrAlreadySubmitted) {
		t.Fatalf("second submit: got %v, want ErrAlreadySubmitted", err)
	}
}

func TestCannotSubmitForAnotherStudent(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S1", "s1@example.com", model.Student)
	intruder := e.seedUser(t, "S2", "s2@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student, intruder)
	quiz := e.seedQuiz(t, classroom, 1)
	e.seedQuestion(t, quiz, 1, "alpha")

	attempt, err := e.attempt.Start(quiz.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	step, err := e.attempt.NextQuestion(attempt.ID, student.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	_, err = e.attempt.SubmitAnswers(SubmitAnswersInput{
		QuestionAttemptID: step.QuestionAttempt.ID,
		Answers:           []string{"alpha"},
	}, intruder.ID)
	if !errors.Is(err, util.ErrSubmitForOwnAttempts) {
		t.Fatalf("foreign submit: got %v, want ErrSubmitForOwnAttempts", err)
	}
}

func TestCompletedAttemptScoreIsStable(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 1)
	e.seedQuestion(t, quiz, 1, "alpha")

	attempt, err := e.attempt.Start(quiz.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	done := finishAttempt(t, e, attempt.ID, student.ID, map[string]string{"alpha": "alpha"})

	again, err := e.attempt.NextQuestion(attempt.ID, student.ID)
	if err != nil {
		t.Fatalf("advance after completion: %v", err)
	}
	if !again.Completed {
		t.Fatal("completed attempt should report completed")
	}
	if again.Attempt.Score == nil || *again.Attempt.Score != *done.Score {
		t.Fatalf("score changed after completion: %v vs %v", again.Attempt.Score, done.Score)
	}
	if !again.Attempt.CompletedAt.Equal(*done.CompletedAt) {
		t.Fatalf("completion time changed: %v vs %v", again.Attempt.CompletedAt, done.CompletedAt)
	}
}

func TestArchivedAttemptsAfterRemoval(t *testing.T) {
	e := newEnv(t)
	teacher := e.seedUser(t, "T", "t@example.com", model.Teacher)
	student := e.seedUser(t, "S", "s@example.com", model.Student)
	classroom := e.seedClassroom(t, teacher, student)
	quiz := e.seedQuiz(t, classroom, 1)
	e.seedQuestion(t, quiz, 1, "alpha")

	attempt, err := e.attempt.Start(quiz.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	finishAttempt(t, e, attempt.ID, student.ID, map[string]string{"alpha": "alpha"})

	current, err := e.attempt.List(student.ID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(current) != 1 {
		t.Fatalf("listed %d attempts before removal, want 1", len(current))
	}

	if err := e.classroom.RemoveStudent(classroom.ID, student.ID, teacher.ID, model.Teacher); err != nil {
		t.Fatalf("remove student: %v", err)
	}

	current, err = e.attempt.List(student.ID, 0)
	if err != nil {
		t.Fatalf("list after removal: %v", err)
	}
	if len(current) != 0 {
		t.Fatalf("listed %d current attempts after removal, want 0", len(current))
	}

	archived, err := e.attempt.ListArchived(student.ID)
	if err != nil {
		t.Fatalf("list archived: %v", err)
	}
	if len(archived) != 1 {
		t.Fatalf("listed %d archived attempts, want 1", len(archived))
	}
	if archived[0].ID != attempt.ID {
		t.Fatalf("archived attempt %d, want %d", archived[0].ID, attempt.ID)
	}
}
