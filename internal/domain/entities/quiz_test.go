package entities

import (
	"errors"
	"testing"
	"time"
)

func testQuestions() []Question {
	return []Question{
		{
			ID:           "Beginner/Variables & Data Types/1",
			Topic:        "Variables & Data Types",
			Prompt:       "What is the type of 42?",
			Options:      []string{"int", "str", "float"},
			CorrectIndex: 0,
		},
		{
			ID:           "Beginner/Variables & Data Types/2",
			Topic:        "Variables & Data Types",
			Prompt:       "What is the type of 'hi'?",
			Options:      []string{"int", "str", "list"},
			CorrectIndex: 1,
			Explanation:  "Quotes make a string.",
		},
	}
}

func newTestSession(t *testing.T) *QuizSession {
	t.Helper()
	s, err := NewQuizSession("s1", "tg:1", DifficultyBeginner, []string{"Variables & Data Types"}, testQuestions(), time.Unix(0, 0))
	if err != nil {
		t.Fatalf("NewQuizSession: %v", err)
	}
	return s
}

func TestNewQuizSessionRejectsEmpty(t *testing.T) {
	_, err := NewQuizSession("s1", "tg:1", DifficultyBeginner, nil, nil, time.Now())
	if !errors.Is(err, ErrEmptyQuiz) {
		t.Fatalf("err = %v, want ErrEmptyQuiz", err)
	}
}

func TestQuizSessionFullRun(t *testing.T) {
	s := newTestSession(t)
	now := time.Unix(100, 0)

	if got := s.State(); got != QuizStateInProgress {
		t.Fatalf("state = %s, want in_progress", got)
	}

	res, err := s.Submit("int", now)
	if err != nil {
		t.Fatalf("submit q1: %v", err)
	}
	if !res.IsCorrect || s.Score != 1 || !s.Answered {
		t.Fatalf("after q1: correct=%v score=%d answered=%v", res.IsCorrect, s.Score, s.Answered)
	}

	state, err := s.Advance(now)
	if err != nil {
		t.Fatalf("advance q1: %v", err)
	}
	if state != QuizStateInProgress || s.CurrentIndex != 1 || s.Answered {
		t.Fatalf("after advance: state=%s index=%d answered=%v", state, s.CurrentIndex, s.Answered)
	}

	res, err = s.Submit("int", now)
	if err != nil {
		t.Fatalf("submit q2: %v", err)
	}
	if res.IsCorrect || s.Score != 1 {
		t.Fatalf("after q2: correct=%v score=%d", res.IsCorrect, s.Score)
	}
	if res.CorrectAnswer != "str" || res.Explanation != "Quotes make a string." {
		t.Fatalf("feedback = %+v", res)
	}

	state, err = s.Advance(now)
	if err != nil {
		t.Fatalf("advance q2: %v", err)
	}
	if state != QuizStateCompleted {
		t.Fatalf("state = %s, want completed", state)
	}
	if s.CompletedAt == nil || !s.CompletedAt.Equal(now) {
		t.Fatalf("CompletedAt = %v", s.CompletedAt)
	}
	if got := s.FinalScore(); got != 50.0 {
		t.Fatalf("FinalScore = %v, want 50", got)
	}

	result, err := s.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if result.Score != 1 || result.Total != 2 || result.Percentage != 50.0 || len(result.Answers) != 2 {
		t.Fatalf("result = %+v", result)
	}
}

func TestQuizSessionDoubleSubmit(t *testing.T) {
	s := newTestSession(t)

	if _, err := s.Submit("int", time.Now()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := s.Submit("int", time.Now())
	if !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("second submit err = %v, want ErrAlreadyAnswered", err)
	}
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("ErrAlreadyAnswered must wrap ErrInvalidTransition")
	}
	if s.Score != 1 || len(s.Answers) != 1 {
		t.Fatalf("score = %d answers = %d, want 1 and 1", s.Score, len(s.Answers))
	}
}

func TestQuizSessionAdvanceBeforeAnswer(t *testing.T) {
	s := newTestSession(t)

	state, err := s.Advance(time.Now())
	if !errors.Is(err, ErrNotAnswered) {
		t.Fatalf("err = %v, want ErrNotAnswered", err)
	}
	if state != QuizStateInProgress || s.CurrentIndex != 0 {
		t.Fatalf("state = %s index = %d", state, s.CurrentIndex)
	}
}

func TestQuizSessionCompletedRejectsActions(t *testing.T) {
	s := newTestSession(t)
	for range s.Questions {
		if _, err := s.Submit("int", time.Now()); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if _, err := s.Advance(time.Now()); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}

	if _, err := s.Submit("int", time.Now()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("submit after completion err = %v", err)
	}
	if _, err := s.Advance(time.Now()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("advance after completion err = %v", err)
	}
	if _, err := s.CurrentQuestion(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("current question after completion err = %v", err)
	}
}

func TestQuizSessionUnknownOptionIsIncorrect(t *testing.T) {
	s := newTestSession(t)

	res, err := s.Submit("complex", time.Now())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.IsCorrect || s.Score != 0 {
		t.Fatalf("unknown option graded correct")
	}
}

func TestQuizSessionRestart(t *testing.T) {
	s := newTestSession(t)
	if _, err := s.Submit("int", time.Now()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	s.Restart()

	if got := s.State(); got != QuizStateNotStarted {
		t.Fatalf("state = %s, want not_started", got)
	}
	if s.Score != 0 || s.CurrentIndex != 0 || s.Answered || len(s.Questions) != 0 {
		t.Fatalf("restart left state behind: %+v", s)
	}
	if _, err := s.Result(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Result after restart err = %v", err)
	}
}

func TestNilSessionIsNotStarted(t *testing.T) {
	var s *QuizSession
	if got := s.State(); got != QuizStateNotStarted {
		t.Fatalf("state = %s", got)
	}
}

func TestCalculateScore(t *testing.T) {
	tests := []struct {
		correct, total int
		want           float64
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 2, 50},
		{3, 3, 100},
		{1, 4, 25},
	}
	for _, tt := range tests {
		if got := CalculateScore(tt.correct, tt.total); got != tt.want {
			t.Errorf("CalculateScore(%d, %d) = %v, want %v", tt.correct, tt.total, got, tt.want)
		}
	}
}
