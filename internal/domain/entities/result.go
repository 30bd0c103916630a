package entities

import "time"

// QuizResult is the stored record of a completed quiz.
type QuizResult struct {
	ID          int64
	Owner       string
	SessionID   string
	Difficulty  Difficulty
	Topics      []string
	Score       int
	Total       int
	Percentage  float64
	StartedAt   time.Time
	CompletedAt time.Time
	Answers     []QuizAnswer
}
