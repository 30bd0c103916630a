package service

import (
	"context"
	"time"

	"github.com/aliskhannn/python-tutor-bot/internal/ai"
	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
)

// QuestionBank is the read-only source of quiz questions.
type QuestionBank interface {
	Difficulties() []entities.Difficulty
	TopicsFor(difficulty entities.Difficulty) []string
	Questions(difficulty entities.Difficulty, topic string) []entities.Question
}

// QuizSessionStorage keeps one quiz session per owner.
type QuizSessionStorage interface {
	Store(session *entities.QuizSession)
	Get(owner string) (*entities.QuizSession, bool)
	Update(owner string, fn func(*entities.QuizSession) error) (*entities.QuizSession, error)
	Delete(owner string)
}

// ResultRepository persists completed quizzes.
type ResultRepository interface {
	Save(ctx context.Context, result *entities.QuizResult) error
	ListByOwner(ctx context.Context, owner string, limit int) ([]entities.QuizResult, error)
}

// ChatStorage keeps the tutoring conversation of each owner.
type ChatStorage interface {
	Append(owner string, msgs ...entities.ChatMessage)
	Get(owner string) []entities.ChatMessage
	Recent(owner string, n int) []entities.ChatMessage
	Reset(owner string, msgs ...entities.ChatMessage)
	Delete(owner string)
}

// Generator produces text from a prompt using a generative model.
type Generator interface {
	Generate(ctx context.Context, req ai.Request) (string, error)
}

// IdleEvicter drops entries that have been idle since before.
type IdleEvicter interface {
	EvictIdle(before time.Time) int
}
