package telegram

import (
	"context"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
	"github.com/aliskhannn/python-tutor-bot/internal/service"
)

type QuizService interface {
	ListTopics(difficulty string) []string
	StartQuiz(ctx context.Context, owner, difficulty string, topics []string, count int) (*entities.QuizSession, error)
	CurrentQuestion(ctx context.Context, owner string) (*service.QuestionView, error)
	SubmitAnswer(ctx context.Context, owner, selectedOption string) (*entities.AnswerResult, error)
	Advance(ctx context.Context, owner string) (entities.QuizState, error)
	FinalScore(ctx context.Context, owner string) (*service.Score, error)
	Restart(ctx context.Context, owner string) error
}

type TutorService interface {
	Chat(ctx context.Context, owner, difficulty, text string) (string, error)
	NewChat(owner string) entities.ChatMessage
	ClearChat(owner string)
	ExplainConcept(ctx context.Context, difficulty, concept string) (string, error)
	ReviewCode(ctx context.Context, difficulty, code string) (string, error)
}

type ProgressService interface {
	Summary(ctx context.Context, owner string, recent int) (*service.ProgressSummary, error)
}
