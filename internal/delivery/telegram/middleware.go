package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/python-tutor-bot/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, userMessage(err))
			return nil
		}
		return nil
	}
}

// userMessage maps service errors to the text shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrExternalService):
		return msgTutorUnavailable
	case errors.Is(err, service.ErrInputTooLarge):
		return msgCodeTooLarge
	case errors.Is(err, service.ErrUnknownConcept):
		return msgUnknownConcept
	case errors.Is(err, service.ErrEmptyInput):
		return msgEmptyQuestion
	case errors.Is(err, service.ErrSessionNotFound):
		return msgNoActiveQuiz
	case errors.Is(err, service.ErrNoQuestionsAvailable):
		return msgNoQuestions
	default:
		return msgInternalError
	}
}
