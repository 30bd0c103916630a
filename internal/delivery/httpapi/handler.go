package httpapi

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler serves the JSON API used by the browser front-end.
type Handler struct {
	quiz     QuizService
	tutor    TutorService
	progress ProgressService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(
	quiz QuizService,
	tutor TutorService,
	progress ProgressService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		quiz:     quiz,
		tutor:    tutor,
		progress: progress,
		validate: validator.New(),
		logger:   logger,
	}
}
