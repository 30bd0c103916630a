package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/python-tutor-bot/internal/ai"
	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
)

var (
	ErrExternalService = errors.New("tutor service is unavailable")
	ErrUnknownConcept  = errors.New("unknown concept")
	ErrEmptyInput      = errors.New("empty input")
	ErrInputTooLarge   = errors.New("input is too large")
)

const (
	defaultContextMessages = 20
	defaultMaxCodeBytes    = 8 << 10
)

// TutorConfig tunes TutorService.
type TutorConfig struct {
	ContextMessages int // history messages sent with each chat turn
	MaxCodeBytes    int // largest code snippet accepted for review
}

// TutorService answers questions using a generative model.
// Model failures are returned as ErrExternalService and never touch quiz state.
type TutorService struct {
	gen    Generator
	chats  ChatStorage
	cfg    TutorConfig
	logger *zap.Logger
	now    func() time.Time
}

func NewTutorService(gen Generator, chats ChatStorage, cfg TutorConfig, logger *zap.Logger) *TutorService {
	if cfg.ContextMessages <= 0 {
		cfg.ContextMessages = defaultContextMessages
	}
	if cfg.MaxCodeBytes <= 0 {
		cfg.MaxCodeBytes = defaultMaxCodeBytes
	}

	return &TutorService{
		gen:    gen,
		chats:  chats,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Chat sends text with the recent history to the model and records both turns.
// Nothing is recorded when the model call fails.
func (s *TutorService) Chat(ctx context.Context, owner, difficulty, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyInput
	}

	d := parseDifficultyOrDefault(difficulty)

	history := s.chats.Recent(owner, s.cfg.ContextMessages)
	messages := toModelMessages(history)
	messages = append(messages, ai.Message{Role: ai.RoleUser, Text: text})

	reply, err := s.generate(ctx, "chat", ai.Request{
		System:   systemInstruction(d),
		Messages: messages,
	})
	if err != nil {
		return "", err
	}

	now := s.now()
	s.chats.Append(owner,
		entities.ChatMessage{Role: entities.RoleUser, Content: text, CreatedAt: now},
		entities.ChatMessage{Role: entities.RoleAssistant, Content: reply, CreatedAt: now},
	)

	return reply, nil
}

// NewChat starts a fresh conversation that begins with the welcome message.
func (s *TutorService) NewChat(owner string) entities.ChatMessage {
	msg := entities.ChatMessage{
		Role:      entities.RoleAssistant,
		Content:   welcomeMessage,
		CreatedAt: s.now(),
	}
	s.chats.Reset(owner, msg)
	return msg
}

// ClearChat forgets the owner's conversation.
func (s *TutorService) ClearChat(owner string) {
	s.chats.Delete(owner)
}

// History returns the owner's conversation, oldest first.
func (s *TutorService) History(owner string) []entities.ChatMessage {
	return s.chats.Get(owner)
}

// ExplainConcept asks the model to teach one of the known concepts.
func (s *TutorService) ExplainConcept(ctx context.Context, difficulty, concept string) (string, error) {
	name, ok := lookupConcept(concept)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownConcept, concept)
	}

	d := parseDifficultyOrDefault(difficulty)

	return s.generate(ctx, "concept", ai.Request{
		System:   systemInstruction(d),
		Messages: []ai.Message{{Role: ai.RoleUser, Text: conceptPrompt(name, d)}},
	})
}

// ReviewCode asks the model to review a snippet. The code is only sent as text.
func (s *TutorService) ReviewCode(ctx context.Context, difficulty, code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", ErrEmptyInput
	}
	if len(code) > s.cfg.MaxCodeBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrInputTooLarge, len(code), s.cfg.MaxCodeBytes)
	}

	d := parseDifficultyOrDefault(difficulty)

	return s.generate(ctx, "review", ai.Request{
		System:   systemInstruction(d),
		Messages: []ai.Message{{Role: ai.RoleUser, Text: codeReviewPrompt(code, d)}},
	})
}

func (s *TutorService) generate(ctx context.Context, kind string, req ai.Request) (string, error) {
	started := s.now()

	reply, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.logger.Error("model call failed",
			zap.String("kind", kind),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %w", ErrExternalService, err)
	}

	s.logger.Debug("model call completed",
		zap.String("kind", kind),
		zap.Int("reply_len", len(reply)),
	)

	return reply, nil
}

// toModelMessages converts stored history to model turns.
// The model expects the conversation to open with a user turn, so leading
// assistant messages such as the welcome text are skipped.
func toModelMessages(history []entities.ChatMessage) []ai.Message {
	out := make([]ai.Message, 0, len(history)+1)
	for _, m := range history {
		role := ai.RoleUser
		if m.Role == entities.RoleAssistant {
			role = ai.RoleModel
		}
		if len(out) == 0 && role == ai.RoleModel {
			continue
		}
		out = append(out, ai.Message{Role: role, Text: m.Content})
	}
	return out
}

func parseDifficultyOrDefault(s string) entities.Difficulty {
	if d, ok := entities.ParseDifficulty(s); ok {
		return d
	}
	return entities.DifficultyBeginner
}
