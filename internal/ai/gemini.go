package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

const (
	DefaultModel   = "gemini-exp-1114"
	DefaultTimeout = 60 * time.Second
)

var (
	ErrEmptyRequest  = errors.New("empty request")
	ErrEmptyResponse = errors.New("no candidates in model response")
)

// Role is the author of a conversation turn as understood by the model.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one conversation turn sent to the model.
type Message struct {
	Role Role
	Text string
}

// Request is a single generation request.
type Request struct {
	System   string    // system instruction, optional
	Messages []Message // conversation, oldest first; the last one is the prompt
}

// GenerationConfig controls sampling of the model.
type GenerationConfig struct {
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
}

// DefaultGenerationConfig is deterministic and allows long answers with code examples.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:     0,
		TopP:            0.95,
		TopK:            64,
		MaxOutputTokens: 8192,
	}
}

func (g GenerationConfig) callOptions() []llms.CallOption {
	return []llms.CallOption{
		llms.WithTemperature(g.Temperature),
		llms.WithTopP(g.TopP),
		llms.WithTopK(g.TopK),
		llms.WithMaxTokens(g.MaxOutputTokens),
	}
}

// Config configures GeminiClient.
type Config struct {
	APIKey     string
	Model      string
	Timeout    time.Duration
	Generation GenerationConfig
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Generation == (GenerationConfig{}) {
		c.Generation = DefaultGenerationConfig()
	}
	return c
}

// GeminiClient sends tutoring conversations to a chat model.
type GeminiClient struct {
	llm    llms.Model
	cfg    Config
	logger *zap.Logger
}

// NewGeminiClient connects to the Gemini API. Empty config fields fall back to defaults.
func NewGeminiClient(ctx context.Context, cfg Config, logger *zap.Logger) (*GeminiClient, error) {
	cfg = cfg.withDefaults()

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return NewClient(llm, cfg, logger), nil
}

// NewClient wraps any langchaingo model.
func NewClient(llm llms.Model, cfg Config, logger *zap.Logger) *GeminiClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiClient{
		llm:    llm,
		cfg:    cfg.withDefaults(),
		logger: logger,
	}
}

// Generate sends the conversation to the model and returns the text of the first choice.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", ErrEmptyRequest
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	started := time.Now()
	resp, err := c.llm.GenerateContent(ctx, toMessageContent(req), c.cfg.Generation.callOptions()...)
	elapsed := time.Since(started)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.logger.Warn("gemini request timed out", zap.Duration("elapsed", elapsed))
		}
		return "", fmt.Errorf("generate content: %w", err)
	}

	c.logger.Debug("gemini response received",
		zap.Duration("elapsed", elapsed),
		zap.Int("choices", len(resp.Choices)),
	)

	if len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Content)
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}

func toMessageContent(req Request) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(req.Messages)+1)
	if req.System != "" {
		out = append(out, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	for _, m := range req.Messages {
		msgType := llms.ChatMessageTypeHuman
		if m.Role == RoleModel {
			msgType = llms.ChatMessageTypeAI
		}
		out = append(out, llms.TextParts(msgType, m.Text))
	}
	return out
}
