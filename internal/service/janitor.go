package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionJanitor periodically evicts idle quiz sessions and chat histories.
type SessionJanitor struct {
	quizzes IdleEvicter
	chats   IdleEvicter
	ttl     time.Duration
	spec    string
	logger  *zap.Logger
	now     func() time.Time
}

// NewSessionJanitor creates a janitor that runs on the cron spec and evicts
// entries idle for longer than ttl.
func NewSessionJanitor(quizzes, chats IdleEvicter, ttl time.Duration, spec string, logger *zap.Logger) *SessionJanitor {
	return &SessionJanitor{
		quizzes: quizzes,
		chats:   chats,
		ttl:     ttl,
		spec:    spec,
		logger:  logger,
		now:     time.Now,
	}
}

// Start runs the cron scheduler until ctx is cancelled.
func (j *SessionJanitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(j.spec, func() { j.Sweep() }); err != nil {
		return fmt.Errorf("add janitor job %q: %w", j.spec, err)
	}

	c.Start()
	j.logger.Info("session janitor started",
		zap.String("spec", j.spec),
		zap.Duration("idle_ttl", j.ttl),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("session janitor stopped")

	return nil
}

// Sweep evicts everything idle for longer than the TTL and returns the counts.
func (j *SessionJanitor) Sweep() (quizzes, chats int) {
	before := j.now().Add(-j.ttl)

	quizzes = j.quizzes.EvictIdle(before)
	chats = j.chats.EvictIdle(before)

	if quizzes > 0 || chats > 0 {
		j.logger.Info("evicted idle sessions",
			zap.Int("quiz_sessions", quizzes),
			zap.Int("chat_histories", chats),
		)
	}

	return quizzes, chats
}
