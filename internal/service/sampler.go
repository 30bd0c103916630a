package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
)

// QuestionSampler draws random quiz questions from the bank.
type QuestionSampler struct {
	bank QuestionBank

	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuestionSampler creates a sampler. A nil src uses a time-seeded source.
func NewQuestionSampler(bank QuestionBank, src rand.Source) *QuestionSampler {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &QuestionSampler{
		bank: bank,
		rng:  rand.New(src),
	}
}

// Sample pools the questions of the given topics and draws min(count, pool size)
// of them without replacement, in random order. Topics form a set, so a repeated
// name is pooled once. An empty pool or a count below 1 yields an empty result.
func (s *QuestionSampler) Sample(difficulty entities.Difficulty, topics []string, count int) []entities.Question {
	if count < 1 {
		return nil
	}

	pool := s.pool(difficulty, topics)
	if len(pool) == 0 {
		return nil
	}

	n := min(count, len(pool))

	s.mu.Lock()
	perm := s.rng.Perm(len(pool))
	s.mu.Unlock()

	out := make([]entities.Question, 0, n)
	for _, i := range perm[:n] {
		out = append(out, pool[i])
	}

	return out
}

// PoolSize returns the number of candidate questions for the selection.
func (s *QuestionSampler) PoolSize(difficulty entities.Difficulty, topics []string) int {
	return len(s.pool(difficulty, topics))
}

func (s *QuestionSampler) pool(difficulty entities.Difficulty, topics []string) []entities.Question {
	var pool []entities.Question
	for _, t := range lo.Uniq(topics) {
		pool = append(pool, s.bank.Questions(difficulty, t)...)
	}
	return pool
}
