package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
)

// ResultRepository keeps completed quiz results in memory.
// It is used when no database is configured.
type ResultRepository struct {
	mu      sync.RWMutex
	seq     int64
	results map[string][]entities.QuizResult
}

// NewResultRepository creates an empty in-memory ResultRepository.
func NewResultRepository() *ResultRepository {
	return &ResultRepository{
		results: make(map[string][]entities.QuizResult),
	}
}

// Save stores a copy of result and assigns it an ID.
func (r *ResultRepository) Save(_ context.Context, result *entities.QuizResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	result.ID = r.seq

	r.results[result.Owner] = append(r.results[result.Owner], cloneResult(*result))

	return nil
}

// ListByOwner returns the owner's results, newest first.
// A limit of zero or less returns all of them.
func (r *ResultRepository) ListByOwner(_ context.Context, owner string, limit int) ([]entities.QuizResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := lo.Map(r.results[owner], func(res entities.QuizResult, _ int) entities.QuizResult {
		return cloneResult(res)
	})

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CompletedAt.Equal(out[j].CompletedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func cloneResult(res entities.QuizResult) entities.QuizResult {
	res.Topics = append([]string(nil), res.Topics...)
	res.Answers = append([]entities.QuizAnswer(nil), res.Answers...)
	return res
}
