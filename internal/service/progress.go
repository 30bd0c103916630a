package service

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
)

const defaultRecentResults = 5

// DifficultyStats aggregates the results of one difficulty tier.
type DifficultyStats struct {
	Difficulty   entities.Difficulty
	Quizzes      int
	AverageScore float64
}

// ProgressSummary contains the data for the progress dashboard.
type ProgressSummary struct {
	QuizzesTaken      int
	QuestionsAnswered int
	CorrectAnswers    int
	AverageScore      float64 // mean of per-quiz percentages
	BestScore         float64
	LastScore         float64
	ByDifficulty      []DifficultyStats // only tiers with at least one quiz
	Recent            []entities.QuizResult
}

type ProgressService struct {
	repository ResultRepository
}

func NewProgressService(repository ResultRepository) *ProgressService {
	return &ProgressService{repository: repository}
}

// Summary aggregates every completed quiz of owner.
// recent limits how many of the latest results are included; 0 means the default.
func (s *ProgressService) Summary(ctx context.Context, owner string, recent int) (*ProgressSummary, error) {
	if recent <= 0 {
		recent = defaultRecentResults
	}

	results, err := s.repository.ListByOwner(ctx, owner, 0)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	summary := &ProgressSummary{QuizzesTaken: len(results)}
	if len(results) == 0 {
		return summary, nil
	}

	summary.QuestionsAnswered = lo.SumBy(results, func(r entities.QuizResult) int { return r.Total })
	summary.CorrectAnswers = lo.SumBy(results, func(r entities.QuizResult) int { return r.Score })
	summary.AverageScore = averagePercentage(results)
	summary.BestScore = lo.MaxBy(results, func(a, b entities.QuizResult) bool {
		return a.Percentage > b.Percentage
	}).Percentage

	// Results are ordered newest first.
	summary.LastScore = results[0].Percentage

	byDifficulty := lo.GroupBy(results, func(r entities.QuizResult) entities.Difficulty { return r.Difficulty })
	for _, d := range entities.Difficulties() {
		group, ok := byDifficulty[d]
		if !ok {
			continue
		}
		summary.ByDifficulty = append(summary.ByDifficulty, DifficultyStats{
			Difficulty:   d,
			Quizzes:      len(group),
			AverageScore: averagePercentage(group),
		})
	}

	summary.Recent = results[:min(recent, len(results))]

	return summary, nil
}

// averagePercentage is the mean of the per-quiz percentages of a non-empty slice.
func averagePercentage(results []entities.QuizResult) float64 {
	return lo.SumBy(results, func(r entities.QuizResult) float64 { return r.Percentage }) / float64(len(results))
}
