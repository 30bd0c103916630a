package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
)

type difficultyStatsResponse struct {
	Difficulty   entities.Difficulty `json:"difficulty"`
	Quizzes      int                 `json:"quizzes"`
	AverageScore float64             `json:"average_score"`
}

type resultResponse struct {
	Difficulty  entities.Difficulty `json:"difficulty"`
	Topics      []string            `json:"topics"`
	Score       int                 `json:"score"`
	Total       int                 `json:"total"`
	Percentage  float64             `json:"percentage"`
	CompletedAt time.Time           `json:"completed_at"`
}

type progressResponse struct {
	QuizzesTaken      int                       `json:"quizzes_taken"`
	QuestionsAnswered int                       `json:"questions_answered"`
	CorrectAnswers    int                       `json:"correct_answers"`
	AverageScore      float64                   `json:"average_score"`
	BestScore         float64                   `json:"best_score"`
	LastScore         float64                   `json:"last_score"`
	ByDifficulty      []difficultyStatsResponse `json:"by_difficulty"`
	Recent            []resultResponse          `json:"recent"`
}

func (h *Handler) progressSummary(w http.ResponseWriter, r *http.Request) {
	recent, _ := strconv.Atoi(r.URL.Query().Get("recent"))

	summary, err := h.progress.Summary(r.Context(), ownerFrom(r.Context()), recent)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := progressResponse{
		QuizzesTaken:      summary.QuizzesTaken,
		QuestionsAnswered: summary.QuestionsAnswered,
		CorrectAnswers:    summary.CorrectAnswers,
		AverageScore:      summary.AverageScore,
		BestScore:         summary.BestScore,
		LastScore:         summary.LastScore,
		ByDifficulty:      make([]difficultyStatsResponse, 0, len(summary.ByDifficulty)),
		Recent:            make([]resultResponse, 0, len(summary.Recent)),
	}
	for _, d := range summary.ByDifficulty {
		resp.ByDifficulty = append(resp.ByDifficulty, difficultyStatsResponse{
			Difficulty:   d.Difficulty,
			Quizzes:      d.Quizzes,
			AverageScore: d.AverageScore,
		})
	}
	for _, res := range summary.Recent {
		resp.Recent = append(resp.Recent, resultResponse{
			Difficulty:  res.Difficulty,
			Topics:      res.Topics,
			Score:       res.Score,
			Total:       res.Total,
			Percentage:  res.Percentage,
			CompletedAt: res.CompletedAt,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
