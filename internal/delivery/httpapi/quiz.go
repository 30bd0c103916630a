package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
	"github.com/aliskhannn/python-tutor-bot/internal/service"
)

type startQuizRequest struct {
	Difficulty string   `json:"difficulty" validate:"required"`
	Topics     []string `json:"topics" validate:"required,min=1,dive,required"`
	Count      int      `json:"count" validate:"required,min=1,max=10"`
}

type answerRequest struct {
	Option string `json:"option" validate:"required"`
}

type questionResponse struct {
	Number   int      `json:"number"`
	Total    int      `json:"total"`
	Topic    string   `json:"topic"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
	Answered bool     `json:"answered"`
}

type startQuizResponse struct {
	QuizID    string           `json:"quiz_id"`
	Requested int              `json:"requested"`
	Total     int              `json:"total"`
	Clamped   bool             `json:"clamped"`
	Question  questionResponse `json:"question"`
}

type answerResponse struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

type stateResponse struct {
	State entities.QuizState `json:"state"`
}

type scoreResponse struct {
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

func toQuestionResponse(q *service.QuestionView) questionResponse {
	return questionResponse{
		Number:   q.Number,
		Total:    q.Total,
		Topic:    q.Topic,
		Prompt:   q.Prompt,
		Options:  q.Options,
		Answered: q.Answered,
	}
}

func (h *Handler) createSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": uuid.NewString()})
}

func (h *Handler) listDifficulties(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]entities.Difficulty{"difficulties": h.quiz.Difficulties()})
}

func (h *Handler) listTopics(w http.ResponseWriter, r *http.Request) {
	topics := h.quiz.ListTopics(r.URL.Query().Get("difficulty"))
	writeJSON(w, http.StatusOK, map[string][]string{"topics": topics})
}

func (h *Handler) startQuiz(w http.ResponseWriter, r *http.Request) {
	var req startQuizRequest
	if !h.decode(w, r, &req) {
		return
	}

	owner := ownerFrom(r.Context())

	session, err := h.quiz.StartQuiz(r.Context(), owner, req.Difficulty, req.Topics, req.Count)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	q, err := h.quiz.CurrentQuestion(r.Context(), owner)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, startQuizResponse{
		QuizID:    session.ID,
		Requested: req.Count,
		Total:     session.TotalQuestions,
		Clamped:   session.TotalQuestions < req.Count,
		Question:  toQuestionResponse(q),
	})
}

func (h *Handler) currentQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.quiz.CurrentQuestion(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuestionResponse(q))
}

func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.quiz.SubmitAnswer(r.Context(), ownerFrom(r.Context()), req.Option)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, answerResponse{
		IsCorrect:     res.IsCorrect,
		CorrectAnswer: res.CorrectAnswer,
		Explanation:   res.Explanation,
	})
}

func (h *Handler) advance(w http.ResponseWriter, r *http.Request) {
	state, err := h.quiz.Advance(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{State: state})
}

func (h *Handler) finalScore(w http.ResponseWriter, r *http.Request) {
	score, err := h.quiz.FinalScore(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{
		Score:      score.Correct,
		Total:      score.Total,
		Percentage: score.Percentage,
	})
}

func (h *Handler) restartQuiz(w http.ResponseWriter, r *http.Request) {
	if err := h.quiz.Restart(r.Context(), ownerFrom(r.Context())); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
