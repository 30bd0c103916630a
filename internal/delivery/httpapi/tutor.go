package httpapi

import (
	"net/http"
	"time"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
	"github.com/aliskhannn/python-tutor-bot/internal/service"
)

type chatRequest struct {
	Message    string `json:"message" validate:"required,max=4000"`
	Difficulty string `json:"difficulty"`
}

type conceptRequest struct {
	Concept    string `json:"concept" validate:"required"`
	Difficulty string `json:"difficulty"`
}

type reviewRequest struct {
	Code       string `json:"code" validate:"required"`
	Difficulty string `json:"difficulty"`
}

type messageResponse struct {
	Role      entities.ChatRole `json:"role"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"created_at"`
}

type replyResponse struct {
	Reply string `json:"reply"`
}

func toMessageResponses(msgs []entities.ChatMessage) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageResponse{Role: m.Role, Content: m.Content, CreatedAt: m.CreatedAt})
	}
	return out
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !h.decode(w, r, &req) {
		return
	}

	reply, err := h.tutor.Chat(r.Context(), ownerFrom(r.Context()), req.Difficulty, req.Message)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, replyResponse{Reply: reply})
}

func (h *Handler) chatHistory(w http.ResponseWriter, r *http.Request) {
	msgs := h.tutor.History(ownerFrom(r.Context()))
	writeJSON(w, http.StatusOK, map[string][]messageResponse{"messages": toMessageResponses(msgs)})
}

func (h *Handler) newChat(w http.ResponseWriter, r *http.Request) {
	msg := h.tutor.NewChat(ownerFrom(r.Context()))
	writeJSON(w, http.StatusOK, map[string][]messageResponse{
		"messages": toMessageResponses([]entities.ChatMessage{msg}),
	})
}

func (h *Handler) clearChat(w http.ResponseWriter, r *http.Request) {
	h.tutor.ClearChat(ownerFrom(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listConcepts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"concepts": service.Concepts()})
}

func (h *Handler) explainConcept(w http.ResponseWriter, r *http.Request) {
	var req conceptRequest
	if !h.decode(w, r, &req) {
		return
	}

	reply, err := h.tutor.ExplainConcept(r.Context(), req.Difficulty, req.Concept)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, replyResponse{Reply: reply})
}

func (h *Handler) reviewCode(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !h.decode(w, r, &req) {
		return
	}

	reply, err := h.tutor.ReviewCode(r.Context(), req.Difficulty, req.Code)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, replyResponse{Reply: reply})
}
