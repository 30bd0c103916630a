package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig configures the middleware stack.
type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter mounts every API route on a chi router.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 90 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, h.requestLogger, middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", sessionHeader},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api", func(ar chi.Router) {
		ar.Post("/sessions", h.createSession)
		ar.Get("/difficulties", h.listDifficulties)
		ar.Get("/topics", h.listTopics)
		ar.Get("/concepts", h.listConcepts)

		ar.Group(func(pr chi.Router) {
			pr.Use(requireSession)

			pr.Route("/quiz", func(qr chi.Router) {
				qr.Post("/", h.startQuiz)
				qr.Delete("/", h.restartQuiz)
				qr.Get("/question", h.currentQuestion)
				qr.Post("/answer", h.submitAnswer)
				qr.Post("/next", h.advance)
				qr.Get("/score", h.finalScore)
			})

			pr.Route("/chat", func(cr chi.Router) {
				cr.Get("/", h.chatHistory)
				cr.Post("/", h.chat)
				cr.Post("/reset", h.newChat)
				cr.Delete("/", h.clearChat)
			})

			pr.Post("/concepts/explain", h.explainConcept)
			pr.Post("/review", h.reviewCode)
			pr.Get("/progress", h.progressSummary)
		})
	})

	return r
}
