package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionHeader = "X-Session-ID"

type ctxKey int

const ownerKey ctxKey = iota

// requireSession rejects requests without a valid session id and stores the
// owner key derived from it in the request context.
func requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(sessionHeader)
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing or invalid " + sessionHeader + " header"})
			return
		}

		ctx := context.WithValue(r.Context(), ownerKey, ownerFromSession(id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ownerFromSession(id uuid.UUID) string {
	return "web:" + id.String()
}

func ownerFrom(ctx context.Context) string {
	owner, _ := ctx.Value(ownerKey).(string)
	return owner
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()

		next.ServeHTTP(ww, r)

		h.logger.Debug("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(started)),
		)
	})
}
