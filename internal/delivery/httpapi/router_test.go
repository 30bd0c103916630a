package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/python-tutor-bot/internal/ai"
	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
	"github.com/aliskhannn/python-tutor-bot/internal/repository"
	"github.com/aliskhannn/python-tutor-bot/internal/service"
	"github.com/aliskhannn/python-tutor-bot/internal/storage"
)

type stubGenerator struct {
	reply string
	err   error
}

func (g *stubGenerator) Generate(context.Context, ai.Request) (string, error) {
	return g.reply, g.err
}

type testAPI struct {
	handler http.Handler
	gen     *stubGenerator
	answers map[string]entities.Question // by prompt
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	bank := repository.NewDefaultQuizBank()
	results := repository.NewResultRepository()
	gen := &stubGenerator{reply: "Here is how it works."}

	quiz := service.NewQuizService(bank, service.NewQuestionSampler(bank, rand.NewSource(1)),
		storage.NewQuizStorage(), results, zap.NewNop())
	tutor := service.NewTutorService(gen, storage.NewChatStorage(20),
		service.TutorConfig{MaxCodeBytes: 100}, zap.NewNop())
	progress := service.NewProgressService(results)

	answers := make(map[string]entities.Question)
	for _, d := range bank.Difficulties() {
		for _, topic := range bank.TopicsFor(d) {
			for _, q := range bank.Questions(d, topic) {
				answers[q.Prompt] = q
			}
		}
	}

	return &testAPI{
		handler: NewRouter(NewHandler(quiz, tutor, progress, zap.NewNop()), RouterConfig{}),
		gen:     gen,
		answers: answers,
	}
}

func (a *testAPI) do(t *testing.T, method, path, session string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(sessionHeader, session)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, want, rec.Body.String())
	}
}

func newSession(t *testing.T, api *testAPI) string {
	t.Helper()
	rec := api.do(t, http.MethodPost, "/api/sessions", "", nil)
	expectStatus(t, rec, http.StatusCreated)
	return decodeBody[map[string]string](t, rec)["session_id"]
}

func TestQuizFlow(t *testing.T) {
	api := newTestAPI(t)
	session := newSession(t, api)

	rec := api.do(t, http.MethodPost, "/api/quiz", session, map[string]any{
		"difficulty": "Beginner",
		"topics":     []string{"Variables & Data Types"},
		"count":      5,
	})
	expectStatus(t, rec, http.StatusCreated)

	started := decodeBody[startQuizResponse](t, rec)
	if started.Total != 2 || !started.Clamped || started.Requested != 5 {
		t.Fatalf("start = %+v", started)
	}

	// First question: answer correctly, then try again.
	q := api.answers[started.Question.Prompt]
	rec = api.do(t, http.MethodPost, "/api/quiz/answer", session, map[string]string{"option": q.CorrectAnswer()})
	expectStatus(t, rec, http.StatusOK)
	if res := decodeBody[answerResponse](t, rec); !res.IsCorrect || res.CorrectAnswer != q.CorrectAnswer() {
		t.Fatalf("answer = %+v", res)
	}

	rec = api.do(t, http.MethodPost, "/api/quiz/answer", session, map[string]string{"option": q.CorrectAnswer()})
	expectStatus(t, rec, http.StatusConflict)

	rec = api.do(t, http.MethodPost, "/api/quiz/next", session, nil)
	expectStatus(t, rec, http.StatusOK)
	if st := decodeBody[stateResponse](t, rec); st.State != entities.QuizStateInProgress {
		t.Fatalf("state = %s", st.State)
	}

	// Second question: answer incorrectly.
	rec = api.do(t, http.MethodGet, "/api/quiz/question", session, nil)
	expectStatus(t, rec, http.StatusOK)
	view := decodeBody[questionResponse](t, rec)
	if view.Number != 2 {
		t.Fatalf("question number = %d", view.Number)
	}
	q = api.answers[view.Prompt]
	wrong := q.Options[(q.CorrectIndex+1)%len(q.Options)]

	rec = api.do(t, http.MethodPost, "/api/quiz/answer", session, map[string]string{"option": wrong})
	expectStatus(t, rec, http.StatusOK)
	if res := decodeBody[answerResponse](t, rec); res.IsCorrect {
		t.Fatalf("wrong answer graded correct")
	}

	rec = api.do(t, http.MethodPost, "/api/quiz/next", session, nil)
	expectStatus(t, rec, http.StatusOK)
	if st := decodeBody[stateResponse](t, rec); st.State != entities.QuizStateCompleted {
		t.Fatalf("state = %s", st.State)
	}

	rec = api.do(t, http.MethodGet, "/api/quiz/score", session, nil)
	expectStatus(t, rec, http.StatusOK)
	if score := decodeBody[scoreResponse](t, rec); score.Score != 1 || score.Total != 2 || score.Percentage != 50 {
		t.Fatalf("score = %+v", score)
	}

	rec = api.do(t, http.MethodGet, "/api/progress", session, nil)
	expectStatus(t, rec, http.StatusOK)
	if p := decodeBody[progressResponse](t, rec); p.QuizzesTaken != 1 || p.AverageScore != 50 || len(p.Recent) != 1 {
		t.Fatalf("progress = %+v", p)
	}

	rec = api.do(t, http.MethodDelete, "/api/quiz", session, nil)
	expectStatus(t, rec, http.StatusNoContent)

	rec = api.do(t, http.MethodGet, "/api/quiz/question", session, nil)
	expectStatus(t, rec, http.StatusNotFound)
}

func TestStartQuizErrors(t *testing.T) {
	api := newTestAPI(t)
	session := newSession(t, api)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"unknown topic", map[string]any{"difficulty": "Advanced", "topics": []string{"Nonexistent Topic"}, "count": 3}, http.StatusUnprocessableEntity},
		{"zero count", map[string]any{"difficulty": "Beginner", "topics": []string{"Control Flow"}, "count": 0}, http.StatusBadRequest},
		{"no topics", map[string]any{"difficulty": "Beginner", "topics": []string{}, "count": 3}, http.StatusBadRequest},
		{"missing difficulty", map[string]any{"topics": []string{"Control Flow"}, "count": 3}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, http.MethodPost, "/api/quiz", session, tt.body)
			expectStatus(t, rec, tt.want)
		})
	}
}

func TestSessionHeaderRequired(t *testing.T) {
	api := newTestAPI(t)

	for _, session := range []string{"", "not-a-uuid"} {
		rec := api.do(t, http.MethodGet, "/api/quiz/question", session, nil)
		expectStatus(t, rec, http.StatusUnauthorized)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	api := newTestAPI(t)
	first := newSession(t, api)
	second := uuid.NewString()

	rec := api.do(t, http.MethodPost, "/api/quiz", first, map[string]any{
		"difficulty": "Intermediate", "topics": []string{"Functions"}, "count": 1,
	})
	expectStatus(t, rec, http.StatusCreated)

	rec = api.do(t, http.MethodGet, "/api/quiz/question", second, nil)
	expectStatus(t, rec, http.StatusNotFound)
}

func TestPublicEndpoints(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/difficulties", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeBody[map[string][]string](t, rec)["difficulties"]; len(got) != 3 {
		t.Fatalf("difficulties = %v", got)
	}

	rec = api.do(t, http.MethodGet, "/api/topics?difficulty=Advanced", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeBody[map[string][]string](t, rec)["topics"]; len(got) != 2 {
		t.Fatalf("topics = %v", got)
	}

	rec = api.do(t, http.MethodGet, "/api/topics?difficulty=Expert", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeBody[map[string][]string](t, rec)["topics"]; got == nil || len(got) != 0 {
		t.Fatalf("topics for unknown difficulty = %#v", got)
	}

	rec = api.do(t, http.MethodGet, "/healthz", "", nil)
	expectStatus(t, rec, http.StatusOK)
}

func TestChatEndpoints(t *testing.T) {
	api := newTestAPI(t)
	session := newSession(t, api)

	rec := api.do(t, http.MethodPost, "/api/chat/reset", session, nil)
	expectStatus(t, rec, http.StatusOK)

	rec = api.do(t, http.MethodPost, "/api/chat", session, map[string]string{"message": "What is a dict?"})
	expectStatus(t, rec, http.StatusOK)
	if got := decodeBody[replyResponse](t, rec); got.Reply != api.gen.reply {
		t.Fatalf("reply = %q", got.Reply)
	}

	api.gen.err = errors.New("upstream down")
	rec = api.do(t, http.MethodPost, "/api/chat", session, map[string]string{"message": "And a set?"})
	expectStatus(t, rec, http.StatusBadGateway)
	if got := decodeBody[errorResponse](t, rec); got.Error != msgTutorUnavailable {
		t.Fatalf("error = %q", got.Error)
	}

	rec = api.do(t, http.MethodGet, "/api/chat", session, nil)
	expectStatus(t, rec, http.StatusOK)
	if msgs := decodeBody[map[string][]messageResponse](t, rec)["messages"]; len(msgs) != 3 {
		t.Fatalf("history has %d messages, want 3", len(msgs))
	}

	rec = api.do(t, http.MethodDelete, "/api/chat", session, nil)
	expectStatus(t, rec, http.StatusNoContent)
}

func TestTutorEndpointErrors(t *testing.T) {
	api := newTestAPI(t)
	session := newSession(t, api)

	rec := api.do(t, http.MethodPost, "/api/concepts/explain", session, map[string]string{"concept": "Monads"})
	expectStatus(t, rec, http.StatusBadRequest)

	rec = api.do(t, http.MethodPost, "/api/concepts/explain", session, map[string]string{"concept": "Control Flow"})
	expectStatus(t, rec, http.StatusOK)

	rec = api.do(t, http.MethodPost, "/api/review", session, map[string]string{"code": strings.Repeat("x", 101)})
	expectStatus(t, rec, http.StatusRequestEntityTooLarge)

	rec = api.do(t, http.MethodPost, "/api/review", session, map[string]string{"code": "print('hi')"})
	expectStatus(t, rec, http.StatusOK)
}
