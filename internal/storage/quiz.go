package storage

import (
	"errors"
	"sync"
	"time"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
)

var ErrSessionNotFound = errors.New("quiz session not found")

// QuizStorage provides in-memory storage for quiz sessions by owner key.
// Each owner has at most one session.
type QuizStorage struct {
	mu       sync.RWMutex
	sessions map[string]*entities.QuizSession
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		sessions: make(map[string]*entities.QuizSession),
	}
}

// Store saves the session under its owner, replacing any previous one.
func (s *QuizStorage) Store(session *entities.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Owner] = cloneSession(session)
}

// Get returns a copy of the owner's session.
func (s *QuizStorage) Get(owner string) (*entities.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[owner]
	if !ok {
		return nil, false
	}
	return cloneSession(session), true
}

// Update runs fn on the owner's session under the write lock.
// Changes made by fn are kept even when it returns an error, so fn must leave
// the session consistent on failure. It returns a copy of the resulting session.
func (s *QuizStorage) Update(owner string, fn func(*entities.QuizSession) error) (*entities.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[owner]
	if !ok {
		return nil, ErrSessionNotFound
	}

	err := fn(session)
	return cloneSession(session), err
}

// Delete removes the owner's session.
func (s *QuizStorage) Delete(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, owner)
}

// EvictIdle removes sessions with no activity since before and returns how many were removed.
func (s *QuizStorage) EvictIdle(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for owner, session := range s.sessions {
		if session.LastActivityAt.Before(before) {
			delete(s.sessions, owner)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of stored sessions.
func (s *QuizStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func cloneSession(in *entities.QuizSession) *entities.QuizSession {
	out := *in
	out.Topics = append([]string(nil), in.Topics...)
	out.Answers = append([]entities.QuizAnswer(nil), in.Answers...)
	if in.Questions != nil {
		out.Questions = make([]entities.Question, len(in.Questions))
		for i, q := range in.Questions {
			out.Questions[i] = q.Clone()
		}
	}
	if in.CompletedAt != nil {
		t := *in.CompletedAt
		out.CompletedAt = &t
	}
	return &out
}
