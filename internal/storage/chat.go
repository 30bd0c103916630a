package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
)

// ChatStorage keeps tutoring conversations in memory by owner key.
type ChatStorage struct {
	mu        sync.RWMutex
	limit     int
	histories map[string]*entities.ChatHistory
}

// NewChatStorage creates a ChatStorage that keeps at most limit messages per owner.
func NewChatStorage(limit int) *ChatStorage {
	return &ChatStorage{
		limit:     limit,
		histories: make(map[string]*entities.ChatHistory),
	}
}

// Append adds messages to the owner's history in order.
func (s *ChatStorage) Append(owner string, msgs ...entities.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.histories[owner]
	if !ok {
		h = &entities.ChatHistory{Owner: owner}
		s.histories[owner] = h
	}
	for _, m := range msgs {
		h.Append(m, s.limit)
	}
}

// Get returns a copy of the owner's messages, oldest first.
func (s *ChatStorage) Get(owner string) []entities.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.histories[owner]
	if !ok {
		return nil
	}
	return h.Last(0)
}

// Recent returns up to n most recent messages of the owner.
func (s *ChatStorage) Recent(owner string, n int) []entities.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.histories[owner]
	if !ok {
		return nil
	}
	return h.Last(n)
}

// Reset replaces the owner's history with msgs.
func (s *ChatStorage) Reset(owner string, msgs ...entities.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := &entities.ChatHistory{Owner: owner}
	for _, m := range msgs {
		h.Append(m, s.limit)
	}
	s.histories[owner] = h
}

// Delete removes the owner's history.
func (s *ChatStorage) Delete(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.histories, owner)
}

// EvictIdle removes histories with no activity since before and returns how many were removed.
func (s *ChatStorage) EvictIdle(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for owner, h := range s.histories {
		if h.LastActivityAt.Before(before) {
			delete(s.histories, owner)
			evicted++
		}
	}
	return evicted
}
