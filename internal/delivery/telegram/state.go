package telegram

import (
	"strconv"
	"sync"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
)

// quizDraft holds the choices made while configuring a quiz.
type quizDraft struct {
	difficulty entities.Difficulty
	topics     []string // bank order, referenced by index in callbacks
	selected   map[int]bool
}

func newQuizDraft(d entities.Difficulty, topics []string) *quizDraft {
	return &quizDraft{
		difficulty: d,
		topics:     topics,
		selected:   make(map[int]bool),
	}
}

// toggle flips the topic at index. It reports false for an unknown index.
func (d *quizDraft) toggle(index int) bool {
	if index < 0 || index >= len(d.topics) {
		return false
	}
	if d.selected[index] {
		delete(d.selected, index)
	} else {
		d.selected[index] = true
	}
	return true
}

// selectedTopics returns the chosen topic names in bank order.
func (d *quizDraft) selectedTopics() []string {
	out := make([]string, 0, len(d.selected))
	for i, t := range d.topics {
		if d.selected[i] {
			out = append(out, t)
		}
	}
	return out
}

// userState is the per-user UI state of the bot.
type userState struct {
	difficulty entities.Difficulty
	chatMode   bool
	draft      *quizDraft
}

type stateStore struct {
	mu    sync.Mutex
	users map[int64]*userState
}

func newStateStore() *stateStore {
	return &stateStore{users: make(map[int64]*userState)}
}

// update runs fn on the user's state, creating it on first use.
func (s *stateStore) update(userID int64, fn func(st *userState)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.users[userID]
	if !ok {
		st = &userState{difficulty: entities.DifficultyBeginner}
		s.users[userID] = st
	}
	fn(st)
}

func (s *stateStore) difficulty(userID int64) entities.Difficulty {
	d := entities.DifficultyBeginner
	s.update(userID, func(st *userState) { d = st.difficulty })
	return d
}

func (s *stateStore) chatMode(userID int64) bool {
	var on bool
	s.update(userID, func(st *userState) { on = st.chatMode })
	return on
}

func ownerKey(userID int64) string {
	return "tg:" + strconv.FormatInt(userID, 10)
}
