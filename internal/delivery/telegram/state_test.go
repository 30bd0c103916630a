package telegram

import (
	"reflect"
	"testing"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
)

func TestQuizDraftToggle(t *testing.T) {
	d := newQuizDraft(entities.DifficultyBeginner, []string{"A", "B", "C"})

	for _, i := range []int{2, 0, 1, 1} {
		if !d.toggle(i) {
			t.Fatalf("toggle(%d) failed", i)
		}
	}
	if d.toggle(3) || d.toggle(-1) {
		t.Fatalf("toggle accepted an unknown index")
	}

	if got := d.selectedTopics(); !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Fatalf("selectedTopics = %v, want bank order [A C]", got)
	}
}

func TestStateStoreDefaults(t *testing.T) {
	s := newStateStore()

	if d := s.difficulty(1); d != entities.DifficultyBeginner {
		t.Fatalf("default difficulty = %s", d)
	}
	if s.chatMode(1) {
		t.Fatalf("chat mode must be off by default")
	}

	s.update(1, func(st *userState) {
		st.chatMode = true
		st.difficulty = entities.DifficultyAdvanced
	})
	if !s.chatMode(1) || s.difficulty(1) != entities.DifficultyAdvanced {
		t.Fatalf("state was not updated")
	}
	if s.chatMode(2) {
		t.Fatalf("state leaked between users")
	}
}

func TestOwnerKey(t *testing.T) {
	if got := ownerKey(42); got != "tg:42" {
		t.Fatalf("ownerKey = %q", got)
	}
}
