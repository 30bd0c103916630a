package entities

import (
	"errors"
	"fmt"
)

const (
	MinOptions = 2
	MaxOptions = 6
)

var ErrInvalidQuestion = errors.New("invalid question")

// Question is an immutable multiple choice question from the quiz bank.
type Question struct {
	ID           string   // stable identity: "<difficulty>/<topic>/<position>"
	Topic        string   // topic the question belongs to
	Prompt       string   // question text
	Options      []string // answer options in display order
	CorrectIndex int      // index of the correct option
	Explanation  string   // shown after the question is graded
}

// CorrectAnswer returns the literal text of the correct option.
func (q Question) CorrectAnswer() string {
	return q.Options[q.CorrectIndex]
}

// Validate checks the option count and that CorrectIndex points into Options.
func (q Question) Validate() error {
	if q.Prompt == "" {
		return fmt.Errorf("%w: %s: empty prompt", ErrInvalidQuestion, q.ID)
	}
	if len(q.Options) < MinOptions || len(q.Options) > MaxOptions {
		return fmt.Errorf("%w: %s: %d options, want %d..%d",
			ErrInvalidQuestion, q.ID, len(q.Options), MinOptions, MaxOptions)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: %s: correct index %d out of range",
			ErrInvalidQuestion, q.ID, q.CorrectIndex)
	}
	return nil
}

// HasOption reports whether option is one of the question's options.
func (q Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Clone returns a copy that does not share the options slice.
func (q Question) Clone() Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}
