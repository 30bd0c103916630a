package repository

import (
	"errors"
	"fmt"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
)

var (
	ErrEmptyTopic     = errors.New("topic has no questions")
	ErrDuplicateTopic = errors.New("duplicate topic")
)

// BankTopic is one topic of seed data for the quiz bank.
type BankTopic struct {
	Difficulty entities.Difficulty
	Name       string
	Questions  []entities.Question
}

// QuizBank provides read-only access to the multiple choice questions,
// grouped by difficulty and topic. It is built once and never mutated.
type QuizBank struct {
	topics    map[entities.Difficulty][]string
	questions map[entities.Difficulty]map[string][]entities.Question
}

// NewQuizBank validates the seed data and builds a bank from it.
// Topic order inside a difficulty follows the order of the seed data.
func NewQuizBank(seed []BankTopic) (*QuizBank, error) {
	b := &QuizBank{
		topics:    make(map[entities.Difficulty][]string),
		questions: make(map[entities.Difficulty]map[string][]entities.Question),
	}

	for _, t := range seed {
		if len(t.Questions) == 0 {
			return nil, fmt.Errorf("%w: %s/%s", ErrEmptyTopic, t.Difficulty, t.Name)
		}

		byTopic, ok := b.questions[t.Difficulty]
		if !ok {
			byTopic = make(map[string][]entities.Question)
			b.questions[t.Difficulty] = byTopic
		}
		if _, exists := byTopic[t.Name]; exists {
			return nil, fmt.Errorf("%w: %s/%s", ErrDuplicateTopic, t.Difficulty, t.Name)
		}

		qs := make([]entities.Question, 0, len(t.Questions))
		for i, q := range t.Questions {
			q = q.Clone()
			q.ID = fmt.Sprintf("%s/%s/%d", t.Difficulty, t.Name, i+1)
			q.Topic = t.Name
			if err := q.Validate(); err != nil {
				return nil, err
			}
			qs = append(qs, q)
		}

		byTopic[t.Name] = qs
		b.topics[t.Difficulty] = append(b.topics[t.Difficulty], t.Name)
	}

	return b, nil
}

// MustNewQuizBank is like NewQuizBank but panics on invalid seed data.
func MustNewQuizBank(seed []BankTopic) *QuizBank {
	b, err := NewQuizBank(seed)
	if err != nil {
		panic(fmt.Sprintf("quiz bank: %v", err))
	}
	return b
}

// NewDefaultQuizBank builds the bank from the embedded Python question set.
func NewDefaultQuizBank() *QuizBank {
	return MustNewQuizBank(defaultQuestions())
}

// Difficulties returns the difficulty tiers that have at least one topic.
func (b *QuizBank) Difficulties() []entities.Difficulty {
	out := make([]entities.Difficulty, 0, len(b.topics))
	for _, d := range entities.Difficulties() {
		if _, ok := b.topics[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// TopicsFor returns the topic names under difficulty.
// An unknown difficulty yields an empty slice.
func (b *QuizBank) TopicsFor(difficulty entities.Difficulty) []string {
	return append([]string{}, b.topics[difficulty]...)
}

// Questions returns a copy of the questions of a topic.
// Unknown keys yield an empty slice.
func (b *QuizBank) Questions(difficulty entities.Difficulty, topic string) []entities.Question {
	src := b.questions[difficulty][topic]
	out := make([]entities.Question, 0, len(src))
	for _, q := range src {
		out = append(out, q.Clone())
	}
	return out
}
