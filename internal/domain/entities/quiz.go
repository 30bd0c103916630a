package entities

import (
	"errors"
	"fmt"
	"time"
)

// QuizState is the lifecycle state of a quiz session.
type QuizState string

const (
	QuizStateNotStarted QuizState = "not_started"
	QuizStateInProgress QuizState = "in_progress"
	QuizStateCompleted  QuizState = "completed"
)

var (
	ErrInvalidTransition = errors.New("invalid quiz transition")
	ErrAlreadyAnswered   = fmt.Errorf("%w: current question is already answered", ErrInvalidTransition)
	ErrNotAnswered       = fmt.Errorf("%w: current question is not answered yet", ErrInvalidTransition)
	ErrEmptyQuiz         = errors.New("quiz has no questions")
)

// QuizSession represents a single quiz attempt of one owner.
// The selected questions and their order are fixed when the session is created.
type QuizSession struct {
	ID             string     // unique session ID
	Owner          string     // key of the caller owning the session
	Difficulty     Difficulty // difficulty the quiz was started with
	Topics         []string   // topics the questions were pooled from
	Active         bool       // false once the session was restarted
	CurrentIndex   int        // 0-based index of the current question
	Questions      []Question // sampled questions
	Score          int        // number of correct answers so far
	TotalQuestions int        // len(Questions)
	Answered       bool       // whether the current question has been graded
	Answers        []QuizAnswer
	StartedAt      time.Time
	CompletedAt    *time.Time // set when the last question is advanced past
	LastActivityAt time.Time
}

// NewQuizSession creates an in-progress session over the given questions.
func NewQuizSession(
	id, owner string,
	difficulty Difficulty,
	topics []string,
	questions []Question,
	now time.Time,
) (*QuizSession, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuiz
	}

	return &QuizSession{
		ID:             id,
		Owner:          owner,
		Difficulty:     difficulty,
		Topics:         append([]string(nil), topics...),
		Active:         true,
		Questions:      questions,
		TotalQuestions: len(questions),
		Answers:        make([]QuizAnswer, 0, len(questions)),
		StartedAt:      now,
		LastActivityAt: now,
	}, nil
}

// State derives the lifecycle state from the session counters.
func (qs *QuizSession) State() QuizState {
	switch {
	case qs == nil || !qs.Active || qs.TotalQuestions == 0:
		return QuizStateNotStarted
	case qs.CurrentIndex >= qs.TotalQuestions:
		return QuizStateCompleted
	default:
		return QuizStateInProgress
	}
}

// CurrentQuestion returns the question at the current index.
func (qs *QuizSession) CurrentQuestion() (Question, error) {
	if qs.State() != QuizStateInProgress {
		return Question{}, fmt.Errorf("%w: no current question in state %s", ErrInvalidTransition, qs.State())
	}
	return qs.Questions[qs.CurrentIndex], nil
}

// Submit grades selectedOption against the current question by exact option text.
// A second submission before Advance is rejected and leaves the score untouched.
func (qs *QuizSession) Submit(selectedOption string, now time.Time) (AnswerResult, error) {
	q, err := qs.CurrentQuestion()
	if err != nil {
		return AnswerResult{}, err
	}
	if qs.Answered {
		return AnswerResult{}, ErrAlreadyAnswered
	}
	if err := q.Validate(); err != nil {
		return AnswerResult{}, err
	}

	qa := NewQuizAnswer(q.ID, now)
	qa.CheckAnswer(selectedOption, q.CorrectAnswer())

	if qa.IsCorrect {
		qs.Score++
	}
	qs.Answered = true
	qs.Answers = append(qs.Answers, *qa)
	qs.LastActivityAt = now

	return AnswerResult{
		IsCorrect:      qa.IsCorrect,
		SelectedOption: selectedOption,
		CorrectAnswer:  qa.CorrectAnswer,
		Explanation:    q.Explanation,
	}, nil
}

// Advance moves past the graded current question.
// It returns QuizStateCompleted after the last question.
func (qs *QuizSession) Advance(now time.Time) (QuizState, error) {
	if qs.State() != QuizStateInProgress {
		return qs.State(), fmt.Errorf("%w: cannot advance in state %s", ErrInvalidTransition, qs.State())
	}
	if !qs.Answered {
		return qs.State(), ErrNotAnswered
	}

	qs.CurrentIndex++
	qs.Answered = false
	qs.LastActivityAt = now

	if qs.CurrentIndex == qs.TotalQuestions {
		qs.CompletedAt = &now
	}

	return qs.State(), nil
}

// FinalScore returns the percentage of correct answers in [0, 100].
func (qs *QuizSession) FinalScore() float64 {
	return CalculateScore(qs.Score, qs.TotalQuestions)
}

// Restart discards the attempt and returns the session to the not-started state.
func (qs *QuizSession) Restart() {
	qs.Active = false
	qs.CurrentIndex = 0
	qs.Questions = nil
	qs.Score = 0
	qs.TotalQuestions = 0
	qs.Answered = false
	qs.Answers = nil
	qs.CompletedAt = nil
}

// Result builds the record of a completed session.
func (qs *QuizSession) Result() (*QuizResult, error) {
	if qs.State() != QuizStateCompleted {
		return nil, fmt.Errorf("%w: session is %s", ErrInvalidTransition, qs.State())
	}

	return &QuizResult{
		Owner:       qs.Owner,
		SessionID:   qs.ID,
		Difficulty:  qs.Difficulty,
		Topics:      append([]string(nil), qs.Topics...),
		Score:       qs.Score,
		Total:       qs.TotalQuestions,
		Percentage:  qs.FinalScore(),
		StartedAt:   qs.StartedAt,
		CompletedAt: *qs.CompletedAt,
		Answers:     append([]QuizAnswer(nil), qs.Answers...),
	}, nil
}

// CalculateScore returns correct/total as a percentage, or 0 when total is 0.
func CalculateScore(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// AnswerResult is the feedback returned to the caller after grading.
type AnswerResult struct {
	IsCorrect      bool
	SelectedOption string
	CorrectAnswer  string
	Explanation    string
}

// QuizAnswer represents a graded answer to a quiz question.
type QuizAnswer struct {
	QuestionID     string    // ID of the answered question
	SelectedOption string    // option text chosen by the user
	CorrectAnswer  string    // correct option text
	IsCorrect      bool      // whether the answer was correct
	AnsweredAt     time.Time // timestamp when the answer was submitted
}

// NewQuizAnswer creates an ungraded answer for a question.
func NewQuizAnswer(questionID string, answeredAt time.Time) *QuizAnswer {
	return &QuizAnswer{
		QuestionID: questionID,
		AnsweredAt: answeredAt,
	}
}

// CheckAnswer stores both answers and compares them by exact text.
func (qa *QuizAnswer) CheckAnswer(selectedOption, correctAnswer string) {
	qa.SelectedOption = selectedOption
	qa.CorrectAnswer = correctAnswer
	qa.IsCorrect = selectedOption == correctAnswer
}
