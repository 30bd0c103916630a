package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
	"github.com/aliskhannn/python-tutor-bot/internal/storage"
)

var (
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrSessionNotFound      = errors.New("quiz session not found")
)

// QuestionView is what the caller needs to render the current question.
type QuestionView struct {
	Number   int // 1-based position in the quiz
	Total    int
	Topic    string
	Prompt   string
	Options  []string
	Answered bool // the question was answered and the quiz waits for Advance
}

// Score is the outcome of a quiz session.
type Score struct {
	Correct    int
	Total      int
	Percentage float64
}

type QuizService struct {
	bank     QuestionBank
	sampler  *QuestionSampler
	sessions QuizSessionStorage
	results  ResultRepository
	logger   *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewQuizService(
	bank QuestionBank,
	sampler *QuestionSampler,
	sessions QuizSessionStorage,
	results ResultRepository,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		bank:     bank,
		sampler:  sampler,
		sessions: sessions,
		results:  results,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Difficulties lists the difficulty tiers present in the bank.
func (s *QuizService) Difficulties() []entities.Difficulty {
	return s.bank.Difficulties()
}

// ListTopics returns the topics available under difficulty.
// Unknown difficulties yield an empty slice.
func (s *QuizService) ListTopics(difficulty string) []string {
	d, ok := entities.ParseDifficulty(difficulty)
	if !ok {
		return []string{}
	}
	return s.bank.TopicsFor(d)
}

// StartQuiz samples questions and starts a new session for owner,
// replacing any session the owner already has.
// The session may hold fewer than count questions when the pool is smaller.
func (s *QuizService) StartQuiz(
	_ context.Context, owner, difficulty string, topics []string, count int,
) (*entities.QuizSession, error) {
	d, ok := entities.ParseDifficulty(difficulty)
	if !ok {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrNoQuestionsAvailable, difficulty)
	}

	questions := s.sampler.Sample(d, topics, count)
	if len(questions) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	session, err := entities.NewQuizSession(s.newID(), owner, d, topics, questions, s.now())
	if err != nil {
		return nil, err
	}

	s.sessions.Store(session)

	s.logger.Info("quiz started",
		zap.String("owner", owner),
		zap.String("session_id", session.ID),
		zap.String("difficulty", string(d)),
		zap.Strings("topics", topics),
		zap.Int("requested", count),
		zap.Int("total", session.TotalQuestions),
	)

	return session, nil
}

// Session returns a snapshot of the owner's session.
func (s *QuizService) Session(_ context.Context, owner string) (*entities.QuizSession, error) {
	session, ok := s.sessions.Get(owner)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// CurrentQuestion returns the question the owner has to answer next.
func (s *QuizService) CurrentQuestion(ctx context.Context, owner string) (*QuestionView, error) {
	session, err := s.Session(ctx, owner)
	if err != nil {
		return nil, err
	}

	q, err := session.CurrentQuestion()
	if err != nil {
		return nil, err
	}

	return &QuestionView{
		Number:   session.CurrentIndex + 1,
		Total:    session.TotalQuestions,
		Topic:    q.Topic,
		Prompt:   q.Prompt,
		Options:  append([]string(nil), q.Options...),
		Answered: session.Answered,
	}, nil
}

// SubmitAnswer grades selectedOption, which must be the exact text of the chosen option.
func (s *QuizService) SubmitAnswer(_ context.Context, owner, selectedOption string) (*entities.AnswerResult, error) {
	var result entities.AnswerResult

	_, err := s.sessions.Update(owner, func(session *entities.QuizSession) error {
		var err error
		result, err = session.Submit(selectedOption, s.now())
		return err
	})
	if err != nil {
		return nil, s.mapStorageErr(err)
	}

	s.logger.Debug("answer submitted",
		zap.String("owner", owner),
		zap.Bool("is_correct", result.IsCorrect),
	)

	return &result, nil
}

// Advance moves to the next question. When the quiz is completed the result is recorded.
func (s *QuizService) Advance(ctx context.Context, owner string) (entities.QuizState, error) {
	var state entities.QuizState

	session, err := s.sessions.Update(owner, func(session *entities.QuizSession) error {
		var err error
		state, err = session.Advance(s.now())
		return err
	})
	if err != nil {
		return state, s.mapStorageErr(err)
	}

	if state == entities.QuizStateCompleted {
		s.recordResult(ctx, session)
	}

	return state, nil
}

// FinalScore returns the owner's score. Before any answer it is 0%.
func (s *QuizService) FinalScore(ctx context.Context, owner string) (*Score, error) {
	session, err := s.Session(ctx, owner)
	if err != nil {
		return nil, err
	}
	if session.State() == entities.QuizStateNotStarted {
		return nil, fmt.Errorf("%w: quiz is not started", entities.ErrInvalidTransition)
	}

	return &Score{
		Correct:    session.Score,
		Total:      session.TotalQuestions,
		Percentage: session.FinalScore(),
	}, nil
}

// Restart discards the owner's session. It is a no-op when there is none.
func (s *QuizService) Restart(_ context.Context, owner string) error {
	_, err := s.sessions.Update(owner, func(session *entities.QuizSession) error {
		session.Restart()
		return nil
	})
	if err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		return err
	}

	s.sessions.Delete(owner)
	return nil
}

func (s *QuizService) recordResult(ctx context.Context, session *entities.QuizSession) {
	result, err := session.Result()
	if err != nil {
		s.logger.Error("failed to build quiz result", zap.String("session_id", session.ID), zap.Error(err))
		return
	}

	if err := s.results.Save(ctx, result); err != nil {
		s.logger.Error("failed to save quiz result",
			zap.String("owner", session.Owner),
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("quiz completed",
		zap.String("owner", session.Owner),
		zap.String("session_id", session.ID),
		zap.Int("score", result.Score),
		zap.Int("total", result.Total),
		zap.Float64("percentage", result.Percentage),
	)
}

func (s *QuizService) mapStorageErr(err error) error {
	if errors.Is(err, storage.ErrSessionNotFound) {
		return ErrSessionNotFound
	}
	return err
}
