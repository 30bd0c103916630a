package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
	"github.com/aliskhannn/python-tutor-bot/internal/service"
)

const (
	msgMenuExpired          = "This menu has expired. Start again with /quiz."
	msgAnswerFirst          = "Answer the question first."
	msgUnknownConceptButton = "This concept is no longer available."
)

// callbackFunc handles a button press. A non-empty alert is shown to the user.
type callbackFunc func(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (alert string, err error)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	userID := cb.From.ID
	data := decodeCallback(cb.Data)

	var fn callbackFunc
	switch data.Action {
	case actionQuiz:
		fn = h.handleQuizCallback
	case actionLevel:
		fn = h.handleLevelCallback

	// The remaining actions send new messages, so the button is released first.
	case actionConcept:
		h.answerCallback(cb.ID, "")
		_ = h.withErrorHandling(h.conceptCallback(userID, data))(ctx, chatID)
		return
	case actionProgress:
		h.answerCallback(cb.ID, "")
		_ = h.withErrorHandling(h.handleProgress(userID))(ctx, chatID)
		return
	case actionChat:
		h.answerCallback(cb.ID, "")
		if data.param(0) == chatNew {
			_ = h.withErrorHandling(h.handleNewChat(userID))(ctx, chatID)
		}
		return

	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
		h.answerCallback(cb.ID, "")
		return
	}

	alert, err := fn(ctx, cb, data)
	h.answerCallback(cb.ID, alert)
	if err != nil {
		h.logger.Error("callback error",
			zap.Int64("user_id", userID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		h.sendError(chatID, userMessage(err))
	}
}

func (h *Handler) handleQuizCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	switch data.param(0) {
	case quizNew:
		h.states.update(cb.From.ID, func(st *userState) { st.draft = nil })
		kb := buildDifficultyKeyboard()
		return "", h.edit(cb, formatDifficultyPrompt(), &kb)
	case quizDifficulty:
		return h.quizDifficultyCallback(cb, data)
	case quizTopic:
		return h.quizTopicCallback(cb, data)
	case quizCount:
		return h.quizCountCallback(cb)
	case quizSize:
		return h.quizSizeCallback(ctx, cb, data)
	case quizAnswer:
		return h.quizAnswerCallback(ctx, cb, data)
	case quizNext:
		return h.quizNextCallback(ctx, cb)
	case quizStop:
		h.states.update(cb.From.ID, func(st *userState) { st.draft = nil })
		if err := h.quizService.Restart(ctx, ownerKey(cb.From.ID)); err != nil {
			return "", err
		}
		return "", h.edit(cb, esc(msgQuizStopped), nil)
	default:
		h.logger.Warn("unknown quiz callback", zap.String("data", data.Raw))
		return "", nil
	}
}

func (h *Handler) quizDifficultyCallback(cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	d, ok := entities.ParseDifficulty(data.param(1))
	if !ok {
		return msgMenuExpired, nil
	}

	topics := h.quizService.ListTopics(string(d))
	if len(topics) == 0 {
		return msgNoQuestions, nil
	}

	draft := newQuizDraft(d, topics)
	h.states.update(cb.From.ID, func(st *userState) {
		st.draft = draft
		st.difficulty = d
		st.chatMode = false
	})

	kb := buildTopicKeyboard(draft)
	return "", h.edit(cb, formatTopicSelection(draft), &kb)
}

func (h *Handler) quizTopicCallback(cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	index, ok := data.intParam(1)

	var draft *quizDraft
	h.states.update(cb.From.ID, func(st *userState) {
		if ok && st.draft != nil && st.draft.toggle(index) {
			draft = st.draft
		}
	})
	if draft == nil {
		return msgMenuExpired, nil
	}

	kb := buildTopicKeyboard(draft)
	return "", h.edit(cb, formatTopicSelection(draft), &kb)
}

func (h *Handler) quizCountCallback(cb *tgbotapi.CallbackQuery) (string, error) {
	draft := h.draft(cb.From.ID)
	if draft == nil {
		return msgMenuExpired, nil
	}
	if len(draft.selected) == 0 {
		return msgSelectTopic, nil
	}

	kb := buildQuizSizeKeyboard()
	return "", h.edit(cb, formatCountPrompt(draft), &kb)
}

func (h *Handler) quizSizeCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	count, ok := data.intParam(1)
	draft := h.draft(cb.From.ID)
	if !ok || draft == nil || len(draft.selected) == 0 {
		return msgMenuExpired, nil
	}

	owner := ownerKey(cb.From.ID)
	session, err := h.quizService.StartQuiz(ctx, owner, string(draft.difficulty), draft.selectedTopics(), count)
	if errors.Is(err, service.ErrNoQuestionsAvailable) {
		return msgNoQuestions, nil
	}
	if err != nil {
		return "", err
	}

	h.states.update(cb.From.ID, func(st *userState) { st.draft = nil })

	q, err := h.quizService.CurrentQuestion(ctx, owner)
	if err != nil {
		return "", err
	}

	kb := buildQuizAnswerKeyboard(q)
	text := formatQuizStart(count, session.TotalQuestions) + "\n\n" + formatQuizQuestion(q)
	return "", h.edit(cb, text, &kb)
}

func (h *Handler) quizAnswerCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	num, okNum := data.intParam(1)
	index, okIndex := data.intParam(2)
	if !okNum || !okIndex {
		return msgStaleQuestion, nil
	}

	owner := ownerKey(cb.From.ID)
	q, err := h.quizService.CurrentQuestion(ctx, owner)
	if isStale(err) {
		return msgStaleQuestion, nil
	}
	if err != nil {
		return "", err
	}
	if q.Number != num || index >= len(q.Options) {
		return msgStaleQuestion, nil
	}

	res, err := h.quizService.SubmitAnswer(ctx, owner, q.Options[index])
	if errors.Is(err, entities.ErrAlreadyAnswered) {
		return msgAlreadyAnswered, nil
	}
	if err != nil {
		return "", err
	}

	text := formatQuizQuestion(q) + "\n\n" +
		esc("Your answer: ") + bold(res.SelectedOption) + "\n" +
		formatAnswerFeedback(res)
	kb := buildQuizNextKeyboard(q.Number == q.Total)
	return "", h.edit(cb, text, &kb)
}

func (h *Handler) quizNextCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) (string, error) {
	owner := ownerKey(cb.From.ID)

	state, err := h.quizService.Advance(ctx, owner)
	if errors.Is(err, entities.ErrNotAnswered) {
		return msgAnswerFirst, nil
	}
	if isStale(err) {
		return msgStaleQuestion, nil
	}
	if err != nil {
		return "", err
	}

	// Drop the button from the answered question.
	h.clearKeyboard(cb)

	chatID := cb.Message.Chat.ID
	if state == entities.QuizStateCompleted {
		score, err := h.quizService.FinalScore(ctx, owner)
		if err != nil {
			return "", err
		}
		msg := newHTMLMessage(chatID, formatQuizResult(score))
		msg.ReplyMarkup = buildQuizResultKeyboard()
		return "", h.send(msg)
	}

	q, err := h.quizService.CurrentQuestion(ctx, owner)
	if err != nil {
		return "", err
	}
	return "", h.sendQuestion(chatID, "", q)
}

func (h *Handler) handleLevelCallback(_ context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	d, ok := entities.ParseDifficulty(data.param(0))
	if !ok {
		return msgUnknownLevel, nil
	}

	h.states.update(cb.From.ID, func(st *userState) { st.difficulty = d })
	return "", h.edit(cb, formatLevelSet(d), nil)
}

func (h *Handler) conceptCallback(userID int64, data callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		concepts := service.Concepts()
		index, ok := data.intParam(0)
		if !ok || index >= len(concepts) {
			return h.send(newHTMLMessage(chatID, esc(msgUnknownConceptButton)))
		}
		return h.explainConcept(ctx, chatID, userID, concepts[index])
	}
}

func (h *Handler) draft(userID int64) *quizDraft {
	var draft *quizDraft
	h.states.update(userID, func(st *userState) { draft = st.draft })
	return draft
}

// edit replaces the text and keyboard of the message the button belongs to.
func (h *Handler) edit(cb *tgbotapi.CallbackQuery, text string, kb *tgbotapi.InlineKeyboardMarkup) error {
	return h.send(newHTMLEdit(cb.Message.Chat.ID, cb.Message.MessageID, text, kb))
}

func (h *Handler) clearKeyboard(cb *tgbotapi.CallbackQuery) {
	edit := tgbotapi.NewEditMessageReplyMarkup(
		cb.Message.Chat.ID,
		cb.Message.MessageID,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	if _, err := h.bot.Request(edit); err != nil {
		h.logger.Debug("failed to clear keyboard", zap.Error(err))
	}
}

// isStale reports errors caused by buttons of a finished or discarded quiz.
func isStale(err error) bool {
	return errors.Is(err, service.ErrSessionNotFound) ||
		(errors.Is(err, entities.ErrInvalidTransition) && !errors.Is(err, entities.ErrNotAnswered))
}
