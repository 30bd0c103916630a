package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
	"github.com/aliskhannn/python-tutor-bot/internal/service"
)

func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newHTMLMessage(chatID, msgWelcome())
		msg.ReplyMarkup = buildMainMenuKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newHTMLMessage(chatID, msgHelp()))
	}
}

func (h *Handler) handleUnknown() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newHTMLMessage(chatID, esc(msgUnknownCommand)))
	}
}

// handleQuiz resumes the quiz in progress or asks for the difficulty of a new one.
func (h *Handler) handleQuiz(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.states.update(userID, func(st *userState) { st.chatMode = false })

		q, err := h.quizService.CurrentQuestion(ctx, ownerKey(userID))
		if err == nil {
			h.logger.Debug("resuming quiz",
				zap.Int64("user_id", userID),
				zap.Int("question", q.Number),
			)
			return h.sendQuestion(chatID, esc("📝 Resuming your quiz..."), q)
		}
		if !errors.Is(err, service.ErrSessionNotFound) && !errors.Is(err, entities.ErrInvalidTransition) {
			return err
		}

		msg := newHTMLMessage(chatID, formatDifficultyPrompt())
		msg.ReplyMarkup = buildDifficultyKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) handleTopics(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		d := h.states.difficulty(userID)
		if args != "" {
			parsed, ok := entities.ParseDifficulty(args)
			if !ok {
				return h.send(newHTMLMessage(chatID, esc(msgUnknownLevel)))
			}
			d = parsed
		}

		topics := h.quizService.ListTopics(string(d))
		return h.send(newHTMLMessage(chatID, formatTopics(d, topics)))
	}
}

func (h *Handler) handleLevel(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if args == "" {
			msg := newHTMLMessage(chatID, formatLevelPrompt(h.states.difficulty(userID)))
			msg.ReplyMarkup = buildLevelKeyboard(h.states.difficulty(userID))
			return h.send(msg)
		}

		d, ok := entities.ParseDifficulty(args)
		if !ok {
			return h.send(newHTMLMessage(chatID, esc(msgUnknownLevel)))
		}
		h.states.update(userID, func(st *userState) { st.difficulty = d })
		return h.send(newHTMLMessage(chatID, formatLevelSet(d)))
	}
}

// handleChat turns chat mode on, or answers right away when a question follows the command.
func (h *Handler) handleChat(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.states.update(userID, func(st *userState) { st.chatMode = true })

		if args == "" {
			return h.send(newHTMLMessage(chatID, esc(msgChatOn)))
		}
		return h.tutorReply(ctx, chatID, userID, args)
	}
}

func (h *Handler) handleNewChat(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.states.update(userID, func(st *userState) { st.chatMode = true })

		welcome := h.tutorService.NewChat(ownerKey(userID))
		return h.sendLong(chatID, welcome.Content)
	}
}

func (h *Handler) handleClearChat(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.states.update(userID, func(st *userState) { st.chatMode = false })

		h.tutorService.ClearChat(ownerKey(userID))
		return h.send(newHTMLMessage(chatID, esc(msgChatCleared)))
	}
}

func (h *Handler) handleConcept(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if args == "" {
			msg := newHTMLMessage(chatID, esc("📖 Which concept should I explain?"))
			msg.ReplyMarkup = buildConceptKeyboard(service.Concepts())
			return h.send(msg)
		}
		return h.explainConcept(ctx, chatID, userID, args)
	}
}

func (h *Handler) handleReview(userID int64, code string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if code == "" {
			return h.send(newHTMLMessage(chatID, esc(msgUseReview)))
		}

		h.typing(chatID)
		reply, err := h.tutorService.ReviewCode(ctx, string(h.states.difficulty(userID)), code)
		if err != nil {
			return err
		}
		return h.sendLong(chatID, reply)
	}
}

func (h *Handler) handleProgress(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		summary, err := h.progressService.Summary(ctx, ownerKey(userID), 0)
		if err != nil {
			h.logger.Error("failed to load progress",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return h.send(newHTMLMessage(chatID, esc(msgProgressUnavailable)))
		}

		msg := newHTMLMessage(chatID, formatProgress(summary))
		msg.ReplyMarkup = buildProgressKeyboard()
		return h.send(msg)
	}
}

// handleStop discards the quiz in progress and leaves chat mode.
func (h *Handler) handleStop(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.states.update(userID, func(st *userState) {
			st.chatMode = false
			st.draft = nil
		})

		if err := h.quizService.Restart(ctx, ownerKey(userID)); err != nil {
			return err
		}
		return h.send(newHTMLMessage(chatID, esc(msgQuizStopped)))
	}
}

// handleText forwards free text to the tutor when chat mode is on.
func (h *Handler) handleText(userID int64, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if !h.states.chatMode(userID) {
			return h.send(newHTMLMessage(chatID, esc(msgUseCommands)))
		}
		return h.tutorReply(ctx, chatID, userID, text)
	}
}

func (h *Handler) tutorReply(ctx context.Context, chatID, userID int64, text string) error {
	h.typing(chatID)

	reply, err := h.tutorService.Chat(ctx, ownerKey(userID), string(h.states.difficulty(userID)), text)
	if err != nil {
		return err
	}
	return h.sendLong(chatID, reply)
}

func (h *Handler) explainConcept(ctx context.Context, chatID, userID int64, concept string) error {
	h.typing(chatID)

	reply, err := h.tutorService.ExplainConcept(ctx, string(h.states.difficulty(userID)), concept)
	if err != nil {
		return err
	}
	return h.sendLong(chatID, reply)
}

// sendQuestion sends q with its answer buttons, preceded by an optional header.
func (h *Handler) sendQuestion(chatID int64, header string, q *service.QuestionView) error {
	text := formatQuizQuestion(q)
	if header != "" {
		text = header + "\n\n" + text
	}

	msg := newHTMLMessage(chatID, text)
	if q.Answered {
		msg.ReplyMarkup = buildQuizNextKeyboard(q.Number == q.Total)
	} else {
		msg.ReplyMarkup = buildQuizAnswerKeyboard(q)
	}
	return h.send(msg)
}
