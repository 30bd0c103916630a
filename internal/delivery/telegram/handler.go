package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot             *tgbotapi.BotAPI
	logger          *zap.Logger
	quizService     QuizService
	tutorService    TutorService
	progressService ProgressService
	states          *stateStore
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	quizService QuizService,
	tutorService TutorService,
	progressService ProgressService,
) *Handler {
	return &Handler{
		bot:             bot,
		logger:          logger,
		quizService:     quizService,
		tutorService:    tutorService,
		progressService: progressService,
		states:          newStateStore(),
	}
}

// Run polls Telegram for updates until ctx is done.
// Updates are handled one at a time, so a user's actions are applied in order.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.Bool("command", update.Message.IsCommand()),
	)

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		_ = h.withErrorHandling(h.handleText(userID, update.Message.Text))(ctx, chatID)
		return
	}

	args := strings.TrimSpace(update.Message.CommandArguments())

	var fn HandlerFunc
	switch update.Message.Command() {
	case "start":
		fn = h.handleStart()
	case "help":
		fn = h.handleHelp()
	case "quiz":
		fn = h.handleQuiz(userID)
	case "topics":
		fn = h.handleTopics(userID, args)
	case "level":
		fn = h.handleLevel(userID, args)
	case "chat":
		fn = h.handleChat(userID, args)
	case "newchat":
		fn = h.handleNewChat(userID)
	case "clearchat":
		fn = h.handleClearChat(userID)
	case "concept":
		fn = h.handleConcept(userID, args)
	case "review":
		fn = h.handleReview(userID, args)
	case "progress":
		fn = h.handleProgress(userID)
	case "stop":
		fn = h.handleStop(userID)
	default:
		fn = h.handleUnknown()
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, text string) {
	if err := h.send(newHTMLMessage(chatID, esc(text))); err != nil {
		h.logger.Error("failed to send error message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// sendLong sends model output, splitting it to fit Telegram's message limit.
func (h *Handler) sendLong(chatID int64, text string) error {
	for _, chunk := range splitMessage(text, maxMessageRunes) {
		if err := h.send(newPlainMessage(chatID, chunk)); err != nil {
			return err
		}
	}
	return nil
}

// typing shows the "typing..." status while the model is working.
func (h *Handler) typing(chatID int64) {
	if _, err := h.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		h.logger.Debug("failed to send chat action", zap.Error(err))
	}
}

// answerCallback removes the loading state of a button; a non-empty text is shown as an alert.
func (h *Handler) answerCallback(cbID, text string) {
	answer := tgbotapi.NewCallback(cbID, text)
	if text != "" {
		answer = tgbotapi.NewCallbackWithAlert(cbID, text)
	}
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}
