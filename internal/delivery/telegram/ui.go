package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
	"github.com/aliskhannn/python-tutor-bot/internal/service"
)

// buildMainMenuKeyboard builds keyboard for the welcome screen.
func buildMainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start a quiz", buildQuizCallback(quizNew)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💬 Chat with the tutor", buildNewChatCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 My progress", buildProgressCallback()),
		),
	)
}

// buildDifficultyKeyboard builds keyboard for choosing a quiz difficulty.
func buildDifficultyKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, d := range entities.Difficulties() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(d.String(), buildQuizDifficultyCallback(d)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildLevelKeyboard marks the current level.
func buildLevelKeyboard(current entities.Difficulty) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, d := range entities.Difficulties() {
		label := d.String()
		if d == current {
			label = "✅ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildLevelCallback(d)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// buildTopicKeyboard builds toggle buttons for the draft topics.
func buildTopicKeyboard(draft *quizDraft) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, t := range draft.topics {
		label := "⬜ " + t
		if draft.selected[i] {
			label = "✅ " + t
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildQuizTopicCallback(i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Back", buildQuizCallback(quizNew)),
		tgbotapi.NewInlineKeyboardButtonData("Continue ▶️", buildQuizCallback(quizCount)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizSizeKeyboard builds keyboard for choosing the number of questions.
func buildQuizSizeKeyboard() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, n := range quizSizes {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(n), buildQuizSizeCallback(n)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// buildQuizAnswerKeyboard builds keyboard for quiz question.
func buildQuizAnswerKeyboard(q *service.QuestionView) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		button := tgbotapi.NewInlineKeyboardButtonData(option, buildQuizAnswerCallback(q.Number, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⏹ Stop quiz", buildQuizCallback(quizStop)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizNextKeyboard is shown under the answer feedback.
func buildQuizNextKeyboard(last bool) tgbotapi.InlineKeyboardMarkup {
	label := "Next question ▶️"
	if last {
		label = "🏁 Finish"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildQuizCallback(quizNext)),
		),
	)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New quiz", buildQuizCallback(quizNew)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 My progress", buildProgressCallback()),
		),
	)
}

// buildConceptKeyboard lists the concepts the tutor can explain.
func buildConceptKeyboard(concepts []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, c := range concepts {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c, buildConceptCallback(i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildProgressKeyboard builds keyboard for progress screen.
func buildProgressKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", buildProgressCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start a quiz", buildQuizCallback(quizNew)),
		),
	)
}
