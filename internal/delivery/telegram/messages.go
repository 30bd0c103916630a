// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
	"github.com/aliskhannn/python-tutor-bot/internal/service"
)

// Error and hint messages.
const (
	msgInternalError       = "Something went wrong. Please try again later."
	msgUnknownCommand      = "Unknown command. Send /help to see what I can do."
	msgUseCommands         = "Pick something to do with /quiz, /chat or /concept. Send /help for the full list."
	msgTutorUnavailable    = "The tutor is unavailable right now. Please try again in a moment."
	msgQuizUnavailable     = "Could not start the quiz, please try again later."
	msgNoQuestions         = "There are no questions for the selected topics."
	msgNoActiveQuiz        = "You have no quiz in progress. Start one with /quiz."
	msgSelectTopic         = "Select at least one topic."
	msgStaleQuestion       = "This question is no longer active."
	msgAlreadyAnswered     = "You have already answered this question."
	msgQuizStopped         = "Quiz stopped. Start a new one with /quiz."
	msgProgressUnavailable = "Could not load your progress. Please try again later."
	msgNoProgress          = "You have not completed any quizzes yet. Try /quiz!"
	msgChatOn              = "💬 Chat mode is on. Ask me anything about Python. Send /stop to leave."
	msgChatCleared         = "🧹 Conversation cleared."
	msgUseReview           = "Send the code after the command, for example:\n/review def add(a, b): return a + b"
	msgCodeTooLarge        = "This snippet is too large to review. Please send a shorter one."
	msgEmptyQuestion       = "Please send a question."
	msgUnknownConcept      = "I don't know this concept. Pick one from /concept."
	msgUnknownLevel        = "Unknown level. Use one of: Beginner, Intermediate, Advanced."
)

// quizSizes are the question counts offered when starting a quiz.
var quizSizes = []int{3, 5, 10}

func msgWelcome() string {
	var sb strings.Builder

	sb.WriteString(bold("🐍 Python Tutor"))
	sb.WriteString("\n\n")
	sb.WriteString(esc("I help you learn Python at your own pace."))
	sb.WriteString("\n\n")
	sb.WriteString(esc("What you can do:"))
	sb.WriteString("\n\n")
	sb.WriteString(esc("🎯 /quiz - test yourself with multiple-choice questions"))
	sb.WriteString("\n")
	sb.WriteString(esc("💬 /chat - ask the tutor anything about Python"))
	sb.WriteString("\n")
	sb.WriteString(esc("📖 /concept - get a lesson on a core concept"))
	sb.WriteString("\n")
	sb.WriteString(esc("🔍 /review - get feedback on a code snippet"))
	sb.WriteString("\n")
	sb.WriteString(esc("📊 /progress - see your quiz results"))
	sb.WriteString("\n\n")
	sb.WriteString(esc("Set your level with /level, it tunes the tutor and the quiz."))

	return sb.String()
}

func msgHelp() string {
	return strings.Join([]string{
		bold("Commands"),
		"",
		esc("/quiz - start or resume a quiz"),
		esc("/topics [level] - list quiz topics"),
		esc("/level [Beginner|Intermediate|Advanced] - set your level"),
		esc("/chat [question] - talk to the tutor"),
		esc("/newchat - start a fresh conversation"),
		esc("/clearchat - forget the conversation"),
		esc("/concept [name] - explain a Python concept"),
		esc("/review <code> - review a code snippet"),
		esc("/progress - show your results"),
		esc("/stop - stop the quiz and leave chat mode"),
	}, "\n")
}

func formatLevelPrompt(current entities.Difficulty) string {
	return fmt.Sprintf("%s %s\n\n%s",
		esc("Your level:"),
		bold(current.String()),
		esc("Choose a new one:"),
	)
}

func formatLevelSet(d entities.Difficulty) string {
	return esc("✅ Level set to ") + bold(d.String())
}

func formatDifficultyPrompt() string {
	return bold("🎯 New quiz") + "\n\n" + esc("Choose a difficulty:")
}

func formatTopics(d entities.Difficulty, topics []string) string {
	if len(topics) == 0 {
		return esc(fmt.Sprintf("No topics for %s yet.", d))
	}

	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("Topics for %s", d)))
	sb.WriteString("\n\n")
	for _, t := range topics {
		sb.WriteString(esc("• " + t))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatTopicSelection(draft *quizDraft) string {
	return fmt.Sprintf("%s %s\n\n%s",
		esc("Difficulty:"),
		bold(draft.difficulty.String()),
		esc("Select one or more topics, then press Continue."),
	)
}

func formatCountPrompt(draft *quizDraft) string {
	return fmt.Sprintf("%s %s\n%s %s\n\n%s",
		esc("Difficulty:"),
		bold(draft.difficulty.String()),
		esc("Topics:"),
		bold(strings.Join(draft.selectedTopics(), ", ")),
		esc("How many questions?"),
	)
}

// formatQuizStart introduces a quiz. It mentions when the pool was smaller than requested.
func formatQuizStart(requested, total int) string {
	text := bold("🎯 Quiz started!")
	if total < requested {
		text += "\n" + esc(fmt.Sprintf("Only %d questions are available for these topics.", total))
	}
	return text
}

// formatQuizQuestion formats a quiz question.
func formatQuizQuestion(q *service.QuestionView) string {
	return fmt.Sprintf(
		"%s\n%s\n\n%s",
		esc(fmt.Sprintf("Question %d of %d", q.Number, q.Total)),
		esc("Topic: "+q.Topic),
		bold(q.Prompt),
	)
}

// formatAnswerFeedback formats feedback for a quiz answer.
func formatAnswerFeedback(res *entities.AnswerResult) string {
	var sb strings.Builder
	if res.IsCorrect {
		sb.WriteString(esc("✅ Correct!"))
	} else {
		sb.WriteString(esc("❌ Incorrect. Correct answer: "))
		sb.WriteString(bold(res.CorrectAnswer))
	}
	if res.Explanation != "" {
		sb.WriteString("\n\n")
		sb.WriteString(esc("💡 " + res.Explanation))
	}
	return sb.String()
}

// buildProgressBar creates an ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled
	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}

// formatQuizResult formats quiz results.
func formatQuizResult(score *service.Score) string {
	emoji, message := "📚", "Keep practicing, you'll get there!"
	switch {
	case score.Percentage >= 90:
		emoji, message = "🌟", "Excellent work!"
	case score.Percentage >= 70:
		emoji, message = "👍", "Good result!"
	case score.Percentage >= 50:
		emoji, message = "💪", "Not bad, keep going!"
	}

	return fmt.Sprintf(
		"%s %s\n\n%s %s\n%s\n\n%s",
		emoji,
		bold("Quiz completed!"),
		esc("Score:"),
		bold(fmt.Sprintf("%d/%d (%.0f%%)", score.Correct, score.Total, score.Percentage)),
		esc(buildProgressBar(score.Correct, score.Total, 10)),
		esc(message),
	)
}

func formatProgress(s *service.ProgressSummary) string {
	if s.QuizzesTaken == 0 {
		return esc(msgNoProgress)
	}

	var sb strings.Builder
	sb.WriteString(bold("📊 Your progress"))
	sb.WriteString("\n\n")
	sb.WriteString(esc(fmt.Sprintf("Quizzes completed: %d", s.QuizzesTaken)))
	sb.WriteString("\n")
	sb.WriteString(esc(fmt.Sprintf("Correct answers: %d/%d", s.CorrectAnswers, s.QuestionsAnswered)))
	sb.WriteString("\n")
	sb.WriteString(esc(buildProgressBar(s.CorrectAnswers, s.QuestionsAnswered, 10)))
	sb.WriteString("\n\n")
	sb.WriteString(esc(fmt.Sprintf("Average: %.0f%%  Best: %.0f%%  Last: %.0f%%", s.AverageScore, s.BestScore, s.LastScore)))

	if len(s.ByDifficulty) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(bold("By level"))
		for _, d := range s.ByDifficulty {
			sb.WriteString("\n")
			sb.WriteString(esc(fmt.Sprintf("• %s: %d quizzes, %.0f%% average", d.Difficulty, d.Quizzes, d.AverageScore)))
		}
	}

	if len(s.Recent) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(bold("Recent"))
		for _, r := range s.Recent {
			sb.WriteString("\n")
			sb.WriteString(esc(fmt.Sprintf("• %s %s: %d/%d (%.0f%%)",
				r.CompletedAt.Format("Jan 02"), r.Difficulty, r.Score, r.Total, r.Percentage)))
		}
	}

	return sb.String()
}
