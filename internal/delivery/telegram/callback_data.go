package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionQuiz     = "quiz"
	actionLevel    = "level"
	actionConcept  = "concept"
	actionProgress = "progress"
	actionChat     = "chat"
)

// Quiz sub-actions.
const (
	quizDifficulty = "d"
	quizTopic      = "t"
	quizCount      = "c"
	quizSize       = "n"
	quizAnswer     = "a"
	quizNext       = "next"
	quizNew        = "new"
	quizStop       = "stop"
)

// Chat sub-actions.
const (
	chatNew = "new"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as a non-negative integer.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 || parts[0] == "" {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildQuizCallback(subAction string, value ...string) string {
	params := []string{subAction}
	params = append(params, value...)
	return callbackData{
		Action: actionQuiz,
		Params: params,
	}.encode()
}

func buildQuizDifficultyCallback(d entities.Difficulty) string {
	return buildQuizCallback(quizDifficulty, string(d))
}

// buildQuizTopicCallback refers to topics by position, the names may not fit in 64 bytes.
func buildQuizTopicCallback(index int) string {
	return buildQuizCallback(quizTopic, strconv.Itoa(index))
}

func buildQuizSizeCallback(count int) string {
	return buildQuizCallback(quizSize, strconv.Itoa(count))
}

// buildQuizAnswerCallback builds callback data for answering a quiz question.
// questionNum guards against taps on buttons of an already answered question.
func buildQuizAnswerCallback(questionNum, optionIndex int) string {
	return buildQuizCallback(quizAnswer, strconv.Itoa(questionNum), strconv.Itoa(optionIndex))
}

func buildLevelCallback(d entities.Difficulty) string {
	return callbackData{
		Action: actionLevel,
		Params: []string{string(d)},
	}.encode()
}

func buildConceptCallback(index int) string {
	return callbackData{
		Action: actionConcept,
		Params: []string{strconv.Itoa(index)},
	}.encode()
}

// buildProgressCallback builds callback data for opening the progress view.
func buildProgressCallback() string {
	return actionProgress
}

func buildNewChatCallback() string {
	return callbackData{
		Action: actionChat,
		Params: []string{chatNew},
	}.encode()
}
