package telegram

import (
	"reflect"
	"testing"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
)

func TestDecodeCallback(t *testing.T) {
	tests := []struct {
		data       string
		wantAction string
		wantParams []string
	}{
		{"progress", actionProgress, []string{}},
		{"quiz:a:2:1", actionQuiz, []string{"a", "2", "1"}},
		{"quiz:d:Beginner", actionQuiz, []string{"d", "Beginner"}},
		{"", "", nil},
	}

	for _, tt := range tests {
		got := decodeCallback(tt.data)
		if got.Action != tt.wantAction || got.Raw != tt.data {
			t.Errorf("decodeCallback(%q) = %+v", tt.data, got)
		}
		if len(got.Params) != len(tt.wantParams) || (len(tt.wantParams) > 0 && !reflect.DeepEqual(got.Params, tt.wantParams)) {
			t.Errorf("decodeCallback(%q).Params = %v, want %v", tt.data, got.Params, tt.wantParams)
		}
	}
}

func TestCallbackBuildersRoundTrip(t *testing.T) {
	cd := decodeCallback(buildQuizAnswerCallback(3, 2))
	if cd.Action != actionQuiz || cd.param(0) != quizAnswer {
		t.Fatalf("answer callback = %+v", cd)
	}
	if n, ok := cd.intParam(1); !ok || n != 3 {
		t.Fatalf("question number = %d, %v", n, ok)
	}
	if i, ok := cd.intParam(2); !ok || i != 2 {
		t.Fatalf("option index = %d, %v", i, ok)
	}

	cd = decodeCallback(buildQuizDifficultyCallback(entities.DifficultyIntermediate))
	if d, ok := entities.ParseDifficulty(cd.param(1)); !ok || d != entities.DifficultyIntermediate {
		t.Fatalf("difficulty callback = %+v", cd)
	}

	cd = decodeCallback(buildLevelCallback(entities.DifficultyAdvanced))
	if cd.Action != actionLevel || cd.param(0) != "Advanced" {
		t.Fatalf("level callback = %+v", cd)
	}

	if cd := decodeCallback(buildNewChatCallback()); cd.Action != actionChat || cd.param(0) != chatNew {
		t.Fatalf("chat callback = %+v", cd)
	}
}

func TestCallbackParamHelpers(t *testing.T) {
	cd := decodeCallback("quiz:t:x:-1")

	if got := cd.param(5); got != "" {
		t.Fatalf("param out of range = %q", got)
	}
	if _, ok := cd.intParam(1); ok {
		t.Fatalf("non-numeric param parsed")
	}
	if _, ok := cd.intParam(2); ok {
		t.Fatalf("negative param accepted")
	}
}

func TestCallbacksFitTelegramLimit(t *testing.T) {
	const maxCallbackBytes = 64

	data := []string{
		buildQuizAnswerCallback(10, 5),
		buildQuizTopicCallback(99),
		buildQuizSizeCallback(10),
		buildConceptCallback(99),
		buildProgressCallback(),
		buildNewChatCallback(),
	}
	for _, d := range entities.Difficulties() {
		data = append(data, buildQuizDifficultyCallback(d), buildLevelCallback(d))
	}

	for _, d := range data {
		if len(d) > maxCallbackBytes {
			t.Errorf("callback %q is %d bytes", d, len(d))
		}
	}
}
