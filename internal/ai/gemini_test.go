package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/fake"
)

// recordingModel captures the last request and answers with resp or err.
type recordingModel struct {
	messages []llms.MessageContent
	opts     llms.CallOptions
	resp     *llms.ContentResponse
	err      error
	block    bool
}

func (m *recordingModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.messages = messages
	for _, o := range options {
		o(&m.opts)
	}
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.resp, m.err
}

func (m *recordingModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func textOf(t *testing.T, mc llms.MessageContent) string {
	t.Helper()
	if len(mc.Parts) != 1 {
		t.Fatalf("parts = %d, want 1", len(mc.Parts))
	}
	part, ok := mc.Parts[0].(llms.TextContent)
	if !ok {
		t.Fatalf("part is %T, want llms.TextContent", mc.Parts[0])
	}
	return part.Text
}

func choices(texts ...string) *llms.ContentResponse {
	resp := &llms.ContentResponse{}
	for _, s := range texts {
		resp.Choices = append(resp.Choices, &llms.ContentChoice{Content: s})
	}
	return resp
}

func TestGenerate(t *testing.T) {
	model := &recordingModel{resp: choices("Hello, Python!")}
	client := NewClient(model, Config{}, nil)

	reply, err := client.Generate(context.Background(), Request{
		System: "be nice",
		Messages: []Message{
			{Role: RoleUser, Text: "hi"},
			{Role: RoleModel, Text: "hello"},
			{Role: RoleUser, Text: "teach me"},
		},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "Hello, Python!" {
		t.Fatalf("reply = %q", reply)
	}

	wantRoles := []llms.ChatMessageType{
		llms.ChatMessageTypeSystem,
		llms.ChatMessageTypeHuman,
		llms.ChatMessageTypeAI,
		llms.ChatMessageTypeHuman,
	}
	if len(model.messages) != len(wantRoles) {
		t.Fatalf("messages = %d, want %d", len(model.messages), len(wantRoles))
	}
	for i, role := range wantRoles {
		if model.messages[i].Role != role {
			t.Errorf("messages[%d].Role = %s, want %s", i, model.messages[i].Role, role)
		}
	}
	if got := textOf(t, model.messages[0]); got != "be nice" {
		t.Fatalf("system instruction = %q", got)
	}
	if got := textOf(t, model.messages[3]); got != "teach me" {
		t.Fatalf("prompt = %q", got)
	}

	want := DefaultGenerationConfig()
	if model.opts.Temperature != want.Temperature || model.opts.TopP != want.TopP ||
		model.opts.TopK != want.TopK || model.opts.MaxTokens != want.MaxOutputTokens {
		t.Fatalf("call options = %+v, want %+v", model.opts, want)
	}
}

func TestGenerateWithoutSystemInstruction(t *testing.T) {
	model := &recordingModel{resp: choices("ok")}
	client := NewClient(model, Config{}, nil)

	if _, err := client.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Text: "hi"}}}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(model.messages) != 1 || model.messages[0].Role != llms.ChatMessageTypeHuman {
		t.Fatalf("messages = %+v", model.messages)
	}
}

func TestGenerateWithFakeModel(t *testing.T) {
	client := NewClient(fake.NewFakeLLM([]string{"first", "second"}), Config{}, nil)
	req := Request{Messages: []Message{{Role: RoleUser, Text: "hi"}}}

	for _, want := range []string{"first", "second"} {
		got, err := client.Generate(context.Background(), req)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if got != want {
			t.Fatalf("reply = %q, want %q", got, want)
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	modelErr := errors.New("quota exceeded")

	tests := []struct {
		name    string
		resp    *llms.ContentResponse
		err     error
		wantErr error
	}{
		{"model error", nil, modelErr, modelErr},
		{"no choices", choices(), nil, ErrEmptyResponse},
		{"blank text", choices("  \n"), nil, ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(&recordingModel{resp: tt.resp, err: tt.err}, Config{}, nil)

			_, err := client.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Text: "hi"}}})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateTimeout(t *testing.T) {
	client := NewClient(&recordingModel{block: true}, Config{Timeout: 50 * time.Millisecond}, nil)

	started := time.Now()
	_, err := client.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Text: "hi"}}})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if elapsed := time.Since(started); elapsed > 5*time.Second {
		t.Fatalf("Generate returned after %s", elapsed)
	}
}

func TestGenerateEmptyRequest(t *testing.T) {
	model := &recordingModel{resp: choices("unused")}
	client := NewClient(model, Config{}, nil)

	if _, err := client.Generate(context.Background(), Request{}); !errors.Is(err, ErrEmptyRequest) {
		t.Fatalf("err = %v, want ErrEmptyRequest", err)
	}
	if model.messages != nil {
		t.Fatalf("model was called for an empty request")
	}
	if client.cfg.Model != DefaultModel || client.cfg.Timeout != DefaultTimeout {
		t.Fatalf("defaults were not applied: %+v", client.cfg)
	}
}
