package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/ErlanBelekov/easydev/internal/usecase"
)

type fakeCompleter struct {
	complete func(ctx context.Context, prompt string) (string, error)
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return f.complete(ctx, prompt)
}

func TestAIProcess_BuildsPromptAndCleans(t *testing.T) {
	var gotPrompt string
	c := &fakeCompleter{complete: func(_ context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "**Hello**, [world] 2024\n- item", nil
	}}

	out, err := usecase.NewAIUsecase(c, slog.Default()).Process(context.Background(), "u1", "fix-english", "helo wrld")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Hello world item" {
		t.Errorf("output = %q, want %q", out, "Hello world item")
	}
	if !strings.HasPrefix(gotPrompt, "Fix the grammar, spelling, and formatting of this text.") ||
		!strings.HasSuffix(gotPrompt, ":\n\nhelo wrld") {
		t.Errorf("unexpected prompt %q", gotPrompt)
	}
}

func TestAIProcess_Validation(t *testing.T) {
	uc := usecase.NewAIUsecase(nil, slog.Default())

	cases := []struct {
		name, action, text string
		want               error
	}{
		{"missing action", "", "text", domain.ErrAIInputMissing},
		{"missing text", "fix-english", "", domain.ErrAIInputMissing},
		{"unknown action", "translate", "text", domain.ErrInvalidAction},
		{"not configured", "format-content", "text", domain.ErrAINotConfigured},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Process(context.Background(), "u1", tc.action, tc.text); !errors.Is(err, tc.want) {
				t.Errorf("want %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := uc.Process(context.Background(), "u1", "format-content", "x"); !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("not configured should match ErrServiceUnavailable, got %v", err)
	}
}

func TestAIProcess_UpstreamErrorPassesThrough(t *testing.T) {
	c := &fakeCompleter{complete: func(context.Context, string) (string, error) {
		return "", &domain.UpstreamError{StatusCode: 401, Message: "Invalid API key"}
	}}

	_, err := usecase.NewAIUsecase(c, slog.Default()).Process(context.Background(), "u1", "generate-content", "x")

	var upErr *domain.UpstreamError
	if !errors.As(err, &upErr) || upErr.Message != "Invalid API key" {
		t.Errorf("want UpstreamError with message, got %v", err)
	}
}

func TestAIProcess_PlainErrorBecomesUpstream(t *testing.T) {
	c := &fakeCompleter{complete: func(context.Context, string) (string, error) {
		return "", errors.New("boom")
	}}

	_, err := usecase.NewAIUsecase(c, slog.Default()).Process(context.Background(), "u1", "generate-content", "x")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("want ErrUpstream, got %v", err)
	}
}

func TestPrompt_AllActions(t *testing.T) {
	for _, a := range []usecase.AIAction{usecase.ActionFixEnglish, usecase.ActionFormatContent, usecase.ActionGenerateContent} {
		p, ok := usecase.Prompt(a, "body")
		if !ok || !strings.HasSuffix(p, "\n\nbody") {
			t.Errorf("Prompt(%s) = %q, %v", a, p, ok)
		}
	}
	if _, ok := usecase.Prompt("other", "body"); ok {
		t.Error("unknown action accepted")
	}
}
