package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/ErlanBelekov/easydev/internal/metrics"
	"github.com/ErlanBelekov/easydev/internal/textservice"
)

type AIAction string

const (
	ActionFixEnglish      AIAction = "fix-english"
	ActionFormatContent   AIAction = "format-content"
	ActionGenerateContent AIAction = "generate-content"
)

var promptPrefixes = map[AIAction]string{
	ActionFixEnglish:      "Fix the grammar, spelling, and formatting of this text. Make it more readable and professional. Only return the corrected text without any additional comments:\n\n",
	ActionFormatContent:   "Format this content for better readability and structure. Only return the formatted text without any additional comments:\n\n",
	ActionGenerateContent: "Generate content based on this prompt. Only return the generated content without any additional comments:\n\n",
}

// Prompt returns the full prompt for action, or false for an unknown action.
func Prompt(action AIAction, text string) (string, bool) {
	prefix, ok := promptPrefixes[action]
	if !ok {
		return "", false
	}
	return prefix + text, true
}

// Completer is satisfied by *textservice.Client.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type AIUsecase struct {
	completer Completer
	logger    *slog.Logger
}

// NewAIUsecase accepts a nil completer; Process then reports domain.ErrAINotConfigured.
func NewAIUsecase(completer Completer, logger *slog.Logger) *AIUsecase {
	return &AIUsecase{completer: completer, logger: logger.With("component", "ai")}
}

func (u *AIUsecase) Process(ctx context.Context, userID, action, text string) (string, error) {
	if action == "" || strings.TrimSpace(text) == "" {
		return "", domain.ErrAIInputMissing
	}
	prompt, ok := Prompt(AIAction(action), text)
	if !ok {
		return "", domain.ErrInvalidAction
	}
	if u.completer == nil {
		metrics.AIRequestsTotal.WithLabelValues(action, "unconfigured").Inc()
		return "", domain.ErrAINotConfigured
	}

	start := time.Now()
	out, err := u.completer.Complete(ctx, prompt)
	metrics.AIRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AIRequestsTotal.WithLabelValues(action, "error").Inc()
		u.logger.WarnContext(ctx, "completion failed", "user_id", userID, "action", action, "error", err)
		var upErr *domain.UpstreamError
		if errors.As(err, &upErr) {
			return "", err
		}
		return "", &domain.UpstreamError{Err: fmt.Errorf("complete: %w", err)}
	}

	metrics.AIRequestsTotal.WithLabelValues(action, "ok").Inc()
	return textservice.Clean(out), nil
}
