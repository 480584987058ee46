package email_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/ErlanBelekov/easydev/internal/email"
)

func TestWelcome_EscapesName(t *testing.T) {
	subject, body := email.Welcome("<Ann>")
	if subject != "Welcome to EasyDev" {
		t.Errorf("subject = %q", subject)
	}
	if strings.Contains(body, "<Ann>") || !strings.Contains(body, "&lt;Ann&gt;") {
		t.Errorf("body does not escape the name: %s", body)
	}
}

func TestNewSender_LocalLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	sender := email.NewSender("local", "", "", logger)
	if err := sender.Send(context.Background(), "a@example.com", "hi", "<p>x</p>"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.Contains(buf.String(), "to=a@example.com") {
		t.Errorf("log output missing recipient: %s", buf.String())
	}
}
