package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestRespondError_Mapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not owned note", fmt.Errorf("get note: %w", domain.ErrNoteNotFound), http.StatusNotFound, errNoteNotFound},
		{"owner deleted since token issue", fmt.Errorf("create note: %w", domain.ErrUserNotFound), http.StatusNotFound, errUserNotFound},
		{"invalid action", domain.ErrInvalidAction, http.StatusBadRequest, errInvalidAction},
		{"ai not configured", domain.ErrAINotConfigured, http.StatusServiceUnavailable, errAINotConfigured},
		{"store timeout", fmt.Errorf("list: %w", domain.ErrStoreUnavailable), http.StatusServiceUnavailable, errUnavailable},
		{"upstream with message", &domain.UpstreamError{StatusCode: 401, Message: "invalid api key"}, http.StatusBadGateway, "invalid api key"},
		{"upstream without message", &domain.UpstreamError{Err: errors.New("timeout")}, http.StatusBadGateway, errAIFailed},
		{"conversion", fmt.Errorf("render: %w", domain.ErrConversion), http.StatusInternalServerError, errConversionFailed},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests, "Too many requests, please try again later"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, errInternalServer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, logger, "op", tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, tc.wantMsg), w.Body.String())
		})
	}
}

func TestBindMessage(t *testing.T) {
	type req struct {
		Title string `json:"title" binding:"required"`
		Email string `json:"email" binding:"omitempty,email"`
		Code  string `json:"code"  binding:"omitempty,max=3"`
	}

	cases := []struct {
		name string
		in   req
		want string
	}{
		{"required", req{}, "title is required"},
		{"email", req{Title: "t", Email: "nope"}, "email must be a valid email"},
		{"max", req{Title: "t", Code: "abcd"}, "code must be at most 3 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tc.in)
			assert.Equal(t, tc.want, bindMessage(err))
		})
	}

	assert.Equal(t, errInvalidBody, bindMessage(errors.New("unexpected EOF")))
}
