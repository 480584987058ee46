package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/ErlanBelekov/easydev/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	errInternalServer     = "Internal server error"
	errUnauthorized       = "Unauthorized"
	errInvalidCredentials = "Invalid credentials"
	errUserExists         = "User already exists"
	errUserNotFound       = "User not found"
	errNoteNotFound       = "Note not found"
	errSnippetNotFound    = "Snippet not found"
	errInvalidBody        = "Invalid request body"
	errAIInputMissing     = "Action and text are required"
	errInvalidAction      = "Invalid action"
	errAINotConfigured    = "AI service is not configured"
	errAIFailed           = "Failed to process text with AI"
	errUnavailable        = "Service temporarily unavailable"
	errNoFile             = "No file uploaded"
	errFileTooLarge       = "File is too large"
	errConversionFailed   = "Conversion failed"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// Checked in order; the first match wins. Anything unmatched is a logged 500.
var errorMappings = []errorMapping{
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, errInvalidCredentials},
	{domain.ErrTokenInvalid, http.StatusUnauthorized, errUnauthorized},
	{domain.ErrUnauthorized, http.StatusUnauthorized, errUnauthorized},

	{domain.ErrEmailTaken, http.StatusBadRequest, errUserExists},
	{domain.ErrPasswordTooShort, http.StatusBadRequest, "Password must be at least 6 characters"},
	{domain.ErrInvalidEmail, http.StatusBadRequest, "Please provide a valid email"},
	{domain.ErrNoteTitleEmpty, http.StatusBadRequest, "Title is required"},
	{domain.ErrSnippetInvalid, http.StatusBadRequest, "Title, description, code and language are required"},
	{domain.ErrAIInputMissing, http.StatusBadRequest, errAIInputMissing},
	{domain.ErrInvalidAction, http.StatusBadRequest, errInvalidAction},
	{domain.ErrNoFile, http.StatusBadRequest, errNoFile},

	{domain.ErrUserNotFound, http.StatusNotFound, errUserNotFound},
	{domain.ErrNoteNotFound, http.StatusNotFound, errNoteNotFound},
	{domain.ErrSnippetNotFound, http.StatusNotFound, errSnippetNotFound},

	{domain.ErrRateLimited, http.StatusTooManyRequests, "Too many requests, please try again later"},

	{domain.ErrAINotConfigured, http.StatusServiceUnavailable, errAINotConfigured},
	{domain.ErrStoreUnavailable, http.StatusServiceUnavailable, errUnavailable},
	{domain.ErrServiceUnavailable, http.StatusServiceUnavailable, errUnavailable},

	{domain.ErrConversion, http.StatusInternalServerError, errConversionFailed},
}

// respondError writes the {"message": ...} body for err. Server-side failures are logged.
func respondError(c *gin.Context, logger *slog.Logger, op string, err error) {
	var upErr *domain.UpstreamError
	if errors.As(err, &upErr) {
		logger.WarnContext(c.Request.Context(), op, "error", err)
		msg := upErr.Message
		if msg == "" {
			msg = errAIFailed
		}
		c.JSON(http.StatusBadGateway, gin.H{"message": msg})
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.status >= http.StatusInternalServerError {
				logger.ErrorContext(c.Request.Context(), op, "error", err)
			}
			c.JSON(m.status, gin.H{"message": m.message})
			return
		}
	}

	logger.ErrorContext(c.Request.Context(), op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
}

// respondBindError turns a ShouldBindJSON failure into a 400 with a readable message.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": bindMessage(err)})
}

func bindMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return errInvalidBody
	}

	fe := ve[0]
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// requireUser reads the ID set by the auth middleware. A guarded route without it
// is a wiring bug, answered as 401.
func requireUser(c *gin.Context) (string, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
	}
	return id, ok
}
