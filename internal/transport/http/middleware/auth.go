package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey       = "userID"
	errUnauthorized = "Unauthorized"
)

// TokenVerifier is satisfied by *auth.Codec.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth validates a Bearer credential and sets the caller's user ID in the gin context.
// Every rejection answers 401 {"message":"Unauthorized"}; the reason is only logged.
func Auth(verifier TokenVerifier, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "auth")

	return func(c *gin.Context) {
		scheme, token, _ := strings.Cut(strings.TrimSpace(c.GetHeader("Authorization")), " ")
		if !strings.EqualFold(scheme, "Bearer") {
			logger.DebugContext(c.Request.Context(), "rejected request", "reason", domain.ErrTokenMissing.Error(), "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
			return
		}

		userID, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			reason := domain.ErrTokenInvalid.Error()
			switch {
			case errors.Is(err, domain.ErrTokenMissing):
				reason = domain.ErrTokenMissing.Error()
			case errors.Is(err, domain.ErrTokenExpired):
				reason = domain.ErrTokenExpired.Error()
			}
			logger.WarnContext(c.Request.Context(), "rejected request", "reason", reason, "path", c.FullPath(), "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the ID stored by Auth. ok is false on routes Auth does not guard.
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(userIDKey)
	return id, id != ""
}
