package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/gin-gonic/gin"
)

type aiUsecaser interface {
	Process(ctx context.Context, userID, action, text string) (string, error)
}

type AIHandler struct {
	ai     aiUsecaser
	logger *slog.Logger
}

func NewAIHandler(ai aiUsecaser, logger *slog.Logger) *AIHandler {
	return &AIHandler{ai: ai, logger: logger.With("component", "ai_handler")}
}

// Validated by the usecase so a missing field gets the same message as an empty one.
type processTextRequest struct {
	Action string `json:"action"`
	Text   string `json:"text"`
}

// POST /api/ai/process-text
func (h *AIHandler) ProcessText(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req processTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "process text", domain.ErrAIInputMissing)
		return
	}

	out, err := h.ai.Process(c.Request.Context(), userID, req.Action, req.Text)
	if err != nil {
		respondError(c, h.logger, "process text", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"processedText": out})
}
