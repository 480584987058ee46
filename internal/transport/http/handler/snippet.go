package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/ErlanBelekov/easydev/internal/usecase"
	"github.com/gin-gonic/gin"
)

type snippetUsecaser interface {
	Create(ctx context.Context, input usecase.CreateSnippetInput) (*domain.Snippet, error)
	List(ctx context.Context, userID string, filter domain.SnippetFilter, page domain.PageRequest) (*usecase.SnippetPage, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Snippet, error)
	Update(ctx context.Context, id, userID string, upd domain.SnippetUpdate) (*domain.Snippet, error)
	Delete(ctx context.Context, id, userID string) error
	Languages(ctx context.Context, userID string) ([]string, error)
	Tags(ctx context.Context, userID string) ([]string, error)
}

type SnippetHandler struct {
	snippets snippetUsecaser
	logger   *slog.Logger
}

func NewSnippetHandler(snippets snippetUsecaser, logger *slog.Logger) *SnippetHandler {
	return &SnippetHandler{snippets: snippets, logger: logger.With("component", "snippet_handler")}
}

type createSnippetRequest struct {
	Title       string   `json:"title"       binding:"required,max=200"`
	Description string   `json:"description" binding:"required"`
	Code        string   `json:"code"        binding:"required"`
	Language    string   `json:"language"    binding:"required,max=50"`
	Tags        []string `json:"tags"        binding:"max=50"`
}

type updateSnippetRequest struct {
	Title       *string   `json:"title"       binding:"omitempty,max=200"`
	Description *string   `json:"description"`
	Code        *string   `json:"code"`
	Language    *string   `json:"language"    binding:"omitempty,max=50"`
	Tags        *[]string `json:"tags"        binding:"omitempty,max=50"`
}

type snippetResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	Language    string    `json:"language"`
	User        string    `json:"user"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type listSnippetsResponse struct {
	Snippets   []snippetResponse  `json:"snippets"`
	Pagination paginationResponse `json:"pagination"`
}

func toSnippetResponse(s *domain.Snippet) snippetResponse {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return snippetResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Code:        s.Code,
		Language:    s.Language,
		User:        s.UserID,
		Tags:        tags,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// GET /api/snippets?page=&limit=&language=&tag=&search=
func (h *SnippetHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	filter := domain.SnippetFilter{
		Language: c.Query("language"),
		Tag:      c.Query("tag"),
		Search:   c.Query("search"),
	}
	page, err := h.snippets.List(c.Request.Context(), userID, filter, pageRequest(c))
	if err != nil {
		respondError(c, h.logger, "list snippets", err)
		return
	}

	resp := listSnippetsResponse{
		Snippets:   make([]snippetResponse, 0, len(page.Snippets)),
		Pagination: toPaginationResponse(page.Pagination),
	}
	for _, s := range page.Snippets {
		resp.Snippets = append(resp.Snippets, toSnippetResponse(s))
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/snippets
func (h *SnippetHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req createSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	s, err := h.snippets.Create(c.Request.Context(), usecase.CreateSnippetInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Code:        req.Code,
		Language:    req.Language,
		Tags:        req.Tags,
	})
	if err != nil {
		respondError(c, h.logger, "create snippet", err)
		return
	}
	c.JSON(http.StatusCreated, toSnippetResponse(s))
}

// GET /api/snippets/:id
func (h *SnippetHandler) GetByID(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	s, err := h.snippets.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, h.logger, "get snippet", err)
		return
	}
	c.JSON(http.StatusOK, toSnippetResponse(s))
}

// PUT /api/snippets/:id
func (h *SnippetHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req updateSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	s, err := h.snippets.Update(c.Request.Context(), c.Param("id"), userID, domain.SnippetUpdate{
		Title:       req.Title,
		Description: req.Description,
		Code:        req.Code,
		Language:    req.Language,
		Tags:        req.Tags,
	})
	if err != nil {
		respondError(c, h.logger, "update snippet", err)
		return
	}
	c.JSON(http.StatusOK, toSnippetResponse(s))
}

// DELETE /api/snippets/:id
func (h *SnippetHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.snippets.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, h.logger, "delete snippet", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Snippet deleted successfully"})
}

// GET /api/snippets/meta/languages
func (h *SnippetHandler) Languages(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	langs, err := h.snippets.Languages(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "list languages", err)
		return
	}
	c.JSON(http.StatusOK, langs)
}

// GET /api/snippets/meta/tags
func (h *SnippetHandler) Tags(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	tags, err := h.snippets.Tags(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "list tags", err)
		return
	}
	c.JSON(http.StatusOK, tags)
}
