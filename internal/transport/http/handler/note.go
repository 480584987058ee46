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

type noteUsecaser interface {
	Create(ctx context.Context, input usecase.CreateNoteInput) (*domain.Note, error)
	List(ctx context.Context, userID string, page domain.PageRequest) (*usecase.NotePage, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Note, error)
	Update(ctx context.Context, id, userID string, upd domain.NoteUpdate) (*domain.Note, error)
	Delete(ctx context.Context, id, userID string) error
	SaveDraft(ctx context.Context, id, userID string) (*domain.Note, error)
}

type NoteHandler struct {
	notes  noteUsecaser
	logger *slog.Logger
}

func NewNoteHandler(notes noteUsecaser, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, logger: logger.With("component", "note_handler")}
}

type createNoteRequest struct {
	Title   string   `json:"title"   binding:"required,max=200"`
	Content string   `json:"content"`
	IsDraft *bool    `json:"isDraft"`
	Tags    []string `json:"tags"    binding:"max=50"`
}

type updateNoteRequest struct {
	Title   *string   `json:"title"   binding:"omitempty,max=200"`
	Content *string   `json:"content"`
	IsDraft *bool     `json:"isDraft"`
	Tags    *[]string `json:"tags"    binding:"omitempty,max=50"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	User      string    `json:"user"`
	IsDraft   bool      `json:"isDraft"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type listNotesResponse struct {
	Notes      []noteResponse     `json:"notes"`
	Pagination paginationResponse `json:"pagination"`
}

func toNoteResponse(n *domain.Note) noteResponse {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return noteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		User:      n.UserID,
		IsDraft:   n.IsDraft,
		Tags:      tags,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// GET /api/notes?page=&limit=
func (h *NoteHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	page, err := h.notes.List(c.Request.Context(), userID, pageRequest(c))
	if err != nil {
		respondError(c, h.logger, "list notes", err)
		return
	}

	resp := listNotesResponse{
		Notes:      make([]noteResponse, 0, len(page.Notes)),
		Pagination: toPaginationResponse(page.Pagination),
	}
	for _, n := range page.Notes {
		resp.Notes = append(resp.Notes, toNoteResponse(n))
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/notes
func (h *NoteHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	n, err := h.notes.Create(c.Request.Context(), usecase.CreateNoteInput{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		IsDraft: req.IsDraft,
		Tags:    req.Tags,
	})
	if err != nil {
		respondError(c, h.logger, "create note", err)
		return
	}
	c.JSON(http.StatusCreated, toNoteResponse(n))
}

// GET /api/notes/:id
func (h *NoteHandler) GetByID(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	n, err := h.notes.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, h.logger, "get note", err)
		return
	}
	c.JSON(http.StatusOK, toNoteResponse(n))
}

// PUT /api/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	n, err := h.notes.Update(c.Request.Context(), c.Param("id"), userID, domain.NoteUpdate{
		Title:   req.Title,
		Content: req.Content,
		IsDraft: req.IsDraft,
		Tags:    req.Tags,
	})
	if err != nil {
		respondError(c, h.logger, "update note", err)
		return
	}
	c.JSON(http.StatusOK, toNoteResponse(n))
}

// DELETE /api/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.notes.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, h.logger, "delete note", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}

// POST /api/notes/:id/save
func (h *NoteHandler) SaveDraft(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	n, err := h.notes.SaveDraft(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, h.logger, "save draft", err)
		return
	}
	c.JSON(http.StatusOK, toNoteResponse(n))
}
