package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/debateclub/debate-club-api/internal/model"
	"github.com/debateclub/debate-club-api/internal/repository"
	"github.com/debateclub/debate-club-api/internal/sanitize"
)

// CommentHandler serves the public comment surface.
type CommentHandler struct {
	Comments  *repository.CommentRepo
	Debates   *repository.DebateRepo
	Sanitizer *sanitize.Sanitizer
}

func NewCommentHandler(cm *repository.CommentRepo, d *repository.DebateRepo, s *sanitize.Sanitizer) *CommentHandler {
	return &CommentHandler{Comments: cm, Debates: d, Sanitizer: s}
}

type commentReq struct {
	DebateID   string `json:"debate_id"`
	Content    string `json:"content"`
	AuthorName string `json:"author_name"`
}

// Create handles POST /api/comments. Content is sanitized before it is
// stored; a comment emptied by sanitizing is rejected.
func (h *CommentHandler) Create(c echo.Context) error {
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.AuthorName = strings.TrimSpace(req.AuthorName)
	content := h.Sanitizer.Clean(req.Content)
	if req.DebateID == "" || req.AuthorName == "" || content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "debate_id, content and author_name are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Debates.GetByID(ctx, req.DebateID); err != nil {
		if errors.Is(err, repository.ErrDebateNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "debate not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	cm := &model.Comment{
		ID:         uuid.New().String(),
		DebateID:   req.DebateID,
		Content:    content,
		AuthorName: req.AuthorName,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.Comments.Create(ctx, cm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create comment failed"})
	}
	return c.JSON(http.StatusCreated, cm)
}

// List handles GET /api/comments/:debate_id, newest first.
func (h *CommentHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Comments.ListByDebate(ctx, c.Param("debate_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, items)
}
