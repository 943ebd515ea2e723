package handler

import (
	"context"
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

// DebateHandler serves the debate CRUD surface plus voting and joining.
// Create/update/delete sit behind the admin middleware; everything else
// is public.
type DebateHandler struct {
	Debates   *repository.DebateRepo
	Votes     *repository.VoteRepo
	Sanitizer *sanitize.Sanitizer
}

func NewDebateHandler(d *repository.DebateRepo, v *repository.VoteRepo, s *sanitize.Sanitizer) *DebateHandler {
	return &DebateHandler{Debates: d, Votes: v, Sanitizer: s}
}

type debateReq struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Topic       string    `json:"topic"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
}

type voteReq struct {
	DebateID  string `json:"debate_id"`
	VoteType  string `json:"vote_type"` // "for" or "against"
	VoterName string `json:"voter_name"`
}

type joinReq struct {
	DebateID        string `json:"debate_id"`
	ParticipantName string `json:"participant_name"`
}

func (r *debateReq) validate() string {
	if strings.TrimSpace(r.Title) == "" {
		return "title is required"
	}
	if strings.TrimSpace(r.Topic) == "" {
		return "topic is required"
	}
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return "start_time and end_time are required"
	}
	if !r.EndTime.After(r.StartTime) {
		return "end_time must be after start_time"
	}
	switch r.Status {
	case "", model.DebateUpcoming, model.DebateActive, model.DebateCompleted:
		return ""
	}
	return "invalid status"
}

// Create handles POST /api/debates (admin).
func (h *DebateHandler) Create(c echo.Context) error {
	var req debateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	status := req.Status
	if status == "" {
		status = model.DebateUpcoming
	}

	d := &model.Debate{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(req.Title),
		Description:  h.Sanitizer.Clean(req.Description),
		Topic:        strings.TrimSpace(req.Topic),
		StartTime:    req.StartTime.UTC(),
		EndTime:      req.EndTime.UTC(),
		Status:       status,
		Participants: []string{},
		CreatedAt:    time.Now().UTC(),
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Debates.Create(ctx, d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create debate failed"})
	}
	return c.JSON(http.StatusCreated, d)
}

// List handles GET /api/debates.
func (h *DebateHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Debates.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /api/debates/:id.
func (h *DebateHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	d, err := h.Debates.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrDebateNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "debate not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, d)
}

// Update handles PUT /api/debates/:id (admin).
func (h *DebateHandler) Update(c echo.Context) error {
	var req debateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	d, err := h.Debates.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrDebateNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "debate not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	d.Title = strings.TrimSpace(req.Title)
	d.Description = h.Sanitizer.Clean(req.Description)
	d.Topic = strings.TrimSpace(req.Topic)
	d.StartTime = req.StartTime.UTC()
	d.EndTime = req.EndTime.UTC()
	if req.Status != "" {
		d.Status = req.Status
	}
	if err := h.Debates.Update(ctx, d); err != nil {
		if errors.Is(err, repository.ErrDebateNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "debate not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, d)
}

// Delete handles DELETE /api/debates/:id (admin).
func (h *DebateHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Debates.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrDebateNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "debate not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "debate deleted successfully"})
}

// Vote handles POST /api/debates/vote. One vote per voter name per
// debate; a duplicate answers 400.
func (h *DebateHandler) Vote(c echo.Context) error {
	var req voteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.VoterName = strings.TrimSpace(req.VoterName)
	if req.DebateID == "" || req.VoterName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "debate_id and voter_name are required"})
	}
	if req.VoteType != "for" && req.VoteType != "against" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vote_type must be \"for\" or \"against\""})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Debates.GetByID(ctx, req.DebateID); err != nil {
		if errors.Is(err, repository.ErrDebateNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "debate not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	v := &model.Vote{
		ID:        uuid.New().String(),
		DebateID:  req.DebateID,
		VoteType:  req.VoteType,
		VoterName: req.VoterName,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Votes.Record(ctx, v); err != nil {
		if errors.Is(err, repository.ErrDuplicateVote) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "you have already voted on this debate"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record vote failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "vote recorded successfully"})
}

// Join handles POST /api/debates/join. One entry per participant name
// per debate; a duplicate answers 400.
func (h *DebateHandler) Join(c echo.Context) error {
	var req joinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.ParticipantName = strings.TrimSpace(req.ParticipantName)
	if req.DebateID == "" || req.ParticipantName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "debate_id and participant_name are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Debates.GetByID(ctx, req.DebateID); err != nil {
		if errors.Is(err, repository.ErrDebateNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "debate not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Debates.AddParticipant(ctx, req.DebateID, req.ParticipantName); err != nil {
		if errors.Is(err, repository.ErrAlreadyJoined) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "already joined this debate"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "join failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "successfully joined the debate"})
}

// reqCtx bounds a handler's database work with a 5 second timeout.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
