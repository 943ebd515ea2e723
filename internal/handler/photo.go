package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/debateclub/debate-club-api/internal/middleware"
	"github.com/debateclub/debate-club-api/internal/model"
	"github.com/debateclub/debate-club-api/internal/repository"
	"github.com/debateclub/debate-club-api/internal/storage"
)

// maxPhotoBytes caps uploads at 10 MiB.
const maxPhotoBytes = 10 << 20

// PhotoHandler serves the photo gallery: admin upload/delete, public
// list and binary fetch.
type PhotoHandler struct {
	Photos *repository.PhotoRepo
	Files  *storage.FileStore
}

func NewPhotoHandler(p *repository.PhotoRepo, fs *storage.FileStore) *PhotoHandler {
	return &PhotoHandler{Photos: p, Files: fs}
}

// Upload handles POST /api/photos (admin, multipart). The stored name is
// a fresh uuid plus the original extension, so client names never touch
// the filesystem.
func (h *PhotoHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	if fh.Size > maxPhotoBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file too large"})
	}
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		title = fh.Filename
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "only image uploads are accepted"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read upload failed"})
	}
	defer src.Close()

	id := uuid.New().String()
	stored := id + strings.ToLower(filepath.Ext(fh.Filename))
	size, err := h.Files.Save(stored, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store file failed"})
	}

	admin, _ := c.Get(middleware.ContextAdmin).(string)
	p := &model.Photo{
		ID:          id,
		Title:       title,
		Filename:    stored,
		ContentType: contentType,
		SizeBytes:   size,
		UploadedBy:  admin,
		CreatedAt:   time.Now().UTC(),
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Photos.Create(ctx, p); err != nil {
		_ = h.Files.Remove(stored) // keep store and table in step
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create photo failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /api/photos.
func (h *PhotoHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Photos.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, items)
}

// File handles GET /api/photos/:id/file and streams the binary.
func (h *PhotoHandler) File(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Photos.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPhotoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "photo not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	f, err := h.Files.Open(p.Filename)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "photo not found"})
	}
	defer f.Close()
	return c.Stream(http.StatusOK, p.ContentType, f)
}

// Delete handles DELETE /api/photos/:id (admin).
func (h *PhotoHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Photos.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPhotoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "photo not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Photos.Delete(ctx, p.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	_ = h.Files.Remove(p.Filename)
	return c.JSON(http.StatusOK, echo.Map{"message": "photo deleted successfully"})
}
