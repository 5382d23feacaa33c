package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/templatehub/backend/internal/storage"
	"github.com/templatehub/backend/pkg/apperr"
	"github.com/templatehub/backend/pkg/logger"
)

// MediaHandler exposes file upload backed by object storage.
type MediaHandler struct {
	store *storage.MinIOStorage
}

func NewMediaHandler(store *storage.MinIOStorage) *MediaHandler {
	return &MediaHandler{store: store}
}

// Register mounts the media routes on the given group.
func (h *MediaHandler) Register(rg *gin.RouterGroup) {
	m := rg.Group("/media")
	m.POST("", h.Upload)
}

// Upload stores a multipart file and returns its object key plus a presigned
// download URL.
func (h *MediaHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.Error(apperr.Validation("multipart field 'file' is required", nil))
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.Error(apperr.Internal("failed to read upload", err))
		return
	}
	defer f.Close()

	key := storage.ObjectKey(fh.Filename)
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := h.store.UploadFile(c.Request.Context(), key, f, fh.Size, contentType); err != nil {
		logger.Errorf("media upload failed: %v", err)
		c.Error(apperr.Internal("upload failed", err))
		return
	}
	url, err := h.store.GetPresignedURL(c.Request.Context(), key, 24*time.Hour)
	if err != nil {
		logger.Warnf("presign failed for %s: %v", key, err)
		c.JSON(http.StatusCreated, gin.H{"key": key})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key, "url": url})
}
