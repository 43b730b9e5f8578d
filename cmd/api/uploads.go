package main

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/metrics"
	"github.com/vidtube/backend/pkg/models"
)

var errFileTooLarge = errors.New("file exceeds size limit")

// storeUpload spools a multipart file to the temp dir, pushes it to media
// storage under the given prefix and removes the temp file either way.
func (api *API) storeUpload(c *gin.Context, file *multipart.FileHeader, prefix string, maxSize int64) (models.MediaRef, error) {
	if maxSize > 0 && file.Size > maxSize {
		return models.MediaRef{}, errFileTooLarge
	}

	tempPath := filepath.Join(api.uploads.TempDir, uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		return models.MediaRef{}, fmt.Errorf("failed to save upload: %w", err)
	}
	defer os.Remove(tempPath)

	ref, err := api.media.Store(c.Request.Context(), tempPath, prefix)
	if err != nil {
		return models.MediaRef{}, err
	}

	metrics.RecordMediaUpload(prefix, file.Size)
	return ref, nil
}

// removeMedia is best-effort cleanup after a failed write; errors only log.
func (api *API) removeMedia(c *gin.Context, key string) {
	if key == "" {
		return
	}
	if err := api.media.Remove(c.Request.Context(), key); err != nil {
		api.log.WithField("key", key).ErrorWithErr("failed to remove stored media", err)
	}
}
