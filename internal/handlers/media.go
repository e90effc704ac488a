package handlers

import (
	"errors"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"cobra/site/internal/service"
	"cobra/site/internal/storage"
)

type uploadResponse struct {
	URL  string `json:"url"`
	MIME string `json:"mime"`
	Size int64  `json:"size"`
}

func (h HandlerSet) AdminUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_required"})
		return
	}
	defer file.Close()

	result, err := h.uploadService.Upload(c.Request.Context(), service.UploadInput{
		File:         file,
		DeclaredType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		status, code := uploadError(err)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Str("filename", header.Filename).Msg("upload failed")
		}
		c.JSON(status, gin.H{"error": code})
		return
	}

	c.JSON(http.StatusCreated, uploadResponse{
		URL:  result.URL,
		MIME: result.MIME,
		Size: result.Size,
	})
}

func uploadError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrEmptyFile):
		return http.StatusBadRequest, "file_required"
	case errors.Is(err, service.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType, "unsupported_type"
	case errors.Is(err, service.ErrTypeMismatch):
		return http.StatusBadRequest, "content_type_mismatch"
	case errors.Is(err, service.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "file_too_large"
	default:
		return http.StatusInternalServerError, "upload_failed"
	}
}

// ServeUpload streams a stored upload. Range and conditional requests are
// handled by http.ServeContent.
func (h HandlerSet) ServeUpload(c *gin.Context) {
	name := c.Param("filepath")

	obj, err := h.uploads.Get(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		h.log.Error().Err(err).Str("name", name).Msg("read upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload_unavailable"})
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != "" {
		c.Header("Content-Type", obj.ContentType)
	}
	if path.Ext(name) == ".svg" {
		c.Header("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'")
	}
	c.Header("Cache-Control", "public, max-age=3600")

	http.ServeContent(c.Writer, c.Request, path.Base(name), obj.ModTime, obj.Body)
}
