package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cobra/site/internal/content"
	"cobra/site/internal/middleware"
	"cobra/site/internal/models"
	"cobra/site/internal/web"
)

const maxDocumentSize = 4 << 20

type sessionResponse struct {
	User          string    `json:"user"`
	Authenticated bool      `json:"authenticated"`
	CreatedAt     time.Time `json:"createdAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

func (h HandlerSet) AdminDashboard(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)

	c.HTML(http.StatusOK, web.AdminTemplate, gin.H{
		"User":        sess.Payload.User,
		"ExpiresAt":   sess.ExpiresAt,
		"Collections": models.Collections,
	})
}

func (h HandlerSet) AdminSession(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, sessionResponse{
		User:          sess.Payload.User,
		Authenticated: sess.Payload.Authenticated,
		CreatedAt:     sess.CreatedAt,
		ExpiresAt:     sess.ExpiresAt,
	})
}

func (h HandlerSet) AdminGetData(c *gin.Context) {
	collection, ok := content.Lookup(c.Param("collection"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_collection"})
		return
	}

	h.CollectionData(collection)(c)
}

// AdminPutData replaces a collection document. The body is either raw JSON or,
// for HTML forms, the "document" form field.
func (h HandlerSet) AdminPutData(c *gin.Context) {
	collection, ok := content.Lookup(c.Param("collection"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_collection"})
		return
	}

	fromForm := isForm(c)
	var doc []byte
	if fromForm {
		doc = []byte(c.PostForm("document"))
	} else {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDocumentSize+1))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable_body"})
			return
		}
		if len(body) > maxDocumentSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "document_too_large"})
			return
		}
		doc = body
	}

	if err := h.content.Write(c.Request.Context(), collection, doc); err != nil {
		if errors.Is(err, content.ErrMalformed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed_json"})
			return
		}
		h.log.Error().Err(err).Str("collection", string(collection)).Msg("write collection failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "write_failed"})
		return
	}

	sess, _ := middleware.CurrentSession(c)
	h.log.Info().Str("collection", string(collection)).Str("user", sess.Payload.User).Int("bytes", len(doc)).Msg("collection updated")

	if fromForm {
		c.Redirect(http.StatusSeeOther, adminPath)
		return
	}
	c.Status(http.StatusNoContent)
}

func isForm(c *gin.Context) bool {
	ct := c.ContentType()
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data")
}
