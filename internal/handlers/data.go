package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cobra/site/internal/models"
	"cobra/site/internal/web"
)

const jsonContentType = "application/json; charset=utf-8"

// CollectionData serves one data file as-is. Any failure to produce the
// document, including a malformed file, is a 500.
func (h HandlerSet) CollectionData(collection models.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := h.content.Read(c.Request.Context(), collection)
		if err != nil {
			h.log.Error().Err(err).Str("collection", string(collection)).Msg("read collection failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": unavailable(collection)})
			return
		}

		c.Data(http.StatusOK, jsonContentType, doc)
	}
}

func (h HandlerSet) Landing(c *gin.Context) {
	c.HTML(http.StatusOK, web.IndexTemplate, gin.H{
		"Collections": models.Collections,
	})
}

func unavailable(collection models.Collection) string {
	return string(collection) + "_unavailable"
}
