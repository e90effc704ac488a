package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cobra/site/internal/service"
	"cobra/site/internal/web"
)

const (
	adminPath        = "/admin"
	loginPath        = "/login"
	loginInvalidPath = "/login?error=invalid"
)

func (h HandlerSet) LoginPage(c *gin.Context) {
	if h.authenticated(c) {
		c.Redirect(http.StatusFound, adminPath)
		return
	}

	c.HTML(http.StatusOK, web.LoginTemplate, gin.H{
		"Invalid": c.Query("error") == "invalid",
	})
}

func (h HandlerSet) LoginSubmit(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	sess, err := h.authService.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.Redirect(http.StatusSeeOther, loginInvalidPath)
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session_unavailable"})
		return
	}

	// Drop whatever session the browser arrived with.
	if previous, err := h.cookies.SessionID(c); err == nil {
		if err := h.authService.Logout(c.Request.Context(), previous); err != nil {
			h.log.Warn().Err(err).Msg("discard previous session failed")
		}
	}

	if err := h.cookies.Issue(c, sess); err != nil {
		h.log.Error().Err(err).Msg("issue session cookie failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session_unavailable"})
		return
	}

	c.Redirect(http.StatusSeeOther, adminPath)
}

// Logout always ends at the login page. The store delete finishes before the
// redirect is written.
func (h HandlerSet) Logout(c *gin.Context) {
	sid, err := h.cookies.SessionID(c)
	if err == nil {
		if err := h.authService.Logout(c.Request.Context(), sid); err != nil {
			h.log.Error().Err(err).Msg("logout failed")
		}
	}

	h.cookies.Clear(c)
	c.Redirect(http.StatusSeeOther, loginPath)
}

func (h HandlerSet) authenticated(c *gin.Context) bool {
	sid, err := h.cookies.SessionID(c)
	if err != nil {
		return false
	}
	sess, err := h.sessions.Get(c.Request.Context(), sid)
	if err != nil {
		return false
	}
	return sess.Payload.Authenticated
}
