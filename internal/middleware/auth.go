package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"cobra/site/internal/models"
	"cobra/site/internal/session"
)

const (
	currentSessionKey = "current_session"
	LoginPath         = "/login"
)

// RequireSession lets a request through only when its cookie resolves to a
// live, authenticated session. Everything else is sent to the login page.
func RequireSession(store session.Store, cookies *session.Cookies, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := cookies.SessionID(c)
		if err != nil {
			if !errors.Is(err, session.ErrNoCookie) {
				cookies.Clear(c)
			}
			redirectToLogin(c)
			return
		}

		sess, err := store.Get(c.Request.Context(), sid)
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) {
				log.Error().Err(err).Msg("session lookup failed")
			}
			cookies.Clear(c)
			redirectToLogin(c)
			return
		}

		if !sess.Payload.Authenticated {
			redirectToLogin(c)
			return
		}

		c.Set(currentSessionKey, sess)
		c.Next()
	}
}

func CurrentSession(c *gin.Context) (models.Session, bool) {
	val, exists := c.Get(currentSessionKey)
	if !exists {
		return models.Session{}, false
	}
	sess, ok := val.(models.Session)
	return sess, ok
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginPath)
	c.Abort()
}
