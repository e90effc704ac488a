package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cobra/site/internal/config"
	"cobra/site/internal/models"
	"cobra/site/internal/security"
)

var ErrNoCookie = errors.New("session cookie missing")

// Cookies issues and reads the session cookie. The cookie value is a signed
// token carrying only the session id.
type Cookies struct {
	name   string
	secret string
	domain string
	secure bool
	maxAge time.Duration
}

func NewCookies(cfg config.SessionConfig) *Cookies {
	maxAge := cfg.TTL
	if maxAge <= 0 {
		maxAge = DefaultTTL
	}
	return &Cookies{
		name:   cfg.Cookie.Name,
		secret: cfg.Secret,
		domain: cfg.Cookie.Domain,
		secure: cfg.Cookie.Secure,
		maxAge: maxAge,
	}
}

func (k *Cookies) Name() string {
	return k.name
}

func (k *Cookies) Issue(c *gin.Context, sess models.Session) error {
	token, err := security.SignSessionToken(k.secret, sess.ID, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(k.name, token, int(k.maxAge/time.Second), "/", k.domain, k.secure, true)
	return nil
}

func (k *Cookies) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(k.name, "", -1, "/", k.domain, k.secure, true)
}

// SessionID extracts and verifies the session id from the request cookie.
func (k *Cookies) SessionID(c *gin.Context) (string, error) {
	value, err := c.Cookie(k.name)
	if err != nil || value == "" {
		return "", ErrNoCookie
	}
	return security.ParseSessionToken(value, k.secret)
}
