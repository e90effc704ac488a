package middleware

import (
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets the usual browser hardening headers. HSTS is only
// sent when the session cookie is marked secure, i.e. the site is served
// over TLS.
func SecurityHeaders(tls bool) gin.HandlerFunc {
	cfg := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}

	if tls {
		cfg.STSSeconds = 31536000
		cfg.STSIncludeSubdomains = true
	}

	return secure.New(cfg)
}
