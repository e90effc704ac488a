package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"cobra/site/internal/models"
	"cobra/site/internal/security"
	"cobra/site/internal/session"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	creds    security.Credentials
	sessions session.Store
	log      zerolog.Logger
}

func NewAuthService(creds security.Credentials, sessions session.Store, log zerolog.Logger) *AuthService {
	return &AuthService{
		creds:    creds,
		sessions: sessions,
		log:      log,
	}
}

// Login checks the admin account and opens an authenticated session.
func (s *AuthService) Login(ctx context.Context, username string, password string) (models.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Session{}, ErrInvalidCredentials
	}

	if !s.creds.Verify(username, password) {
		s.log.Warn().Str("username", username).Msg("login rejected")
		return models.Session{}, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, models.SessionPayload{
		Authenticated: true,
		User:          username,
	})
	if err != nil {
		return models.Session{}, fmt.Errorf("create session: %w", err)
	}

	s.log.Info().Str("username", username).Time("expires_at", sess.ExpiresAt).Msg("admin logged in")
	return sess, nil
}

// Logout destroys the session if there is one. An empty id is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
