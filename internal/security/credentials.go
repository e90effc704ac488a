package security

import (
	"crypto/subtle"
	"fmt"
)

// Credentials holds the single admin account. A zero value rejects every
// login.
type Credentials struct {
	username string
	hash     []byte
}

// NewCredentials prefers an already encoded argon2id hash; a plain password
// is hashed once here so it never has to be kept around.
func NewCredentials(username string, password string, passwordHash string) (Credentials, error) {
	if username == "" {
		return Credentials{}, nil
	}

	switch {
	case passwordHash != "":
		if _, err := VerifyPassword("", []byte(passwordHash)); err != nil {
			return Credentials{}, fmt.Errorf("admin password hash: %w", err)
		}
		return Credentials{username: username, hash: []byte(passwordHash)}, nil
	case password != "":
		hash, err := HashPassword(password)
		if err != nil {
			return Credentials{}, fmt.Errorf("hash admin password: %w", err)
		}
		return Credentials{username: username, hash: hash}, nil
	default:
		return Credentials{}, nil
	}
}

func (c Credentials) Enabled() bool {
	return c.username != "" && len(c.hash) > 0
}

func (c Credentials) Username() string {
	return c.username
}

func (c Credentials) Verify(username string, password string) bool {
	if !c.Enabled() {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK, err := VerifyPassword(password, c.hash)
	return userOK && err == nil && passOK
}
