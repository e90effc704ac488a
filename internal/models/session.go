package models

import "time"

type SessionPayload struct {
	Authenticated bool   `json:"authenticated"`
	User          string `json:"user,omitempty"`
}

type Session struct {
	ID        string         `json:"id"`
	Payload   SessionPayload `json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
