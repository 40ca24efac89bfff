package model

import (
	"time"
)

// A Session represents a database record.
type Session struct {
	Base `msgpack:",inline" storm:"inline"`

	ExpireAt  time.Time `msgpack:"expire_at"`
	UserID    string    `msgpack:"user_id"    storm:"index"`
	UserAgent string    `msgpack:"user_agent"`
	// TokenID is the `jti` claim of the access token bound to the session.
	TokenID string `msgpack:"token_id" storm:"unique"`
}

// Expired returns true if the session is expired.
func (s *Session) Expired() bool {
	return s.ExpireAt.Before(time.Now())
}
