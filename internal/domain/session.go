package domain

import (
	"time"
)

// Session lifecycle statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Session represents a wellness session record owned by a user.
type Session struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Title      string    `json:"title"`
	Tags       []string  `json:"tags"`
	PayloadURL string    `json:"payload_url"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ValidStatuses returns the set of valid session statuses.
func ValidStatuses() []string {
	return []string{StatusDraft, StatusPublished}
}

// IsValidStatus reports whether s is a recognized session status.
func IsValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished:
		return true
	}
	return false
}

// IsOwnedBy reports whether the session belongs to the given user.
func (s *Session) IsOwnedBy(userID string) bool {
	return s.OwnerID == userID
}

// IsPublished reports whether the session is visible on the public listing.
func (s *Session) IsPublished() bool {
	return s.Status == StatusPublished
}
