package repository

import (
	"context"

	"github.com/Rakesh-27-git/WellnessSpace/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// SetRefreshTokenHash stores the hash of the user's single active
	// refresh token, replacing any previous one.
	SetRefreshTokenHash(ctx context.Context, userID, hash string) error

	// RotateRefreshTokenHash atomically replaces the stored refresh token
	// hash, but only if the current value matches oldHash. It returns false
	// when the stored hash has already changed, which signals token reuse.
	RotateRefreshTokenHash(ctx context.Context, userID, oldHash, newHash string) (bool, error)

	// ClearRefreshTokenHash removes the stored refresh token hash,
	// invalidating the user's refresh token.
	ClearRefreshTokenHash(ctx context.Context, userID string) error
}

// SessionRepository defines the interface for wellness session persistence.
type SessionRepository interface {
	// Insert creates a new session record.
	Insert(ctx context.Context, session *domain.Session) error

	// GetOwned retrieves a session by ID, scoped to the given owner.
	// A session owned by someone else is reported as not found.
	GetOwned(ctx context.Context, id, ownerID string) (*domain.Session, error)

	// ListPublished returns all published sessions, newest first by creation time.
	ListPublished(ctx context.Context) ([]domain.Session, error)

	// ListByOwner returns all sessions for the given owner, regardless of
	// status, most recently updated first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Session, error)

	// UpdateIfOwner applies the session's title, tags, payload URL, and
	// status in a single conditional update scoped to the owner. It returns
	// false when no row matched, meaning the session does not exist or
	// belongs to someone else.
	UpdateIfOwner(ctx context.Context, session *domain.Session) (bool, error)
}
