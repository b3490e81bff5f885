package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Rakesh-27-git/WellnessSpace/internal/domain"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/database"
	apperrors "github.com/Rakesh-27-git/WellnessSpace/pkg/errors"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user into the database.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, refresh_token_hash, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`

	_, err := r.db.Exec(ctx, query,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.RefreshTokenHash,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("user", "email", u.Email)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, COALESCE(refresh_token_hash, ''), created_at, updated_at
		FROM users
		WHERE id = $1`

	return r.scanUser(ctx, query, id)
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, COALESCE(refresh_token_hash, ''), created_at, updated_at
		FROM users
		WHERE email = $1`

	return r.scanUser(ctx, query, email)
}

// SetRefreshTokenHash stores the hash of the user's active refresh token,
// replacing any previous one.
func (r *UserRepository) SetRefreshTokenHash(ctx context.Context, userID, hash string) error {
	query := `UPDATE users SET refresh_token_hash = $1, updated_at = $2 WHERE id = $3`

	ct, err := r.db.Exec(ctx, query, hash, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("set refresh token hash: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("user", userID)
	}

	return nil
}

// RotateRefreshTokenHash atomically swaps the stored refresh token hash. The
// WHERE clause carries the expected current hash so concurrent rotations or a
// replayed token cannot both succeed.
func (r *UserRepository) RotateRefreshTokenHash(ctx context.Context, userID, oldHash, newHash string) (bool, error) {
	query := `
		UPDATE users
		SET refresh_token_hash = $1, updated_at = $2
		WHERE id = $3 AND refresh_token_hash = $4`

	ct, err := r.db.Exec(ctx, query, newHash, time.Now().UTC(), userID, oldHash)
	if err != nil {
		return false, fmt.Errorf("rotate refresh token hash: %w", err)
	}

	return ct.RowsAffected() == 1, nil
}

// ClearRefreshTokenHash removes the stored refresh token hash, invalidating
// the user's refresh token.
func (r *UserRepository) ClearRefreshTokenHash(ctx context.Context, userID string) error {
	query := `UPDATE users SET refresh_token_hash = NULL, updated_at = $1 WHERE id = $2`

	ct, err := r.db.Exec(ctx, query, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("clear refresh token hash: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("user", userID)
	}

	return nil
}

// scanUser is a helper that executes a query expected to return a single user row.
func (r *UserRepository) scanUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.RefreshTokenHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return &u, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
