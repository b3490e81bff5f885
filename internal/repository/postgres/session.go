package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Rakesh-27-git/WellnessSpace/internal/domain"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/database"
	apperrors "github.com/Rakesh-27-git/WellnessSpace/pkg/errors"
)

// SessionRepository implements repository.SessionRepository using PostgreSQL.
type SessionRepository struct {
	db database.DBTX
}

// NewSessionRepository creates a new PostgreSQL-backed session repository.
func NewSessionRepository(db database.DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

// Insert creates a new session record.
func (r *SessionRepository) Insert(ctx context.Context, s *domain.Session) error {
	tagsJSON, err := json.Marshal(s.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	query := `
		INSERT INTO sessions (id, owner_id, title, tags, payload_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.Exec(ctx, query,
		s.ID,
		s.OwnerID,
		s.Title,
		tagsJSON,
		s.PayloadURL,
		s.Status,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	return nil
}

// GetOwned retrieves a session by ID, scoped to the given owner. A session
// owned by someone else comes back as not found.
func (r *SessionRepository) GetOwned(ctx context.Context, id, ownerID string) (*domain.Session, error) {
	query := `
		SELECT id, owner_id, title, tags, payload_url, status, created_at, updated_at
		FROM sessions
		WHERE id = $1 AND owner_id = $2`

	return r.scanSession(r.db.QueryRow(ctx, query, id, ownerID))
}

// ListPublished returns all published sessions, newest first by creation time.
func (r *SessionRepository) ListPublished(ctx context.Context) ([]domain.Session, error) {
	query := `
		SELECT id, owner_id, title, tags, payload_url, status, created_at, updated_at
		FROM sessions
		WHERE status = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, domain.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("list published sessions: %w", err)
	}
	defer rows.Close()

	return r.collectSessions(rows)
}

// ListByOwner returns all sessions for the given owner, most recently updated first.
func (r *SessionRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Session, error) {
	query := `
		SELECT id, owner_id, title, tags, payload_url, status, created_at, updated_at
		FROM sessions
		WHERE owner_id = $1
		ORDER BY updated_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list sessions by owner: %w", err)
	}
	defer rows.Close()

	return r.collectSessions(rows)
}

// UpdateIfOwner applies the session's mutable fields in a single conditional
// update. The owner check lives in the WHERE clause, so there is no window
// between read and write for another caller to slip through.
func (r *SessionRepository) UpdateIfOwner(ctx context.Context, s *domain.Session) (bool, error) {
	tagsJSON, err := json.Marshal(s.Tags)
	if err != nil {
		return false, fmt.Errorf("marshal tags: %w", err)
	}

	s.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE sessions
		SET title = $1, tags = $2, payload_url = $3, status = $4, updated_at = $5
		WHERE id = $6 AND owner_id = $7`

	ct, err := r.db.Exec(ctx, query,
		s.Title,
		tagsJSON,
		s.PayloadURL,
		s.Status,
		s.UpdatedAt,
		s.ID,
		s.OwnerID,
	)
	if err != nil {
		return false, fmt.Errorf("update session: %w", err)
	}

	return ct.RowsAffected() == 1, nil
}

func (r *SessionRepository) scanSession(row pgx.Row) (*domain.Session, error) {
	var (
		s        domain.Session
		tagsJSON []byte
	)

	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.Title,
		&tagsJSON,
		&s.PayloadURL,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	if tagsJSON != nil {
		if err := json.Unmarshal(tagsJSON, &s.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}

	return &s, nil
}

func (r *SessionRepository) collectSessions(rows pgx.Rows) ([]domain.Session, error) {
	var sessions []domain.Session
	for rows.Next() {
		var (
			s        domain.Session
			tagsJSON []byte
		)
		if err := rows.Scan(
			&s.ID,
			&s.OwnerID,
			&s.Title,
			&tagsJSON,
			&s.PayloadURL,
			&s.Status,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}

		if tagsJSON != nil {
			if err := json.Unmarshal(tagsJSON, &s.Tags); err != nil {
				return nil, fmt.Errorf("unmarshal tags: %w", err)
			}
		}
		if s.Tags == nil {
			s.Tags = []string{}
		}

		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session rows: %w", err)
	}

	if sessions == nil {
		sessions = []domain.Session{}
	}

	return sessions, nil
}
