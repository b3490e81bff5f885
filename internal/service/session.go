package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rakesh-27-git/WellnessSpace/internal/domain"
	"github.com/Rakesh-27-git/WellnessSpace/internal/event"
	"github.com/Rakesh-27-git/WellnessSpace/internal/repository"
	apperrors "github.com/Rakesh-27-git/WellnessSpace/pkg/errors"
)

// SessionService implements the business logic for wellness sessions.
type SessionService struct {
	sessionRepo repository.SessionRepository
	producer    *event.Producer
	logger      *slog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		producer:    producer,
		logger:      logger,
	}
}

// UpsertInput holds the parameters for saving or publishing a session.
// SessionID is empty when creating a new record.
type UpsertInput struct {
	SessionID  string
	Title      string
	Tags       []string
	PayloadURL string
}

// ListPublished returns every published session, newest first.
func (s *SessionService) ListPublished(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.sessionRepo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published sessions: %w", err)
	}
	return sessions, nil
}

// ListMine returns all of the owner's sessions regardless of status, most
// recently updated first.
func (s *SessionService) ListMine(ctx context.Context, ownerID string) ([]domain.Session, error) {
	sessions, err := s.sessionRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list own sessions: %w", err)
	}
	return sessions, nil
}

// GetMine returns a single session owned by the caller. A session that exists
// but belongs to someone else is indistinguishable from a missing one.
func (s *SessionService) GetMine(ctx context.Context, id, ownerID string) (*domain.Session, error) {
	session, err := s.sessionRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get own session: %w", err)
	}
	return session, nil
}

// SaveDraft creates or updates a session as a draft. Saving a published
// session as a draft demotes it off the public listing.
func (s *SessionService) SaveDraft(ctx context.Context, ownerID string, input UpsertInput) (*domain.Session, error) {
	return s.upsert(ctx, ownerID, input, domain.StatusDraft)
}

// Publish creates or updates a session and makes it publicly visible.
func (s *SessionService) Publish(ctx context.Context, ownerID string, input UpsertInput) (*domain.Session, error) {
	session, err := s.upsert(ctx, ownerID, input, domain.StatusPublished)
	if err != nil {
		return nil, err
	}

	// Publish domain event (non-blocking on failure).
	if err := s.producer.PublishSessionPublished(ctx, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish session.published event",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}

	return session, nil
}

func (s *SessionService) upsert(ctx context.Context, ownerID string, input UpsertInput, status string) (*domain.Session, error) {
	if err := validateUpsert(input); err != nil {
		return nil, err
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()

	if input.SessionID == "" {
		session := &domain.Session{
			ID:         uuid.New().String(),
			OwnerID:    ownerID,
			Title:      input.Title,
			Tags:       tags,
			PayloadURL: input.PayloadURL,
			Status:     status,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.sessionRepo.Insert(ctx, session); err != nil {
			return nil, fmt.Errorf("insert session: %w", err)
		}

		s.logger.InfoContext(ctx, "session created",
			slog.String("session_id", session.ID),
			slog.String("owner_id", ownerID),
			slog.String("status", status),
		)
		return session, nil
	}

	session := &domain.Session{
		ID:         input.SessionID,
		OwnerID:    ownerID,
		Title:      input.Title,
		Tags:       tags,
		PayloadURL: input.PayloadURL,
		Status:     status,
	}

	updated, err := s.sessionRepo.UpdateIfOwner(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	if !updated {
		return nil, apperrors.NotFound("session", input.SessionID)
	}

	// Re-read for the full record with authoritative timestamps.
	stored, err := s.sessionRepo.GetOwned(ctx, session.ID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("reload session: %w", err)
	}

	s.logger.InfoContext(ctx, "session updated",
		slog.String("session_id", stored.ID),
		slog.String("owner_id", ownerID),
		slog.String("status", status),
	)

	return stored, nil
}

func validateUpsert(input UpsertInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return apperrors.InvalidInput("title is required")
	}
	if strings.TrimSpace(input.PayloadURL) == "" {
		return apperrors.InvalidInput("payload URL is required")
	}
	if u, err := url.Parse(input.PayloadURL); err != nil || u.Scheme == "" || u.Host == "" {
		return apperrors.InvalidInput("payload URL must be an absolute URL")
	}
	for _, tag := range input.Tags {
		if strings.TrimSpace(tag) == "" {
			return apperrors.InvalidInput("tags must not be blank")
		}
	}
	return nil
}
