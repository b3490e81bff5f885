package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Rakesh-27-git/WellnessSpace/internal/domain"
	"github.com/Rakesh-27-git/WellnessSpace/internal/repository"
)

const publishedListKey = "sessions:published"

// CachedSessionRepository decorates a SessionRepository with a Redis cache
// over the public published listing. Writes pass through and invalidate the
// cached listing; cache failures degrade to the underlying store.
type CachedSessionRepository struct {
	inner  repository.SessionRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedSessionRepository wraps inner with a published-listing cache.
func NewCachedSessionRepository(inner repository.SessionRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedSessionRepository {
	return &CachedSessionRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Insert creates a session and invalidates the published listing when the new
// record is immediately visible on it.
func (r *CachedSessionRepository) Insert(ctx context.Context, s *domain.Session) error {
	if err := r.inner.Insert(ctx, s); err != nil {
		return err
	}
	if s.Status == domain.StatusPublished {
		r.invalidate(ctx)
	}
	return nil
}

// GetOwned delegates to the underlying store; owner-scoped reads are not cached.
func (r *CachedSessionRepository) GetOwned(ctx context.Context, id, ownerID string) (*domain.Session, error) {
	return r.inner.GetOwned(ctx, id, ownerID)
}

// ListPublished serves the public listing from Redis when possible, falling
// back to the underlying store and repopulating the cache on a miss.
func (r *CachedSessionRepository) ListPublished(ctx context.Context) ([]domain.Session, error) {
	data, err := r.client.Get(ctx, publishedListKey).Bytes()
	if err == nil {
		var sessions []domain.Session
		if jsonErr := json.Unmarshal(data, &sessions); jsonErr == nil {
			return sessions, nil
		}
		// Corrupt cache entry: drop it and fall through to the store.
		r.invalidate(ctx)
	} else if err != redis.Nil {
		r.logger.WarnContext(ctx, "published listing cache read failed",
			slog.String("error", err.Error()),
		)
	}

	sessions, err := r.inner.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(sessions); err == nil {
		if err := r.client.Set(ctx, publishedListKey, data, r.ttl).Err(); err != nil {
			r.logger.WarnContext(ctx, "published listing cache write failed",
				slog.String("error", err.Error()),
			)
		}
	}

	return sessions, nil
}

// ListByOwner delegates to the underlying store; owner listings are not cached.
func (r *CachedSessionRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Session, error) {
	return r.inner.ListByOwner(ctx, ownerID)
}

// UpdateIfOwner applies the conditional update and invalidates the published
// listing. Both publishing and demoting a published session change the listing,
// so the cache is dropped on every successful update.
func (r *CachedSessionRepository) UpdateIfOwner(ctx context.Context, s *domain.Session) (bool, error) {
	updated, err := r.inner.UpdateIfOwner(ctx, s)
	if err != nil || !updated {
		return updated, err
	}
	r.invalidate(ctx)
	return true, nil
}

func (r *CachedSessionRepository) invalidate(ctx context.Context) {
	if err := r.client.Del(ctx, publishedListKey).Err(); err != nil {
		r.logger.WarnContext(ctx, "published listing cache invalidation failed",
			slog.String("error", fmt.Sprintf("%v", err)),
		)
	}
}
