package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rakesh-27-git/WellnessSpace/internal/auth"
	"github.com/Rakesh-27-git/WellnessSpace/internal/domain"
	"github.com/Rakesh-27-git/WellnessSpace/internal/event"
	"github.com/Rakesh-27-git/WellnessSpace/internal/repository"
	apperrors "github.com/Rakesh-27-git/WellnessSpace/pkg/errors"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// minPasswordLength is the minimum password length required.
const minPasswordLength = 8

// AuthService implements the business logic for account and token operations.
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *auth.JWTManager
	producer   *event.Producer
	logger     *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *auth.JWTManager,
	producer *event.Producer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		producer:   producer,
		logger:     logger,
	}
}

// RegisterInput holds the parameters for registering a new account.
type RegisterInput struct {
	Email    string
	Password string
}

// LoginInput holds the parameters for login.
type LoginInput struct {
	Email    string
	Password string
}

// Register creates a new account, hashes the password, and returns tokens.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, *domain.TokenPair, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, nil, apperrors.InvalidInput("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, nil, apperrors.InvalidInput("email is not a valid address")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	tokens, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	// Publish registration event (non-blocking on failure).
	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, tokens, nil
}

// Login authenticates with email and password, returning tokens. Unknown
// email and wrong password produce the same error so callers cannot probe
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, *domain.TokenPair, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, nil, apperrors.InvalidInput("email is required")
	}
	if input.Password == "" {
		return nil, nil, apperrors.InvalidInput("password is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, apperrors.Unauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, apperrors.Unauthorized("invalid email or password")
	}

	tokens, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, tokens, nil
}

// Logout invalidates the user's refresh token. Logging out twice is fine.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshTokenHash(ctx, userID); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged out",
		slog.String("user_id", userID),
	)

	return nil
}

// RefreshToken validates a refresh token and rotates it, returning a new
// token pair. The stored hash is swapped atomically: if the presented token
// no longer matches what is stored, every outstanding refresh token for the
// user is revoked, since a mismatch means the token was already spent.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, apperrors.Unauthorized("refresh token is required")
	}

	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired refresh token")
	}

	presentedHash := hashToken(refreshToken)
	if user.RefreshTokenHash == "" || user.RefreshTokenHash != presentedHash {
		// Reuse of a rotated token or a token issued before a logout.
		s.logger.WarnContext(ctx, "refresh token reuse detected",
			slog.String("user_id", user.ID),
		)
		if clearErr := s.userRepo.ClearRefreshTokenHash(ctx, user.ID); clearErr != nil {
			s.logger.ErrorContext(ctx, "failed to revoke refresh token after reuse",
				slog.String("user_id", user.ID),
				slog.String("error", clearErr.Error()),
			)
		}
		return nil, apperrors.Unauthorized("invalid or expired refresh token")
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	rotated, err := s.userRepo.RotateRefreshTokenHash(ctx, user.ID, presentedHash, hashToken(newRefreshToken))
	if err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	if !rotated {
		// A concurrent request spent this token between our read and the swap.
		s.logger.WarnContext(ctx, "concurrent refresh token rotation detected",
			slog.String("user_id", user.ID),
		)
		return nil, apperrors.Unauthorized("invalid or expired refresh token")
	}

	s.logger.InfoContext(ctx, "tokens refreshed",
		slog.String("user_id", user.ID),
	)

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// GetProfile retrieves a user by their ID.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	return user, nil
}

// ValidateAccessToken checks an access token and returns its claims.
func (s *AuthService) ValidateAccessToken(token string) (*auth.Claims, error) {
	return s.jwtManager.ValidateAccessToken(token)
}

// issueTokenPair generates a fresh access and refresh token and stores the
// refresh token hash as the single active one for the user.
func (s *AuthService) issueTokenPair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.userRepo.SetRefreshTokenHash(ctx, user.ID, hashToken(refreshToken)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// hashToken returns the SHA256 hex digest of the given token string.
func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// normalizeEmail lowercases and trims an email address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePassword checks that the password meets the minimum length.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	return nil
}
