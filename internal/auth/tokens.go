package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/database"
	"github.com/vidtube/backend/pkg/models"
)

var (
	// ErrInvalidToken covers missing, malformed, expired or otherwise
	// unverifiable tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTokenMismatch indicates a refresh token that verifies but is not
	// the currently stored one - reuse of a superseded token.
	ErrTokenMismatch = errors.New("refresh token superseded")
	// ErrUserNotFound indicates the token's subject no longer exists.
	ErrUserNotFound = errors.New("user not found")
)

// UserStore is the slice of the repository the token service needs.
type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	SetRefreshToken(ctx context.Context, userID, token string) error
	ClearRefreshToken(ctx context.Context, userID string) error
}

// Claims represents the signed token claims
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies access/refresh token pairs. A user has
// at most one active refresh token: issuing a new pair invalidates the
// previous lineage.
type TokenService struct {
	users         UserStore
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a token service backed by the given user store.
func NewTokenService(users UserStore, accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		users:         users,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *TokenService) sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID,
			// A unique jti keeps a rotated token distinct from its
			// predecessor even within the same second.
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseToken(raw string, secret []byte) (*Claims, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IssuePair mints an access/refresh pair for a user and persists the
// refresh token, superseding any previous one.
func (s *TokenService) IssuePair(ctx context.Context, userID string) (models.TokenPair, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return models.TokenPair{}, ErrUserNotFound
		}
		return models.TokenPair{}, fmt.Errorf("failed to load user: %w", err)
	}

	accessToken, err := s.sign(userID, s.accessSecret, s.accessTTL)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := s.sign(userID, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if err := s.users.SetRefreshToken(ctx, userID, refreshToken); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return models.TokenPair{}, ErrUserNotFound
		}
		return models.TokenPair{}, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// VerifyAccess validates an access token and loads its user. Password and
// refresh-token fields never serialize (json:"-" on the model).
func (s *TokenService) VerifyAccess(ctx context.Context, raw string) (*models.User, error) {
	claims, err := parseToken(raw, s.accessSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// RotateRefresh exchanges a refresh token for a new pair. The incoming
// token must match the stored one; anything else ends the lineage check
// with ErrTokenMismatch.
func (s *TokenService) RotateRefresh(ctx context.Context, raw string) (models.TokenPair, *models.User, error) {
	claims, err := parseToken(raw, s.refreshSecret)
	if err != nil {
		return models.TokenPair{}, nil, err
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return models.TokenPair{}, nil, ErrInvalidToken
	}
	if err != nil {
		return models.TokenPair{}, nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.RefreshToken == "" || user.RefreshToken != raw {
		return models.TokenPair{}, nil, ErrTokenMismatch
	}

	pair, err := s.IssuePair(ctx, user.ID)
	if err != nil {
		return models.TokenPair{}, nil, err
	}
	return pair, user, nil
}

// Revoke clears the stored refresh token, ending the session lineage.
func (s *TokenService) Revoke(ctx context.Context, userID string) error {
	return s.users.ClearRefreshToken(ctx, userID)
}
