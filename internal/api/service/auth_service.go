package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/homeledger/homeledger/internal/config"
	"github.com/homeledger/homeledger/internal/domain/user"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords
// so login failures are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrInvalidToken indicates an expired, malformed or badly signed token
var ErrInvalidToken = errors.New("invalid token")

// AuthServiceImpl implements the AuthService interface using bcrypt for
// password storage and HMAC-signed JWTs for session tokens.
type AuthServiceImpl struct {
	users      user.Repository
	logger     *slog.Logger
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(logger *slog.Logger, users user.Repository, cfg config.AuthConfig) AuthService {
	return &AuthServiceImpl{
		users:      users,
		logger:     logger,
		secret:     []byte(cfg.JWTSecret),
		tokenTTL:   cfg.TokenTTL,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new user and returns a signed token for it
func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) (string, error) {
	if password == "" {
		return "", user.ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := user.NewUser(username, string(hash))
	if err != nil {
		return "", err
	}

	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}

	s.logger.Info("User registered", "user_id", u.ID, "username", u.Username)

	return s.issueToken(u)
}

// Login verifies the credentials and returns a signed token
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		// Compare against a throwaway hash so the timing of unknown
		// usernames matches that of wrong passwords
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$000000000000000000000uGyGv1PV07qKO38O5cPNQyVRiUHYfJW2"), []byte(password))
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(u)
}

// Verify parses and validates a token, returning the owner ID it carries
func (s *AuthServiceImpl) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

func (s *AuthServiceImpl) issueToken(u *user.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
