package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	// tokenPrefix is the prefix for all session tokens
	tokenPrefix = "cents_"
	// tokenRandomBytes is the number of random bytes for the token (32 bytes = 256 bits)
	tokenRandomBytes = 32
)

// AuthService handles registration, login and session validation
type AuthService struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	sessionTTL  time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, sessionRepo domain.SessionRepository, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
	}
}

// AuthResult carries the authenticated user and the session token.
// Token holds the plaintext session token; it is shown only once.
type AuthResult struct {
	User  *domain.User
	Token string
}

// Register creates a new user and logs them straight in
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(&domain.User{
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	result, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Msg("User registered")
	return result, nil
}

// Login verifies credentials and opens a session
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			// Same error as a bad password so the response never reveals
			// whether the email is registered.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Msg("User logged in")
	return result, nil
}

// Logout revokes the session behind the given token. Unknown tokens are a
// no-op: logging out twice is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(token))
	if err != nil {
		if err == domain.ErrSessionNotFound {
			return nil
		}
		return err
	}
	return s.sessionRepo.Delete(ctx, session.ID)
}

// ValidateSession resolves a bearer token to its user id
func (s *AuthService) ValidateSession(ctx context.Context, token string) (uuid.UUID, error) {
	if !strings.HasPrefix(token, tokenPrefix) {
		return uuid.Nil, domain.ErrSessionNotFound
	}

	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(token))
	if err != nil {
		return uuid.Nil, err
	}

	if session.Expired(time.Now()) {
		// Best effort cleanup; the lookup already failed the request
		if delErr := s.sessionRepo.Delete(ctx, session.ID); delErr != nil {
			log.Error().Err(delErr).Str("session_id", session.ID.String()).Msg("Failed to delete expired session")
		}
		return uuid.Nil, domain.ErrSessionNotFound
	}

	return session.UserID, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *AuthService) openSession(ctx context.Context, user *domain.User) (*AuthResult, error) {
	raw, err := generateSecureToken()
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate session token")
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	token := tokenPrefix + raw
	session := &domain.Session{
		UserID:    user.ID,
		TokenHash: hashToken(token),
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to create session")
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// generateSecureToken generates a cryptographically secure random token
func generateSecureToken() (string, error) {
	bytes := make([]byte, tokenRandomBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// hashToken creates a SHA-256 hash of the token
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", hash)
}
