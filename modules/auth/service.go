package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"time"

	"github.com/example/todo-monolith/domain/user"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidEmail is returned when email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrNameRequired is returned when the account name is missing.
	ErrNameRequired = errors.New("name is required")
	// ErrWeakPassword is returned when password is too weak.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
	// ErrInvalidVerifyToken is returned for an unknown or used verification token.
	ErrInvalidVerifyToken = errors.New("invalid verification token")
)

// AuthService handles account business logic: registration, login,
// token lifecycle, email verification and account removal.
type AuthService struct {
	repo   *UserRepository
	tokens *TokenManager
	mailer Mailer
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, tokens *TokenManager, mailer Mailer) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		mailer: mailer,
	}
}

// Register creates a new account and sends a verification message.
func (s *AuthService) Register(_ context.Context, name, email, password string) (*user.User, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	if len(password) > 72 {
		return nil, ErrPasswordTooLong
	}

	exists, err := s.repo.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		VerifyToken:  uuid.New().String(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Delivery failures must not lose the account; the link can be
	// re-sent out of band.
	if err := s.mailer.SendVerification(u.Email, u.Name, u.VerifyToken); err != nil {
		log.Printf("[auth] Failed to send verification mail to %s: %v", u.Email, err)
	}

	return u, nil
}

// Login authenticates a user and returns tokens.
func (s *AuthService) Login(_ context.Context, email, password string) (*user.TokenPair, error) {
	u, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokenPair(u.ID, u.Email)
}

// RefreshTokens exchanges a valid refresh token for a new token pair.
func (s *AuthService) RefreshTokens(_ context.Context, refreshToken string) (*user.TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	u, err := s.repo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return s.issueTokenPair(u.ID, u.Email)
}

// ValidateToken validates an access token and returns its claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*user.Claims, error) {
	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	return &user.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

// VerifyEmail marks the account holding the token as verified and
// consumes the token.
func (s *AuthService) VerifyEmail(_ context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, ErrInvalidVerifyToken
	}

	u, err := s.repo.FindByVerifyToken(token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidVerifyToken
		}
		return nil, fmt.Errorf("failed to find user by token: %w", err)
	}

	now := time.Now()
	u.VerifiedAt = &now
	u.VerifyToken = ""
	if err := s.repo.Save(u); err != nil {
		return nil, fmt.Errorf("failed to mark user verified: %w", err)
	}

	return u, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(_ context.Context, userID string) (*user.User, error) {
	return s.repo.FindByID(userID)
}

// DeleteUser permanently removes the account. The database cascades
// the delete to the user's todos.
func (s *AuthService) DeleteUser(_ context.Context, userID string) error {
	return s.repo.Delete(userID)
}

func (s *AuthService) issueTokenPair(userID, email string) (*user.TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.tokens.IssueRefreshToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &user.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.tokens.AccessTokenDuration(),
		TokenType:    "Bearer",
	}, nil
}
