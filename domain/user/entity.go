package user

import (
	"time"
)

// User represents an account that owns todos.
type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:255;not null"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	// VerifyToken is consumed by the email verification endpoint and
	// cleared once the account is verified.
	VerifyToken string     `gorm:"index;type:text"`
	VerifiedAt  *time.Time `gorm:""`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Verified reports whether the account has completed email verification.
func (u *User) Verified() bool {
	return u.VerifiedAt != nil
}

// Claims represents the authenticated identity attached to a request.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// TokenPair represents access and refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}
