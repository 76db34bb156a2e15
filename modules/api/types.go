package api

import (
	"time"

	"github.com/example/todo-monolith/modules/todo"
)

// RegisterRequest represents an account registration request.
type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse represents an authentication token response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// UserResponse represents a created account.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// VerifyResponse represents the result of email verification.
type VerifyResponse struct {
	Verified bool   `json:"verified"`
	Email    string `json:"email,omitempty"`
}

// CreateTodoRequest represents a todo creation request. Note is a
// pointer so an absent field is distinguishable from an empty string.
type CreateTodoRequest struct {
	Name string  `json:"name" form:"name"`
	Note *string `json:"note" form:"note"`
}

// DashboardResponse carries the acting user's todos.
type DashboardResponse struct {
	Todos []todo.View `json:"todos"`
	Total int         `json:"total"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ValidationErrorResponse represents a failed create request with
// field-keyed messages.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}
