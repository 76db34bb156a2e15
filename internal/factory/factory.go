// Package factory builds users and todos for seeding and tests.
package factory

import (
	"fmt"
	"math/rand"
	"time"

	domain "github.com/example/todo-monolith/domain/todo"
	"github.com/example/todo-monolith/domain/user"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the plaintext password behind every factory user.
const DefaultPassword = "password"

var sampleNames = []string{
	"Buy groceries",
	"Water the plants",
	"Write weekly report",
	"Call the dentist",
	"Clean the garage",
	"Review pull requests",
	"Plan the weekend trip",
	"Renew gym membership",
}

var sampleNotes = []string{
	"",
	"before Friday",
	"see the shared checklist",
	"low priority",
}

// UserOption customizes a factory-built user.
type UserOption func(*user.User)

// WithName sets the user's display name.
func WithName(name string) UserOption {
	return func(u *user.User) { u.Name = name }
}

// WithEmail sets the user's email address.
func WithEmail(email string) UserOption {
	return func(u *user.User) { u.Email = email }
}

// Verified marks the user's email as verified.
func Verified() UserOption {
	return func(u *user.User) {
		now := time.Now()
		u.VerifiedAt = &now
		u.VerifyToken = ""
	}
}

// Unverified leaves the user with a pending verification token.
func Unverified() UserOption {
	return func(u *user.User) {
		u.VerifiedAt = nil
		u.VerifyToken = uuid.New().String()
	}
}

// NewUser builds a verified user with a unique email. Options are
// applied in order, so later options win.
func NewUser(opts ...UserOption) *user.User {
	id := uuid.New().String()
	// MinCost keeps seeding and tests fast; real registration hashes
	// at the service's cost.
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("factory: hash password: %v", err))
	}

	now := time.Now()
	u := &user.User{
		ID:           id,
		Name:         "Test User",
		Email:        fmt.Sprintf("user-%s@example.com", id[:8]),
		PasswordHash: string(hash),
		VerifiedAt:   &now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// TodoOption customizes a factory-built todo.
type TodoOption func(*domain.Todo)

// WithTodoName sets the todo's name.
func WithTodoName(name string) TodoOption {
	return func(t *domain.Todo) { t.Name = name }
}

// WithNote sets the todo's note.
func WithNote(note string) TodoOption {
	return func(t *domain.Todo) { t.Note = note }
}

// Finished marks the todo as done.
func Finished() TodoOption {
	return func(t *domain.Todo) { t.Finished = true }
}

// NotFinished marks the todo as pending.
func NotFinished() TodoOption {
	return func(t *domain.Todo) { t.Finished = false }
}

// NewTodo builds an unfinished todo owned by the given user with a
// random name and note.
func NewTodo(ownerID string, opts ...TodoOption) *domain.Todo {
	t := &domain.Todo{
		ID:     uuid.New().String(),
		UserID: ownerID,
		Name:   sampleNames[rand.Intn(len(sampleNames))],
		Note:   sampleNotes[rand.Intn(len(sampleNotes))],
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
