package todo

import (
	"context"
	"fmt"

	domain "github.com/example/todo-monolith/domain/todo"
	"github.com/google/uuid"
)

// Service implements the ownership-scoped todo operations. Every
// mutation checks the authorization policy before touching the store;
// the actor is passed explicitly through every call.
type Service struct {
	repo   *Repository
	policy domain.Policy
}

// NewService creates a new todo Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the input and persists a new todo owned by the
// actor. Validation failures are reported before any store
// interaction. Ownership is fixed by construction, so no policy check
// is needed beyond authentication.
func (s *Service) Create(_ context.Context, actorID string, in domain.CreateInput) (*domain.Todo, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	// Absent note is canonically stored as empty string.
	note := ""
	if in.Note != nil {
		note = *in.Note
	}

	t := &domain.Todo{
		ID:       uuid.New().String(),
		UserID:   actorID,
		Name:     in.Name,
		Note:     note,
		Finished: false,
	}

	if err := s.repo.Create(t); err != nil {
		return nil, fmt.Errorf("failed to save todo: %w", err)
	}
	return t, nil
}

// Toggle flips the finished flag of the todo. It is deliberately not
// idempotent: toggling twice restores the original value. Returns
// ErrNotFound for an absent id and ErrForbidden when the actor is not
// the owner, in which case no mutation occurs.
func (s *Service) Toggle(_ context.Context, actorID, todoID string) (*domain.Todo, error) {
	t, err := s.repo.FindByID(todoID)
	if err != nil {
		return nil, err
	}

	if !s.policy.Can(actorID, domain.AbilityUpdate, t) {
		return nil, domain.ErrForbidden
	}

	t.Finished = !t.Finished
	if err := s.repo.Save(t); err != nil {
		return nil, fmt.Errorf("failed to save todo: %w", err)
	}
	return t, nil
}

// Delete permanently removes the todo. Returns ErrNotFound for an
// absent id (a second delete of the same id fails rather than
// silently succeeding) and ErrForbidden when the actor is not the
// owner.
func (s *Service) Delete(_ context.Context, actorID, todoID string) error {
	t, err := s.repo.FindByID(todoID)
	if err != nil {
		return err
	}

	if !s.policy.Can(actorID, domain.AbilityDelete, t) {
		return domain.ErrForbidden
	}

	return s.repo.Delete(t.ID)
}

// ListByOwner returns the todos owned by the given actor, and only
// those.
func (s *Service) ListByOwner(_ context.Context, ownerID string) ([]*domain.Todo, error) {
	return s.repo.ListByOwner(ownerID)
}
