package todo

import (
	"errors"
	"fmt"

	domain "github.com/example/todo-monolith/domain/todo"
	"gorm.io/gorm"
)

// Repository provides durable persistence of todos using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new todo repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new todo row. GORM maintains CreatedAt/UpdatedAt.
func (r *Repository) Create(t *domain.Todo) error {
	if err := r.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}
	return nil
}

// FindByID retrieves a todo by its id.
func (r *Repository) FindByID(id string) (*domain.Todo, error) {
	var t domain.Todo
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	return &t, nil
}

// Save persists the mutated fields of an existing todo and bumps
// UpdatedAt. Save performs a full-row update so that a finished flag
// flipped back to false is written as well.
func (r *Repository) Save(t *domain.Todo) error {
	if err := r.db.Save(t).Error; err != nil {
		return fmt.Errorf("failed to save todo: %w", err)
	}
	return nil
}

// Delete permanently removes a todo by id. Deleting an id that does
// not exist returns ErrNotFound.
func (r *Repository) Delete(id string) error {
	result := r.db.Delete(&domain.Todo{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOwner returns all todos belonging to the given owner. Row
// order is unspecified; callers must not rely on insertion order.
func (r *Repository) ListByOwner(ownerID string) ([]*domain.Todo, error) {
	var todos []*domain.Todo
	if err := r.db.Find(&todos, "user_id = ?", ownerID).Error; err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}
