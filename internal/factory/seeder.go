package factory

import (
	"fmt"
	"log"

	domain "github.com/example/todo-monolith/domain/todo"
	"github.com/example/todo-monolith/domain/user"
	"gorm.io/gorm"
)

// todosPerUser is how many todos each seeded user starts with.
const todosPerUser = 3

// Seeder populates the database with demo users and todos.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new Seeder.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Seed creates two verified demo users, each with three unfinished
// todos. Running it twice is a no-op.
func (s *Seeder) Seed() error {
	users := []*user.User{
		NewUser(WithName("First User"), WithEmail("first@example.com")),
		NewUser(WithName("Second User"), WithEmail("second@example.com")),
	}

	for _, u := range users {
		var count int64
		if err := s.db.Model(&user.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("check existing user: %w", err)
		}
		if count > 0 {
			log.Printf("[seed] User %s already exists, skipping", u.Email)
			continue
		}

		if err := s.db.Create(u).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}

		for i := 0; i < todosPerUser; i++ {
			t := NewTodo(u.ID, NotFinished())
			if err := s.db.Create(t).Error; err != nil {
				return fmt.Errorf("seed todo for %s: %w", u.Email, err)
			}
		}
		log.Printf("[seed] Created %s with %d todos", u.Email, todosPerUser)
	}
	return nil
}

// Reset removes all seeded data. Deleting users cascades to their
// todos, but todos are cleared explicitly too in case foreign keys
// are off.
func (s *Seeder) Reset() error {
	if err := s.db.Where("1 = 1").Delete(&domain.Todo{}).Error; err != nil {
		return fmt.Errorf("clear todos: %w", err)
	}
	if err := s.db.Where("1 = 1").Delete(&user.User{}).Error; err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	return nil
}
