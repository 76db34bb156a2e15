package todo

import (
	"time"

	"github.com/example/todo-monolith/domain/user"
)

// Todo represents a single to-do item owned by exactly one user.
//
// The owner is fixed at creation time; the foreign key cascades on both
// delete and update of the owning user, so removing a user removes all
// of their todos.
type Todo struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;not null;index" json:"user_id"`
	Name   string `gorm:"size:255;not null" json:"name"`
	// Note is nullable at the API layer but stored as a non-null text
	// column defaulting to empty string, matching the persisted schema.
	Note      string    `gorm:"size:255;not null;default:''" json:"note"`
	Finished  bool      `gorm:"not null;default:false" json:"finished"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for the Todo entity.
func (Todo) TableName() string {
	return "todos"
}
