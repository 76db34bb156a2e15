package todo

import (
	"errors"
	"time"

	domain "github.com/example/todo-monolith/domain/todo"
)

// Fault kinds carried in responses. Domain failures travel as data
// rather than transport errors so the API module can map them to HTTP
// statuses without string matching.
const (
	FaultValidation = "validation"
	FaultForbidden  = "forbidden"
	FaultNotFound   = "not_found"
	FaultInternal   = "internal"
)

// Fault describes a failed todo operation.
type Fault struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Err converts the fault back into the corresponding domain error.
func (f *Fault) Err() error {
	if f == nil {
		return nil
	}
	switch f.Kind {
	case FaultValidation:
		return &domain.ValidationError{Fields: f.Fields}
	case FaultForbidden:
		return domain.ErrForbidden
	case FaultNotFound:
		return domain.ErrNotFound
	default:
		return errors.New(f.Message)
	}
}

// faultFrom maps a service error to its wire representation.
func faultFrom(err error) *Fault {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return &Fault{Kind: FaultValidation, Fields: verr.Fields}
	case errors.Is(err, domain.ErrForbidden):
		return &Fault{Kind: FaultForbidden, Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return &Fault{Kind: FaultNotFound, Message: err.Error()}
	default:
		return &Fault{Kind: FaultInternal, Message: err.Error()}
	}
}

// View is the serializable representation of a todo.
type View struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Note      string    `json:"note"`
	Finished  bool      `json:"finished"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toView(t *domain.Todo) *View {
	return &View{
		ID:        t.ID,
		UserID:    t.UserID,
		Name:      t.Name,
		Note:      t.Note,
		Finished:  t.Finished,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// CreateRequest is the request for creating a todo. The actor id is
// set by the caller from the authenticated identity, never from user
// input.
type CreateRequest struct {
	ActorID string  `json:"actor_id"`
	Name    string  `json:"name"`
	Note    *string `json:"note,omitempty"`
}

// CreateResponse is the response after creating a todo.
type CreateResponse struct {
	Todo  *View  `json:"todo,omitempty"`
	Fault *Fault `json:"fault,omitempty"`
}

// ToggleRequest is the request for toggling a todo's finished flag.
type ToggleRequest struct {
	ActorID string `json:"actor_id"`
	TodoID  string `json:"todo_id"`
}

// ToggleResponse is the response after a toggle attempt.
type ToggleResponse struct {
	Todo  *View  `json:"todo,omitempty"`
	Fault *Fault `json:"fault,omitempty"`
}

// DeleteRequest is the request for deleting a todo.
type DeleteRequest struct {
	ActorID string `json:"actor_id"`
	TodoID  string `json:"todo_id"`
}

// DeleteResponse is the response after a delete attempt.
type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	Fault   *Fault `json:"fault,omitempty"`
}

// ListRequest is the request for listing an owner's todos.
type ListRequest struct {
	OwnerID string `json:"owner_id"`
}

// ListResponse is the response containing an owner's todos.
type ListResponse struct {
	Todos []View `json:"todos"`
	Total int    `json:"total"`
	Fault *Fault `json:"fault,omitempty"`
}
