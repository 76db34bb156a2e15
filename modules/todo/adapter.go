package todo

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/todo-monolith/domain/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TodoPort defines the interface other modules use to reach the todo
// services. Domain failures come back as the errors declared in
// domain/todo, so callers can match on them with errors.Is/As.
type TodoPort interface {
	Create(ctx context.Context, actorID string, in domain.CreateInput) (*View, error)
	Toggle(ctx context.Context, actorID, todoID string) (*View, error)
	Delete(ctx context.Context, actorID, todoID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]View, error)
}

// TodoAdapter implements TodoPort over the module's service container.
type TodoAdapter struct {
	container mono.ServiceContainer
}

// NewTodoAdapter creates a new TodoAdapter.
func NewTodoAdapter(container mono.ServiceContainer) *TodoAdapter {
	return &TodoAdapter{container: container}
}

// Create creates a todo owned by the actor.
func (a *TodoAdapter) Create(ctx context.Context, actorID string, in domain.CreateInput) (*View, error) {
	req := CreateRequest{ActorID: actorID, Name: in.Name, Note: in.Note}
	var resp CreateResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "create",
		json.Marshal, json.Unmarshal,
		&req, &resp,
	); err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	if resp.Fault != nil {
		return nil, resp.Fault.Err()
	}
	return resp.Todo, nil
}

// Toggle flips the finished flag of the actor's todo.
func (a *TodoAdapter) Toggle(ctx context.Context, actorID, todoID string) (*View, error) {
	req := ToggleRequest{ActorID: actorID, TodoID: todoID}
	var resp ToggleResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "toggle",
		json.Marshal, json.Unmarshal,
		&req, &resp,
	); err != nil {
		return nil, fmt.Errorf("toggle request failed: %w", err)
	}

	if resp.Fault != nil {
		return nil, resp.Fault.Err()
	}
	return resp.Todo, nil
}

// Delete permanently removes the actor's todo.
func (a *TodoAdapter) Delete(ctx context.Context, actorID, todoID string) error {
	req := DeleteRequest{ActorID: actorID, TodoID: todoID}
	var resp DeleteResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "delete",
		json.Marshal, json.Unmarshal,
		&req, &resp,
	); err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}

	return resp.Fault.Err()
}

// ListByOwner returns the todos owned by the given user.
func (a *TodoAdapter) ListByOwner(ctx context.Context, ownerID string) ([]View, error) {
	req := ListRequest{OwnerID: ownerID}
	var resp ListResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "list",
		json.Marshal, json.Unmarshal,
		&req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list request failed: %w", err)
	}

	if resp.Fault != nil {
		return nil, resp.Fault.Err()
	}
	return resp.Todos, nil
}
