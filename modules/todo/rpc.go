package todo

import (
	"context"

	domain "github.com/example/todo-monolith/domain/todo"
	"github.com/go-monolith/mono"
)

// Request-reply handlers registered by the module. Domain failures are
// returned inside the response so they survive the messaging boundary;
// only infrastructure failures become transport errors.

func (m *TodoModule) createTodo(ctx context.Context, req CreateRequest, _ *mono.Msg) (CreateResponse, error) {
	in := domain.CreateInput{Name: req.Name, Note: req.Note}
	t, err := m.service.Create(ctx, req.ActorID, in)
	if err != nil {
		return CreateResponse{Fault: faultFrom(err)}, nil
	}
	return CreateResponse{Todo: toView(t)}, nil
}

func (m *TodoModule) toggleTodo(ctx context.Context, req ToggleRequest, _ *mono.Msg) (ToggleResponse, error) {
	t, err := m.service.Toggle(ctx, req.ActorID, req.TodoID)
	if err != nil {
		return ToggleResponse{Fault: faultFrom(err)}, nil
	}
	return ToggleResponse{Todo: toView(t)}, nil
}

func (m *TodoModule) deleteTodo(ctx context.Context, req DeleteRequest, _ *mono.Msg) (DeleteResponse, error) {
	if err := m.service.Delete(ctx, req.ActorID, req.TodoID); err != nil {
		return DeleteResponse{Deleted: false, Fault: faultFrom(err)}, nil
	}
	return DeleteResponse{Deleted: true}, nil
}

func (m *TodoModule) listTodos(ctx context.Context, req ListRequest, _ *mono.Msg) (ListResponse, error) {
	todos, err := m.service.ListByOwner(ctx, req.OwnerID)
	if err != nil {
		return ListResponse{Fault: faultFrom(err)}, nil
	}

	resp := ListResponse{
		Todos: make([]View, 0, len(todos)),
		Total: len(todos),
	}
	for _, t := range todos {
		resp.Todos = append(resp.Todos, *toView(t))
	}
	return resp, nil
}
