package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domain "github.com/example/todo-monolith/domain/todo"
	"github.com/example/todo-monolith/modules/auth"
	"github.com/example/todo-monolith/modules/todo"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTodoPort implements todo.TodoPort for testing.
type mockTodoPort struct {
	createFunc func(ctx context.Context, actorID string, in domain.CreateInput) (*todo.View, error)
	toggleFunc func(ctx context.Context, actorID, todoID string) (*todo.View, error)
	deleteFunc func(ctx context.Context, actorID, todoID string) error
	listFunc   func(ctx context.Context, ownerID string) ([]todo.View, error)
}

func (m *mockTodoPort) Create(ctx context.Context, actorID string, in domain.CreateInput) (*todo.View, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, actorID, in)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTodoPort) Toggle(ctx context.Context, actorID, todoID string) (*todo.View, error) {
	if m.toggleFunc != nil {
		return m.toggleFunc(ctx, actorID, todoID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTodoPort) Delete(ctx context.Context, actorID, todoID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, actorID, todoID)
	}
	return errors.New("not implemented")
}

func (m *mockTodoPort) ListByOwner(ctx context.Context, ownerID string) ([]todo.View, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ownerID)
	}
	return nil, errors.New("not implemented")
}

// newTestApp wires the todo routes the way APIModule does, with the
// auth port mocked to authenticate every request as the given user.
func newTestApp(actorID string, port todo.TodoPort) *fiber.App {
	authPort := &mockAuthPort{
		validateTokenFunc: validClaims(actorID),
		getUserFunc: func(context.Context, string) (*auth.Account, error) {
			return &auth.Account{ID: actorID, Verified: true}, nil
		},
	}
	handlers := NewHandlers(nil, port)

	app := fiber.New()
	authed := app.Group("", AuthMiddleware(authPort), RequireVerified(authPort))
	authed.Get("/dashboard", handlers.Dashboard)
	authed.Post("/todo", handlers.CreateTodo)
	authed.Patch("/todo/:id", handlers.ToggleTodo)
	authed.Delete("/todo/:id", handlers.DeleteTodo)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body, referer string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer test-token")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if referer != "" {
		req.Header.Set(fiber.HeaderReferer, referer)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestDashboard(t *testing.T) {
	t.Run("returns only the actor's todos", func(t *testing.T) {
		var requestedOwner string
		port := &mockTodoPort{
			listFunc: func(_ context.Context, ownerID string) ([]todo.View, error) {
				requestedOwner = ownerID
				return []todo.View{
					{ID: "t1", UserID: ownerID, Name: "Buy milk"},
					{ID: "t2", UserID: ownerID, Name: "Water plants", Finished: true},
				}, nil
			},
		}
		app := newTestApp("alice", port)

		resp := doRequest(t, app, "GET", "/dashboard", "", "")
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "alice", requestedOwner)

		var dashboard DashboardResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&dashboard))
		assert.Equal(t, 2, dashboard.Total)
		require.Len(t, dashboard.Todos, 2)
		assert.Equal(t, "Buy milk", dashboard.Todos[0].Name)
		assert.True(t, dashboard.Todos[1].Finished)
	})

	t.Run("empty list", func(t *testing.T) {
		port := &mockTodoPort{
			listFunc: func(context.Context, string) ([]todo.View, error) {
				return []todo.View{}, nil
			},
		}
		app := newTestApp("alice", port)

		resp := doRequest(t, app, "GET", "/dashboard", "", "")
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var dashboard DashboardResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&dashboard))
		assert.Zero(t, dashboard.Total)
	})
}

func TestCreateTodo(t *testing.T) {
	t.Run("redirects back on success", func(t *testing.T) {
		var got domain.CreateInput
		var actor string
		port := &mockTodoPort{
			createFunc: func(_ context.Context, actorID string, in domain.CreateInput) (*todo.View, error) {
				actor = actorID
				got = in
				return &todo.View{ID: "t1", UserID: actorID, Name: in.Name}, nil
			},
		}
		app := newTestApp("alice", port)

		resp := doRequest(t, app, "POST", "/todo",
			`{"name":"Buy milk","note":"two liters"}`, "/dashboard?page=2")
		defer resp.Body.Close()

		require.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/dashboard?page=2", resp.Header.Get("Location"))
		assert.Equal(t, "alice", actor)
		assert.Equal(t, "Buy milk", got.Name)
		require.NotNil(t, got.Note)
		assert.Equal(t, "two liters", *got.Note)
	})

	t.Run("defaults redirect to dashboard without referer", func(t *testing.T) {
		port := &mockTodoPort{
			createFunc: func(_ context.Context, actorID string, in domain.CreateInput) (*todo.View, error) {
				return &todo.View{ID: "t1"}, nil
			},
		}
		app := newTestApp("alice", port)

		resp := doRequest(t, app, "POST", "/todo", `{"name":"Buy milk"}`, "")
		defer resp.Body.Close()

		require.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	})

	t.Run("validation failure returns 422 with fields", func(t *testing.T) {
		port := &mockTodoPort{
			createFunc: func(context.Context, string, domain.CreateInput) (*todo.View, error) {
				verr := &domain.ValidationError{Fields: map[string]string{
					"name": "must be provided",
				}}
				return nil, verr
			},
		}
		app := newTestApp("alice", port)

		resp := doRequest(t, app, "POST", "/todo", `{"name":""}`, "")
		defer resp.Body.Close()

		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body ValidationErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "validation_failed", body.Error)
		assert.Equal(t, "must be provided", body.Fields["name"])
	})
}

func TestToggleTodo(t *testing.T) {
	t.Run("redirects back on success", func(t *testing.T) {
		var actor, id string
		port := &mockTodoPort{
			toggleFunc: func(_ context.Context, actorID, todoID string) (*todo.View, error) {
				actor, id = actorID, todoID
				return &todo.View{ID: todoID, UserID: actorID, Finished: true}, nil
			},
		}
		app := newTestApp("alice", port)

		resp := doRequest(t, app, "PATCH", "/todo/t1", "", "/dashboard")
		defer resp.Body.Close()

		require.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "alice", actor)
		assert.Equal(t, "t1", id)
	})

	t.Run("foreign todo is forbidden", func(t *testing.T) {
		port := &mockTodoPort{
			toggleFunc: func(context.Context, string, string) (*todo.View, error) {
				return nil, domain.ErrForbidden
			},
		}
		app := newTestApp("alice", port)

		resp := doRequest(t, app, "PATCH", "/todo/t1", "", "")
		defer resp.Body.Close()

		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("absent todo is not found", func(t *testing.T) {
		port := &mockTodoPort{
			toggleFunc: func(context.Context, string, string) (*todo.View, error) {
				return nil, domain.ErrNotFound
			},
		}
		app := newTestApp("alice", port)

		resp := doRequest(t, app, "PATCH", "/todo/missing", "", "")
		defer resp.Body.Close()

		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteTodo(t *testing.T) {
	t.Run("redirects back on success", func(t *testing.T) {
		var id string
		port := &mockTodoPort{
			deleteFunc: func(_ context.Context, _, todoID string) error {
				id = todoID
				return nil
			},
		}
		app := newTestApp("alice", port)

		resp := doRequest(t, app, "DELETE", "/todo/t1", "", "/dashboard")
		defer resp.Body.Close()

		require.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "t1", id)
	})

	t.Run("foreign todo is forbidden", func(t *testing.T) {
		port := &mockTodoPort{
			deleteFunc: func(context.Context, string, string) error {
				return domain.ErrForbidden
			},
		}
		app := newTestApp("alice", port)

		resp := doRequest(t, app, "DELETE", "/todo/t1", "", "")
		defer resp.Body.Close()

		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unexpected error is internal", func(t *testing.T) {
		port := &mockTodoPort{
			deleteFunc: func(context.Context, string, string) error {
				return errors.New("boom")
			},
		}
		app := newTestApp("alice", port)

		resp := doRequest(t, app, "DELETE", "/todo/t1", "", "")
		defer resp.Body.Close()

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}
