package service

import (
	"context"
	"strings"
	"time"

	"counting-down-back/internal/model"
	"counting-down-back/internal/shared"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type TodoStore interface {
	List(ctx context.Context) ([]model.Todo, error)
	Get(ctx context.Context, id bson.ObjectID) (*model.Todo, error)
	Create(ctx context.Context, todo model.Todo) (*model.Todo, error)
	Update(ctx context.Context, id bson.ObjectID, upd model.TodoUpdate, now time.Time) (*model.Todo, error)
	Toggle(ctx context.Context, id bson.ObjectID) (*model.Todo, error)
	SoftDelete(ctx context.Context, id bson.ObjectID, now time.Time) (bool, error)
}

type TodoService struct {
	todos TodoStore
}

func NewTodoService(todos TodoStore) *TodoService {
	return &TodoService{todos: todos}
}

func (s *TodoService) List(ctx context.Context) ([]model.Todo, error) {
	return s.todos.List(ctx)
}

func (s *TodoService) Get(ctx context.Context, id string) (*model.Todo, error) {
	oid, err := parseObjectID(id, "todo")
	if err != nil {
		return nil, err
	}
	todo, err := s.todos.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, shared.NotFoundf("todo", id)
	}
	return todo, nil
}

func (s *TodoService) Create(ctx context.Context, in model.TodoCreate) (*model.Todo, error) {
	title := strings.TrimSpace(in.Title)
	category := strings.TrimSpace(in.Category)
	if title == "" || category == "" {
		return nil, shared.InvalidInputf("title and category must not be empty")
	}
	return s.todos.Create(ctx, model.Todo{
		Title:     title,
		Category:  category,
		Completed: in.Completed,
		CreatedAt: utcNow(),
	})
}

func (s *TodoService) Update(ctx context.Context, id string, upd model.TodoUpdate) (*model.Todo, error) {
	oid, err := parseObjectID(id, "todo")
	if err != nil {
		return nil, err
	}
	if err := validateNotBlank(upd.Title, "title"); err != nil {
		return nil, err
	}
	if err := validateNotBlank(upd.Category, "category"); err != nil {
		return nil, err
	}
	todo, err := s.todos.Update(ctx, oid, upd, utcNow())
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, shared.NotFoundf("todo", id)
	}
	return todo, nil
}

func (s *TodoService) Toggle(ctx context.Context, id string) (*model.Todo, error) {
	oid, err := parseObjectID(id, "todo")
	if err != nil {
		return nil, err
	}
	todo, err := s.todos.Toggle(ctx, oid)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, shared.NotFoundf("todo", id)
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id, "todo")
	if err != nil {
		return err
	}
	deleted, err := s.todos.SoftDelete(ctx, oid, utcNow())
	if err != nil {
		return err
	}
	if !deleted {
		return shared.NotFoundf("todo", id)
	}
	return nil
}

func parseObjectID(id string, resource string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, shared.InvalidInputf("invalid %s id %q", resource, id)
	}
	return oid, nil
}

func validateNotBlank(v *string, field string) error {
	if v != nil && strings.TrimSpace(*v) == "" {
		return shared.InvalidInputf("%s must not be empty or whitespace", field)
	}
	return nil
}
