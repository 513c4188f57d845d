package service

import (
	"context"
	"strings"
	"time"

	"counting-down-back/internal/model"
	"counting-down-back/internal/shared"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type TogetherListStore interface {
	List(ctx context.Context) ([]model.TogetherListItem, error)
	Get(ctx context.Context, id bson.ObjectID) (*model.TogetherListItem, error)
	Create(ctx context.Context, item model.TogetherListItem) (*model.TogetherListItem, error)
	Update(ctx context.Context, id bson.ObjectID, in model.TogetherListItemInput, now time.Time) (*model.TogetherListItem, error)
	SetCompleted(ctx context.Context, id bson.ObjectID, completed bool, now time.Time) (*model.TogetherListItem, error)
	Delete(ctx context.Context, id bson.ObjectID) (bool, error)
}

type TogetherListService struct {
	items TogetherListStore
}

func NewTogetherListService(items TogetherListStore) *TogetherListService {
	return &TogetherListService{items: items}
}

func (s *TogetherListService) List(ctx context.Context) ([]model.TogetherListItem, error) {
	return s.items.List(ctx)
}

func (s *TogetherListService) Get(ctx context.Context, id string) (*model.TogetherListItem, error) {
	oid, err := parseObjectID(id, "together item")
	if err != nil {
		return nil, err
	}
	item, err := s.items.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.NotFoundf("together item", id)
	}
	return item, nil
}

func (s *TogetherListService) Create(ctx context.Context, in model.TogetherListItemInput) (*model.TogetherListItem, error) {
	cleaned, err := cleanTogetherInput(in)
	if err != nil {
		return nil, err
	}
	now := utcNow()
	return s.items.Create(ctx, model.TogetherListItem{
		Title:     cleaned.Title,
		Category:  cleaned.Category,
		Completed: cleaned.Completed,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Update заменяет пункт целиком
func (s *TogetherListService) Update(ctx context.Context, id string, in model.TogetherListItemInput) (*model.TogetherListItem, error) {
	oid, err := parseObjectID(id, "together item")
	if err != nil {
		return nil, err
	}
	cleaned, err := cleanTogetherInput(in)
	if err != nil {
		return nil, err
	}
	item, err := s.items.Update(ctx, oid, cleaned, utcNow())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.NotFoundf("together item", id)
	}
	return item, nil
}

// Toggle читает текущее значение и записывает обратное
func (s *TogetherListService) Toggle(ctx context.Context, id string) (*model.TogetherListItem, error) {
	oid, err := parseObjectID(id, "together item")
	if err != nil {
		return nil, err
	}
	current, err := s.items.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, shared.NotFoundf("together item", id)
	}
	item, err := s.items.SetCompleted(ctx, oid, !current.Completed, utcNow())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.NotFoundf("together item", id)
	}
	return item, nil
}

func (s *TogetherListService) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id, "together item")
	if err != nil {
		return err
	}
	deleted, err := s.items.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if !deleted {
		return shared.NotFoundf("together item", id)
	}
	return nil
}

func cleanTogetherInput(in model.TogetherListItemInput) (model.TogetherListItemInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	if in.Title == "" || in.Category == "" {
		return in, shared.InvalidInputf("title and category must not be empty")
	}
	return in, nil
}
