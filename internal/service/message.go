package service

import (
	"context"
	"strings"

	"counting-down-back/internal/model"
	"counting-down-back/internal/shared"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type MessageStore interface {
	List(ctx context.Context) ([]model.Message, error)
	Get(ctx context.Context, id bson.ObjectID) (*model.Message, error)
	Create(ctx context.Context, msg model.Message) (*model.Message, error)
	Delete(ctx context.Context, id bson.ObjectID) (bool, error)
}

type MessageService struct {
	messages MessageStore
}

func NewMessageService(messages MessageStore) *MessageService {
	return &MessageService{messages: messages}
}

func (s *MessageService) List(ctx context.Context) ([]model.Message, error) {
	return s.messages.List(ctx)
}

func (s *MessageService) Create(ctx context.Context, in model.MessageCreate) (*model.Message, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, shared.InvalidInputf("message must not be empty")
	}
	return s.messages.Create(ctx, model.Message{
		Sender:    in.Sender,
		Message:   in.Message,
		CreatedAt: utcNow(),
	})
}

func (s *MessageService) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id, "message")
	if err != nil {
		return err
	}
	deleted, err := s.messages.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if !deleted {
		return shared.NotFoundf("message", id)
	}
	return nil
}
