package mongo

import (
	"context"
	"errors"

	"counting-down-back/internal/model"
	"counting-down-back/internal/shared"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MessageStorage struct {
	coll *mongo.Collection
}

func (s *MessageStorage) List(ctx context.Context) ([]model.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"deleted_at": nil}, opts)
	if err != nil {
		return nil, shared.Storagef("list messages", err)
	}
	var messages []model.Message
	if err := cur.All(ctx, &messages); err != nil {
		return nil, shared.Storagef("decode messages", err)
	}
	return messages, nil
}

func (s *MessageStorage) Get(ctx context.Context, id bson.ObjectID) (*model.Message, error) {
	var msg model.Message
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.Storagef("find message", err)
	}
	return &msg, nil
}

func (s *MessageStorage) Create(ctx context.Context, msg model.Message) (*model.Message, error) {
	res, err := s.coll.InsertOne(ctx, msg)
	if err != nil {
		return nil, shared.Storagef("insert message", err)
	}
	var created model.Message
	if err := s.coll.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return nil, shared.Storagef("read back message", err)
	}
	return &created, nil
}

func (s *MessageStorage) Delete(ctx context.Context, id bson.ObjectID) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, shared.Storagef("delete message", err)
	}
	return res.DeletedCount > 0, nil
}
