package mongo

import (
	"context"
	"errors"
	"time"

	"counting-down-back/internal/model"
	"counting-down-back/internal/shared"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type TogetherListStorage struct {
	coll *mongo.Collection
}

// List отдает пункты в порядке создания, старые первыми
func (s *TogetherListStorage) List(ctx context.Context) ([]model.TogetherListItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, shared.Storagef("list together items", err)
	}
	var items []model.TogetherListItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, shared.Storagef("decode together items", err)
	}
	return items, nil
}

func (s *TogetherListStorage) Get(ctx context.Context, id bson.ObjectID) (*model.TogetherListItem, error) {
	var item model.TogetherListItem
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.Storagef("find together item", err)
	}
	return &item, nil
}

func (s *TogetherListStorage) Create(ctx context.Context, item model.TogetherListItem) (*model.TogetherListItem, error) {
	res, err := s.coll.InsertOne(ctx, item)
	if err != nil {
		return nil, shared.Storagef("insert together item", err)
	}
	var created model.TogetherListItem
	if err := s.coll.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return nil, shared.Storagef("read back together item", err)
	}
	return &created, nil
}

// Update полностью заменяет тело пункта (PUT-семантика)
func (s *TogetherListStorage) Update(
	ctx context.Context, id bson.ObjectID, in model.TogetherListItemInput, now time.Time,
) (*model.TogetherListItem, error) {
	return s.findOneAndSet(ctx, id, bson.M{
		"title":      in.Title,
		"category":   in.Category,
		"completed":  in.Completed,
		"updated_at": now,
	})
}

// SetCompleted выставляет явное значение completed
func (s *TogetherListStorage) SetCompleted(
	ctx context.Context, id bson.ObjectID, completed bool, now time.Time,
) (*model.TogetherListItem, error) {
	return s.findOneAndSet(ctx, id, bson.M{"completed": completed, "updated_at": now})
}

func (s *TogetherListStorage) findOneAndSet(
	ctx context.Context, id bson.ObjectID, set bson.M,
) (*model.TogetherListItem, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item model.TogetherListItem
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.Storagef("update together item", err)
	}
	return &item, nil
}

func (s *TogetherListStorage) Delete(ctx context.Context, id bson.ObjectID) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, shared.Storagef("delete together item", err)
	}
	return res.DeletedCount > 0, nil
}
