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

type AdventStorage struct {
	coll *mongo.Collection
}

func (s *AdventStorage) Create(ctx context.Context, advent model.Advent) (*model.Advent, error) {
	res, err := s.coll.InsertOne(ctx, advent)
	if err != nil {
		return nil, shared.Storagef("insert advent item", err)
	}
	var created model.Advent
	if err := s.coll.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return nil, shared.Storagef("read back advent item", err)
	}
	return &created, nil
}

func (s *AdventStorage) GetByID(ctx context.Context, id bson.ObjectID) (*model.Advent, error) {
	var advent model.Advent
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&advent)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.Storagef("find advent item", err)
	}
	return &advent, nil
}

// ListByUser возвращает записи пользователя в порядке дней календаря
func (s *AdventStorage) ListByUser(ctx context.Context, user model.UserType) ([]model.Advent, error) {
	return s.find(ctx, bson.M{"uploaded_by": user})
}

// ListByDay возвращает записи пользователя на конкретный день
func (s *AdventStorage) ListByDay(ctx context.Context, day int, user model.UserType) ([]model.Advent, error) {
	return s.find(ctx, bson.M{"day": day, "uploaded_by": user})
}

func (s *AdventStorage) find(ctx context.Context, filter bson.M) ([]model.Advent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "day", Value: 1}, {Key: "uploaded_at", Value: 1}})
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, shared.Storagef("list advent items", err)
	}
	var items []model.Advent
	if err := cur.All(ctx, &items); err != nil {
		return nil, shared.Storagef("decode advent items", err)
	}
	return items, nil
}

// Delete удаляет запись календаря; байты картинки остаются в S3
func (s *AdventStorage) Delete(ctx context.Context, id bson.ObjectID) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, shared.Storagef("delete advent item", err)
	}
	return res.DeletedCount > 0, nil
}
