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

type TodoStorage struct {
	coll *mongo.Collection
}

func (s *TodoStorage) List(ctx context.Context) ([]model.Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"deleted_at": nil}, opts)
	if err != nil {
		return nil, shared.Storagef("list todos", err)
	}
	var todos []model.Todo
	if err := cur.All(ctx, &todos); err != nil {
		return nil, shared.Storagef("decode todos", err)
	}
	return todos, nil
}

func (s *TodoStorage) Get(ctx context.Context, id bson.ObjectID) (*model.Todo, error) {
	var todo model.Todo
	err := s.coll.FindOne(ctx, bson.M{"_id": id, "deleted_at": nil}).Decode(&todo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.Storagef("find todo", err)
	}
	return &todo, nil
}

func (s *TodoStorage) Create(ctx context.Context, todo model.Todo) (*model.Todo, error) {
	res, err := s.coll.InsertOne(ctx, todo)
	if err != nil {
		return nil, shared.Storagef("insert todo", err)
	}
	var created model.Todo
	if err := s.coll.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return nil, shared.Storagef("read back todo", err)
	}
	return &created, nil
}

func (s *TodoStorage) Update(ctx context.Context, id bson.ObjectID, upd model.TodoUpdate, now time.Time) (*model.Todo, error) {
	set := bson.M{"updated_at": now}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Completed != nil {
		set["completed"] = *upd.Completed
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id, "deleted_at": nil}, bson.M{"$set": set})
	if err != nil {
		return nil, shared.Storagef("update todo", err)
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return s.Get(ctx, id)
}

// Toggle инвертирует completed на стороне БД (pipeline-обновление)
func (s *TodoStorage) Toggle(ctx context.Context, id bson.ObjectID) (*model.Todo, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{"completed": bson.M{"$not": "$completed"}}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var todo model.Todo
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "deleted_at": nil}, pipeline, opts).Decode(&todo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.Storagef("toggle todo", err)
	}
	return &todo, nil
}

// SoftDelete помечает todo удаленным
func (s *TodoStorage) SoftDelete(ctx context.Context, id bson.ObjectID, now time.Time) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "deleted_at": nil},
		bson.M{"$set": bson.M{"deleted_at": now}},
	)
	if err != nil {
		return false, shared.Storagef("soft delete todo", err)
	}
	return res.MatchedCount > 0, nil
}
