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

type ImageMetadataStorage struct {
	coll *mongo.Collection
}

func (s *ImageMetadataStorage) Create(ctx context.Context, meta model.ImageMetadata) (*model.ImageMetadata, error) {
	res, err := s.coll.InsertOne(ctx, meta)
	if err != nil {
		return nil, shared.Storagef("insert image metadata", err)
	}
	var created model.ImageMetadata
	if err := s.coll.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return nil, shared.Storagef("read back image metadata", err)
	}
	return &created, nil
}

// GetByID возвращает не удаленную запись или nil
func (s *ImageMetadataStorage) GetByID(ctx context.Context, id bson.ObjectID) (*model.ImageMetadata, error) {
	return s.findOne(ctx, bson.M{"_id": id, "deleted_at": nil})
}

// GetByKey возвращает не удаленную запись по image_key или nil
func (s *ImageMetadataStorage) GetByKey(ctx context.Context, imageKey string) (*model.ImageMetadata, error) {
	return s.findOne(ctx, bson.M{"image_key": imageKey, "deleted_at": nil})
}

func (s *ImageMetadataStorage) findOne(ctx context.Context, filter bson.M) (*model.ImageMetadata, error) {
	var meta model.ImageMetadata
	err := s.coll.FindOne(ctx, filter).Decode(&meta)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.Storagef("find image metadata", err)
	}
	return &meta, nil
}

// ListPage выбирает страницу в порядке убывания (uploaded_at, _id).
// limit передается как есть: сервис сам запрашивает limit+1 для определения
// наличия следующей страницы.
func (s *ImageMetadataStorage) ListPage(
	ctx context.Context, limit int, cursor *shared.Cursor, userFilter *model.UserType,
) ([]model.ImageMetadata, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "uploaded_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := s.coll.Find(ctx, listPageFilter(cursor, userFilter), opts)
	if err != nil {
		return nil, shared.Storagef("list image metadata", err)
	}
	var items []model.ImageMetadata
	if err := cur.All(ctx, &items); err != nil {
		return nil, shared.Storagef("decode image metadata page", err)
	}
	return items, nil
}

// listPageFilter строит фильтр keyset-пагинации: запись строго "ниже" курсора
// в убывающем порядке кортежа (uploaded_at, _id)
func listPageFilter(cursor *shared.Cursor, userFilter *model.UserType) bson.M {
	filter := bson.M{"deleted_at": nil}
	if userFilter != nil {
		filter["uploaded_by"] = *userFilter
	}
	if cursor == nil {
		return filter
	}
	return bson.M{
		"$and": bson.A{
			filter,
			bson.M{"$or": bson.A{
				bson.M{"uploaded_at": bson.M{"$lt": cursor.CreatedAt}},
				bson.M{"uploaded_at": cursor.CreatedAt, "_id": bson.M{"$lt": cursor.ID}},
			}},
		},
	}
}

// Update применяет частичное обновление к не удаленной записи.
// Возвращает nil, если записи нет или она удалена.
func (s *ImageMetadataStorage) Update(
	ctx context.Context, id bson.ObjectID, upd model.ImageMetadataUpdate,
) (*model.ImageMetadata, error) {
	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.ImageTags != nil {
		set["image_tags"] = upd.ImageTags
	}
	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id, "deleted_at": nil}, bson.M{"$set": set})
	if err != nil {
		return nil, shared.Storagef("update image metadata", err)
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return s.GetByID(ctx, id)
}

// SoftDelete помечает запись удаленной. Повторное удаление и удаление
// несуществующей записи возвращают false.
func (s *ImageMetadataStorage) SoftDelete(ctx context.Context, id bson.ObjectID, now time.Time) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "deleted_at": nil},
		bson.M{"$set": bson.M{"deleted_at": now}},
	)
	if err != nil {
		return false, shared.Storagef("soft delete image metadata", err)
	}
	return res.MatchedCount > 0, nil
}
