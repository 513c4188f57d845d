package mongo

import (
	"context"
	"errors"
	"regexp"

	"counting-down-back/internal/model"
	"counting-down-back/internal/shared"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type AirportStorage struct {
	coll *mongo.Collection
}

func (s *AirportStorage) List(ctx context.Context) ([]model.Airport, error) {
	return s.find(ctx, bson.M{})
}

// Search ищет без учета регистра по коду, названию, городу и стране
func (s *AirportStorage) Search(ctx context.Context, query string) ([]model.Airport, error) {
	// Пользовательский ввод экранируем, иначе он интерпретируется как regex
	pattern := bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	return s.find(ctx, bson.M{"$or": bson.A{
		bson.M{"icao": pattern},
		bson.M{"iata": pattern},
		bson.M{"name": pattern},
		bson.M{"city": pattern},
		bson.M{"country": pattern},
	}})
}

func (s *AirportStorage) find(ctx context.Context, filter bson.M) ([]model.Airport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "icao", Value: 1}})
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, shared.Storagef("list airports", err)
	}
	var airports []model.Airport
	if err := cur.All(ctx, &airports); err != nil {
		return nil, shared.Storagef("decode airports", err)
	}
	return airports, nil
}

func (s *AirportStorage) GetByID(ctx context.Context, id bson.ObjectID) (*model.Airport, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByCode ищет по точному ICAO или IATA коду
func (s *AirportStorage) GetByCode(ctx context.Context, code string) (*model.Airport, error) {
	return s.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"icao": code},
		bson.M{"iata": code},
	}})
}

func (s *AirportStorage) findOne(ctx context.Context, filter bson.M) (*model.Airport, error) {
	var airport model.Airport
	err := s.coll.FindOne(ctx, filter).Decode(&airport)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.Storagef("find airport", err)
	}
	return &airport, nil
}
