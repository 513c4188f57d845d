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

type FlightStorage struct {
	coll *mongo.Collection
}

func (s *FlightStorage) List(ctx context.Context) ([]model.Flight, error) {
	return s.find(ctx, bson.M{})
}

func (s *FlightStorage) ListActive(ctx context.Context) ([]model.Flight, error) {
	return s.find(ctx, bson.M{"status": model.FlightActive})
}

func (s *FlightStorage) find(ctx context.Context, filter bson.M) ([]model.Flight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "departure_at", Value: -1}})
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, shared.Storagef("list flights", err)
	}
	var flights []model.Flight
	if err := cur.All(ctx, &flights); err != nil {
		return nil, shared.Storagef("decode flights", err)
	}
	return flights, nil
}

func (s *FlightStorage) Get(ctx context.Context, id bson.ObjectID) (*model.Flight, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// MostRecentActive возвращает активный рейс с самым поздним вылетом или nil
func (s *FlightStorage) MostRecentActive(ctx context.Context) (*model.Flight, error) {
	var flight model.Flight
	opts := options.FindOne().SetSort(bson.D{{Key: "departure_at", Value: -1}})
	err := s.coll.FindOne(ctx, bson.M{"status": model.FlightActive}, opts).Decode(&flight)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.Storagef("find most recent active flight", err)
	}
	return &flight, nil
}

func (s *FlightStorage) findOne(ctx context.Context, filter bson.M) (*model.Flight, error) {
	var flight model.Flight
	err := s.coll.FindOne(ctx, filter).Decode(&flight)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.Storagef("find flight", err)
	}
	return &flight, nil
}

func (s *FlightStorage) Create(ctx context.Context, flight model.Flight) (*model.Flight, error) {
	res, err := s.coll.InsertOne(ctx, flight)
	if err != nil {
		return nil, shared.Storagef("insert flight", err)
	}
	var created model.Flight
	if err := s.coll.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return nil, shared.Storagef("read back flight", err)
	}
	return &created, nil
}

func (s *FlightStorage) Update(ctx context.Context, id bson.ObjectID, upd model.FlightUpdate, now time.Time) (*model.Flight, error) {
	set := bson.M{"updated_at": now}
	if upd.FlightNumber != nil {
		set["flight_number"] = *upd.FlightNumber
	}
	if upd.DepartureAt != nil {
		set["departure_at"] = *upd.DepartureAt
	}
	if upd.ArrivalAt != nil {
		set["arrival_at"] = *upd.ArrivalAt
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, shared.Storagef("update flight", err)
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return s.Get(ctx, id)
}

func (s *FlightStorage) Delete(ctx context.Context, id bson.ObjectID) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, shared.Storagef("delete flight", err)
	}
	return res.DeletedCount > 0, nil
}
