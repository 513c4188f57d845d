package mongo

import (
	"context"
	"fmt"

	"counting-down-back/internal/config"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Имена коллекций
const (
	imagesCollection   = "images"
	adventCollection   = "advent"
	sessionsCollection = "sessions"
	todosCollection    = "todos"
	togetherCollection = "together_list"
	messagesCollection = "messages"
	flightsCollection  = "flights"
	airportsCollection = "airports"
)

type Storage struct {
	Client   *mongo.Client
	DB       *mongo.Database
	Images   *ImageMetadataStorage
	Advent   *AdventStorage
	Sessions *SessionStorage
	Todos    *TodoStorage
	Together *TogetherListStorage
	Messages *MessageStorage
	Flights  *FlightStorage
	Airports *AirportStorage
}

func Connect(ctx context.Context, cfg *config.Config) (*Storage, error) {
	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.MongoURL).
		SetAppName(cfg.MongoAppName))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(cfg.MongoDBName)
	return &Storage{
		Client:   client,
		DB:       db,
		Images:   &ImageMetadataStorage{coll: db.Collection(imagesCollection)},
		Advent:   &AdventStorage{coll: db.Collection(adventCollection)},
		Sessions: &SessionStorage{coll: db.Collection(sessionsCollection)},
		Todos:    &TodoStorage{coll: db.Collection(todosCollection)},
		Together: &TogetherListStorage{coll: db.Collection(togetherCollection)},
		Messages: &MessageStorage{coll: db.Collection(messagesCollection)},
		Flights:  &FlightStorage{coll: db.Collection(flightsCollection)},
		Airports: &AirportStorage{coll: db.Collection(airportsCollection)},
	}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

// EnsureIndexes создает индексы, без которых не работает keyset-пагинация
// и поиск сессий
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	_, err := s.DB.Collection(imagesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "uploaded_at", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "image_key", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create image indexes: %w", err)
	}

	_, err = s.DB.Collection(sessionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "session_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create session index: %w", err)
	}

	_, err = s.DB.Collection(adventCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "day", Value: 1}, {Key: "uploaded_by", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create advent index: %w", err)
	}
	return nil
}
