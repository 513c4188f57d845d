package mongo

import (
	"context"
	"errors"
	"time"

	"counting-down-back/internal/model"
	"counting-down-back/internal/shared"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type SessionStorage struct {
	coll *mongo.Collection
}

func (s *SessionStorage) Create(ctx context.Context, session model.Session) (*model.Session, error) {
	res, err := s.coll.InsertOne(ctx, session)
	if err != nil {
		return nil, shared.Storagef("insert session", err)
	}
	var created model.Session
	if err := s.coll.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return nil, shared.Storagef("read back session", err)
	}
	return &created, nil
}

// GetByID возвращает живую (не истекшую) сессию или nil
func (s *SessionStorage) GetByID(ctx context.Context, sessionID string, now time.Time) (*model.Session, error) {
	return s.findOne(ctx, bson.M{"session_id": sessionID, "expires_at": bson.M{"$gt": now}})
}

// GetByUser возвращает живую сессию пользователя или nil
func (s *SessionStorage) GetByUser(ctx context.Context, user model.UserType, now time.Time) (*model.Session, error) {
	return s.findOne(ctx, bson.M{"user_type": user, "expires_at": bson.M{"$gt": now}})
}

func (s *SessionStorage) findOne(ctx context.Context, filter bson.M) (*model.Session, error) {
	var session model.Session
	err := s.coll.FindOne(ctx, filter).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.Storagef("find session", err)
	}
	return &session, nil
}

func (s *SessionStorage) Delete(ctx context.Context, sessionID string) (int64, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return 0, shared.Storagef("delete session", err)
	}
	return res.DeletedCount, nil
}

func (s *SessionStorage) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": now}})
	if err != nil {
		return 0, shared.Storagef("delete expired sessions", err)
	}
	return res.DeletedCount, nil
}

func (s *SessionStorage) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, shared.Storagef("delete all sessions", err)
	}
	return res.DeletedCount, nil
}

func (s *SessionStorage) CountActive(ctx context.Context, now time.Time) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"expires_at": bson.M{"$gt": now}})
	if err != nil {
		return 0, shared.Storagef("count active sessions", err)
	}
	return count, nil
}
