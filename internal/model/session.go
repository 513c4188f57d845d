package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Session struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"-"`
	SessionID string        `bson:"session_id" json:"session_id"`
	UserType  UserType      `bson:"user_type" json:"user_type"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time     `bson:"expires_at" json:"expires_at"`
}
