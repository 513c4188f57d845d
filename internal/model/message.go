package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Message struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Sender    *string       `bson:"sender" json:"sender"`
	Message   string        `bson:"message" json:"message"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	DeletedAt *time.Time    `bson:"deleted_at,omitempty" json:"-"`
}

type MessageCreate struct {
	Sender  *string `json:"sender"`
	Message string  `json:"message"`
}
