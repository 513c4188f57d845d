package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Todo struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string        `bson:"title" json:"title"`
	Category  string        `bson:"category" json:"category"`
	Completed bool          `bson:"completed" json:"completed"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time    `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	DeletedAt *time.Time    `bson:"deleted_at,omitempty" json:"-"`
}

type TodoCreate struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	Completed bool   `json:"completed"`
}

type TodoUpdate struct {
	Title     *string `json:"title"`
	Category  *string `json:"category"`
	Completed *bool   `json:"completed"`
}
