package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// TogetherListItem — пункт общего списка пары. В отличие от todo удаляется
// насовсем, а список отдается в порядке создания.
type TogetherListItem struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string        `bson:"title" json:"title"`
	Category  string        `bson:"category" json:"category"`
	Completed bool          `bson:"completed" json:"completed"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

// TogetherListItemInput — полное тело создания и обновления (PUT-семантика)
type TogetherListItemInput struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	Completed bool   `json:"completed"`
}
