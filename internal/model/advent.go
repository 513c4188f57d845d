package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Границы дня адвент-календаря: календарный день месяца
const (
	AdventDayMin = 1
	AdventDayMax = 31
)

// Advent — запись календаря: картинка-сюрприз, привязанная к дню и
// загрузившему пользователю. Байты лежат в S3 под image_key.
type Advent struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Day         int           `bson:"day" json:"day"`
	UploadedBy  UserType      `bson:"uploaded_by" json:"uploaded_by"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	ImageKey    string        `bson:"image_key" json:"image_key"`
	MediaType   *string       `bson:"media_type" json:"media_type"`
	UploadedAt  time.Time     `bson:"uploaded_at" json:"uploaded_at"`
}

// AdventResponse — запись календаря вместе с подписанными ссылками
type AdventResponse struct {
	Advent
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}
