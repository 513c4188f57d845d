package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	TitleMaxLength       = 100
	DescriptionMaxLength = 500

	DefaultImageTitle = "New Image"
)

// ImageMetadata — запись о загруженном изображении. Сами байты лежат в S3
// под image_key, метаданные — в Mongo.
type ImageMetadata struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ImageKey    string        `bson:"image_key" json:"image_key"`
	UploadedBy  UserType      `bson:"uploaded_by" json:"uploaded_by"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	ImageTags   []string      `bson:"image_tags" json:"image_tags"`
	MediaType   *string       `bson:"media_type" json:"media_type"`
	UploadedAt  time.Time     `bson:"uploaded_at" json:"uploaded_at"`
	// deleted_at != null помечает запись как удалённую; из выдачи она исключается
	DeletedAt *time.Time `bson:"deleted_at" json:"deleted_at,omitempty"`
}

// ImageMetadataUpdate — частичное обновление; nil-поля не трогаются
type ImageMetadataUpdate struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	ImageTags   []string `json:"image_tags"`
}
