package shared

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Cursor — позиция последнего элемента предыдущей страницы.
// Сериализуется в непрозрачный токен: base64url(JSON).
type Cursor struct {
	CreatedAt time.Time     `json:"created_at"`
	ID        bson.ObjectID `json:"id"`
}

type cursorPayload struct {
	CreatedAt string `json:"created_at"`
	ID        string `json:"id"`
}

func EncodeCursor(c Cursor) string {
	payload := cursorPayload{
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
		ID:        c.ID.Hex(),
	}
	raw, _ := json.Marshal(payload)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor разбирает токен. Любой битый токен — это ошибка клиента,
// а не not found и не паника.
func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, InvalidInputf("cursor is not valid base64url")
	}
	var payload cursorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Cursor{}, InvalidInputf("cursor payload is not valid JSON")
	}
	if payload.CreatedAt == "" || payload.ID == "" {
		return Cursor{}, InvalidInputf("cursor payload is missing fields")
	}
	createdAt, err := time.Parse(time.RFC3339Nano, payload.CreatedAt)
	if err != nil {
		return Cursor{}, InvalidInputf("cursor timestamp is invalid")
	}
	id, err := bson.ObjectIDFromHex(payload.ID)
	if err != nil {
		return Cursor{}, InvalidInputf("cursor id is invalid")
	}
	return Cursor{CreatedAt: createdAt.UTC(), ID: id}, nil
}

// ThumbnailName детерминированно выводит ключ миниатюры из ключа оригинала.
// Для разных размеров ключи не пересекаются.
func ThumbnailName(imageKey string, size int) string {
	return fmt.Sprintf("%s_%dx%d", imageKey, size, size)
}
