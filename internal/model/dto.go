package model

import "time"

// ErrorMessage представляет сообщение об ошибке
type ErrorMessage struct {
	Error string `json:"error" example:"Invalid input"`
}

type LoginRequest struct {
	AccessKey string `json:"access_key" binding:"required"`
}

type SessionResponse struct {
	SessionID string    `json:"session_id"`
	UserType  UserType  `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type BooleanResponse struct {
	Success bool `json:"success" example:"true"`
}

// ImageMetadataResponse — метаданные вместе с подписанными ссылками
type ImageMetadataResponse struct {
	ImageMetadata
	URL            string  `json:"url"`
	ThumbnailURL   *string `json:"thumbnail_url,omitempty"`
	ThumbnailXLURL *string `json:"thumbnail_xl_url,omitempty"`
}

// ImagePageResponse — страница keyset-пагинации
type ImagePageResponse struct {
	Items []ImageMetadataResponse `json:"items"`
	// next_cursor == null означает конец списка
	NextCursor *string `json:"next_cursor"`
}

type ImagePresignedURLResponse struct {
	ImageKey  string `json:"image_key"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in" example:"3600"`
}

type SessionCountResponse struct {
	ActiveSessions int64 `json:"active_sessions"`
}
