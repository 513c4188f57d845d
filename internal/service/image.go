package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"counting-down-back/internal/config"
	"counting-down-back/internal/imageutil"
	"counting-down-back/internal/model"
	"counting-down-back/internal/shared"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ImageMetadataStore — персистентность метаданных (Mongo)
type ImageMetadataStore interface {
	Create(ctx context.Context, meta model.ImageMetadata) (*model.ImageMetadata, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*model.ImageMetadata, error)
	GetByKey(ctx context.Context, imageKey string) (*model.ImageMetadata, error)
	ListPage(ctx context.Context, limit int, cursor *shared.Cursor, userFilter *model.UserType) ([]model.ImageMetadata, error)
	Update(ctx context.Context, id bson.ObjectID, upd model.ImageMetadataUpdate) (*model.ImageMetadata, error)
	SoftDelete(ctx context.Context, id bson.ObjectID, now time.Time) (bool, error)
}

// ObjectStore — хранение байтов (S3)
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type ImageService struct {
	cfg     *config.Config
	meta    ImageMetadataStore
	objects ObjectStore
	tasks   *Tasks
}

func NewImageService(cfg *config.Config, meta ImageMetadataStore, objects ObjectStore, tasks *Tasks) *ImageService {
	return &ImageService{cfg: cfg, meta: meta, objects: objects, tasks: tasks}
}

type ImageCreateInput struct {
	UploadedBy  model.UserType
	Title       string
	Description string
	ImageTags   []string
	MediaType   *string
}

// Create сохраняет оригинал в S3, запускает фоновый прогрев миниатюр и
// создает запись метаданных. Шаги "байты, потом метаданные" не атомарны:
// упавшая вставка метаданных оставляет блоб-сироту, который наружу никогда
// не виден.
func (s *ImageService) Create(ctx context.Context, in ImageCreateInput, data []byte) (*model.ImageMetadata, error) {
	if len(data) == 0 {
		return nil, shared.InvalidInputf("uploaded image is empty")
	}
	if err := validateTitleDescription(in.Title, in.Description); err != nil {
		return nil, err
	}
	title := in.Title
	if title == "" {
		title = model.DefaultImageTitle
	}
	tags := in.ImageTags
	if tags == nil {
		tags = []string{}
	}

	imageKey := shared.GenerateCryptoID(shared.ImageKeyBytes)

	contentType := ""
	if in.MediaType != nil {
		contentType = *in.MediaType
	}
	if err := s.objects.Put(ctx, s.originalKey(imageKey), data, contentType); err != nil {
		return nil, err
	}

	// Прогрев стандартных размеров не блокирует ответ и не может его завалить
	for _, size := range s.cfg.DefaultThumbnailSizes() {
		s.tasks.Submit("thumbnail-prewarm", func(ctx context.Context) error {
			_, err := s.ensureThumbnail(ctx, imageKey, size, contentType)
			return err
		})
	}

	created, err := s.meta.Create(ctx, model.ImageMetadata{
		ImageKey:    imageKey,
		UploadedBy:  in.UploadedBy,
		Title:       title,
		Description: in.Description,
		ImageTags:   tags,
		MediaType:   in.MediaType,
		UploadedAt:  utcNow(),
	})
	if err != nil {
		slog.Error("image bytes stored but metadata insert failed, orphaned blob",
			"image_key", imageKey, "error", err)
		return nil, err
	}
	return created, nil
}

// GetOriginal возвращает байты оригинала. Удаленные и неизвестные ключи
// неразличимы для клиента.
func (s *ImageService) GetOriginal(ctx context.Context, imageKey string) ([]byte, string, error) {
	meta, err := s.meta.GetByKey(ctx, imageKey)
	if err != nil {
		return nil, "", err
	}
	if meta == nil {
		return nil, "", shared.NotFoundf("image", imageKey)
	}
	data, err := s.objects.Get(ctx, s.originalKey(imageKey))
	if err != nil {
		return nil, "", err
	}
	if data == nil {
		return nil, "", shared.NotFoundf("image", imageKey)
	}
	return data, mediaTypeOrDefault(meta.MediaType), nil
}

// GetThumbnail возвращает миниатюру, создавая ее при первом обращении.
// Повторные запросы — чистое чтение: однажды записанная миниатюра никогда
// не пересчитывается.
func (s *ImageService) GetThumbnail(ctx context.Context, imageKey string, size int) ([]byte, string, error) {
	if err := s.validateThumbnailSize(size); err != nil {
		return nil, "", err
	}
	meta, err := s.meta.GetByKey(ctx, imageKey)
	if err != nil {
		return nil, "", err
	}
	if meta == nil {
		return nil, "", shared.NotFoundf("image", imageKey)
	}

	contentType := mediaTypeOrDefault(meta.MediaType)
	data, err := s.ensureThumbnail(ctx, imageKey, size, contentType)
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}

func (s *ImageService) ensureThumbnail(ctx context.Context, imageKey string, size int, contentType string) ([]byte, error) {
	return ensureThumbnailAt(ctx, s.objects, imageKey, s.originalKey(imageKey), s.thumbnailKey(imageKey, size), size, contentType)
}

// ensureThumbnailAt реализует "get or create". Гонка двух конкурентных
// создателей допустима: результат детерминирован, оба запишут одни и те же
// байты. Блокировок здесь нет намеренно.
func ensureThumbnailAt(
	ctx context.Context, objects ObjectStore,
	imageKey, originalKey, thumbKey string, size int, contentType string,
) ([]byte, error) {
	existing, err := objects.Get(ctx, thumbKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	original, err := objects.Get(ctx, originalKey)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, shared.NotFoundf("image", imageKey)
	}

	thumb, err := imageutil.Thumbnail(original, size)
	if err != nil {
		return nil, err
	}
	if err := objects.Put(ctx, thumbKey, thumb, contentType); err != nil {
		return nil, err
	}
	return thumb, nil
}

// List выбирает страницу keyset-пагинации и подписывает ссылки
func (s *ImageService) List(ctx context.Context, limit int, cursorToken string, userFilter *model.UserType) (*model.ImagePageResponse, error) {
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}

	var cursor *shared.Cursor
	if cursorToken != "" {
		c, err := shared.DecodeCursor(cursorToken)
		if err != nil {
			return nil, err
		}
		cursor = &c
	}

	// limit+1 — чтобы узнать о следующей странице без отдельного count
	items, err := s.meta.ListPage(ctx, limit+1, cursor, userFilter)
	if err != nil {
		return nil, err
	}

	var nextCursor *string
	if len(items) > limit {
		items = items[:limit]
		last := items[len(items)-1]
		token := shared.EncodeCursor(shared.Cursor{CreatedAt: last.UploadedAt, ID: last.ID})
		nextCursor = &token
	}

	responses := make([]model.ImageMetadataResponse, 0, len(items))
	for _, item := range items {
		resp, err := s.metadataResponse(ctx, item)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return &model.ImagePageResponse{Items: responses, NextCursor: nextCursor}, nil
}

// Подписанные ссылки не проверяют наличие объекта: подпись считается локально
func (s *ImageService) metadataResponse(ctx context.Context, meta model.ImageMetadata) (*model.ImageMetadataResponse, error) {
	ttl := s.cfg.PresignExpires

	url, err := s.objects.PresignGet(ctx, s.originalKey(meta.ImageKey), ttl)
	if err != nil {
		return nil, err
	}
	resp := &model.ImageMetadataResponse{ImageMetadata: meta, URL: url}

	thumbURL, err := s.objects.PresignGet(ctx, s.thumbnailKey(meta.ImageKey, s.cfg.ThumbnailSize), ttl)
	if err != nil {
		return nil, err
	}
	resp.ThumbnailURL = &thumbURL

	thumbXLURL, err := s.objects.PresignGet(ctx, s.thumbnailKey(meta.ImageKey, s.cfg.ThumbnailXLSize), ttl)
	if err != nil {
		return nil, err
	}
	resp.ThumbnailXLURL = &thumbXLURL
	return resp, nil
}

// OriginalURL выдает подписанную ссылку на оригинал
func (s *ImageService) OriginalURL(ctx context.Context, imageKey string, expiresIn time.Duration) (*model.ImagePresignedURLResponse, error) {
	meta, err := s.meta.GetByKey(ctx, imageKey)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, shared.NotFoundf("image", imageKey)
	}

	ttl := s.clampTTL(expiresIn)
	url, err := s.objects.PresignGet(ctx, s.originalKey(imageKey), ttl)
	if err != nil {
		return nil, err
	}
	return &model.ImagePresignedURLResponse{
		ImageKey:  imageKey,
		URL:       url,
		ExpiresIn: int(ttl.Seconds()),
	}, nil
}

// ThumbnailURL выдает подписанную ссылку на миниатюру, при необходимости
// создав ее
func (s *ImageService) ThumbnailURL(ctx context.Context, imageKey string, size int, expiresIn time.Duration) (*model.ImagePresignedURLResponse, error) {
	if err := s.validateThumbnailSize(size); err != nil {
		return nil, err
	}
	meta, err := s.meta.GetByKey(ctx, imageKey)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, shared.NotFoundf("image", imageKey)
	}

	if _, err := s.ensureThumbnail(ctx, imageKey, size, mediaTypeOrDefault(meta.MediaType)); err != nil {
		return nil, err
	}

	ttl := s.clampTTL(expiresIn)
	url, err := s.objects.PresignGet(ctx, s.thumbnailKey(imageKey, size), ttl)
	if err != nil {
		return nil, err
	}
	return &model.ImagePresignedURLResponse{
		ImageKey:  imageKey,
		URL:       url,
		ExpiresIn: int(ttl.Seconds()),
	}, nil
}

func (s *ImageService) Update(ctx context.Context, id string, upd model.ImageMetadataUpdate) (*model.ImageMetadata, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, shared.InvalidInputf("invalid image id %q", id)
	}
	title := ""
	if upd.Title != nil {
		title = *upd.Title
	}
	description := ""
	if upd.Description != nil {
		description = *upd.Description
	}
	if err := validateTitleDescription(title, description); err != nil {
		return nil, err
	}

	meta, err := s.meta.Update(ctx, oid, upd)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, shared.NotFoundf("image", id)
	}
	return meta, nil
}

// Delete помечает запись удаленной. Байты оригинала и миниатюр в S3
// не трогаем: живые подписанные ссылки продолжают работать.
// (Don't delete images for now.)
func (s *ImageService) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return shared.InvalidInputf("invalid image id %q", id)
	}
	deleted, err := s.meta.SoftDelete(ctx, oid, utcNow())
	if err != nil {
		return err
	}
	if !deleted {
		return shared.NotFoundf("image", id)
	}
	return nil
}

func (s *ImageService) validateThumbnailSize(size int) error {
	if size <= 0 {
		return shared.InvalidInputf("thumbnail size must be positive, got %d", size)
	}
	if slices.Contains(s.cfg.DefaultThumbnailSizes(), size) {
		return nil
	}
	if !s.cfg.ThumbnailAllowCustom {
		return shared.InvalidInputf("custom thumbnail sizes are disabled")
	}
	if size < s.cfg.ThumbnailMinSize || size > s.cfg.ThumbnailMaxSize {
		return shared.InvalidInputf("thumbnail size %d is out of bounds [%d, %d]",
			size, s.cfg.ThumbnailMinSize, s.cfg.ThumbnailMaxSize)
	}
	return nil
}

func (s *ImageService) clampTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return s.cfg.PresignExpires
	}
	if ttl > s.cfg.MaxPresignExpires {
		return s.cfg.MaxPresignExpires
	}
	return ttl
}

func (s *ImageService) originalKey(imageKey string) string {
	return s.cfg.ImageFolder + imageKey
}

func (s *ImageService) thumbnailKey(imageKey string, size int) string {
	return s.cfg.ThumbnailFolder + shared.ThumbnailName(imageKey, size)
}

func validateTitleDescription(title, description string) error {
	if len(title) > model.TitleMaxLength {
		return shared.InvalidInputf("title exceeds %d characters", model.TitleMaxLength)
	}
	if len(description) > model.DescriptionMaxLength {
		return shared.InvalidInputf("description exceeds %d characters", model.DescriptionMaxLength)
	}
	return nil
}

func mediaTypeOrDefault(mt *string) string {
	if mt != nil && *mt != "" {
		return *mt
	}
	return "application/octet-stream"
}

// Mongo хранит даты с точностью до миллисекунды, поэтому усечение здесь,
// а не на границе с БД
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
