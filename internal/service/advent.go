package service

import (
	"context"

	"counting-down-back/internal/config"
	"counting-down-back/internal/model"
	"counting-down-back/internal/shared"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// AdventStore — персистентность записей календаря (Mongo)
type AdventStore interface {
	Create(ctx context.Context, advent model.Advent) (*model.Advent, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*model.Advent, error)
	ListByUser(ctx context.Context, user model.UserType) ([]model.Advent, error)
	ListByDay(ctx context.Context, day int, user model.UserType) ([]model.Advent, error)
	Delete(ctx context.Context, id bson.ObjectID) (bool, error)
}

// AdventService повторяет механику картинок (ключи, S3, миниатюры) для
// записей адвент-календаря, но ведет их в отдельной коллекции.
type AdventService struct {
	cfg     *config.Config
	advents AdventStore
	objects ObjectStore
	tasks   *Tasks
}

func NewAdventService(cfg *config.Config, advents AdventStore, objects ObjectStore, tasks *Tasks) *AdventService {
	return &AdventService{cfg: cfg, advents: advents, objects: objects, tasks: tasks}
}

type AdventCreateInput struct {
	Day         int
	UploadedBy  model.UserType
	Title       string
	Description string
	MediaType   *string
}

func (s *AdventService) Create(ctx context.Context, in AdventCreateInput, data []byte) (*model.AdventResponse, error) {
	if len(data) == 0 {
		return nil, shared.InvalidInputf("uploaded image is empty")
	}
	if in.Day < model.AdventDayMin || in.Day > model.AdventDayMax {
		return nil, shared.InvalidInputf("advent day %d is out of bounds [%d, %d]",
			in.Day, model.AdventDayMin, model.AdventDayMax)
	}
	if err := validateTitleDescription(in.Title, in.Description); err != nil {
		return nil, err
	}

	imageKey := shared.GenerateCryptoID(shared.ImageKeyBytes)
	contentType := ""
	if in.MediaType != nil {
		contentType = *in.MediaType
	}
	if err := s.objects.Put(ctx, s.originalKey(imageKey), data, contentType); err != nil {
		return nil, err
	}

	// Прогреваем только стандартную миниатюру: календарь отдает превью одним
	// размером
	s.tasks.Submit("advent-thumbnail-prewarm", func(ctx context.Context) error {
		return s.ensureThumbnail(ctx, imageKey, contentType)
	})

	created, err := s.advents.Create(ctx, model.Advent{
		Day:         in.Day,
		UploadedBy:  in.UploadedBy,
		Title:       in.Title,
		Description: in.Description,
		ImageKey:    imageKey,
		MediaType:   in.MediaType,
		UploadedAt:  utcNow(),
	})
	if err != nil {
		return nil, err
	}
	return s.adventResponse(ctx, *created)
}

// ListUploadedBy возвращает записи, загруженные указанным пользователем
func (s *AdventService) ListUploadedBy(ctx context.Context, user model.UserType) ([]model.AdventResponse, error) {
	items, err := s.advents.ListByUser(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.adventResponses(ctx, items)
}

// ListForDay возвращает записи пользователя на день календаря
func (s *AdventService) ListForDay(ctx context.Context, day int, user model.UserType) ([]model.AdventResponse, error) {
	if day < model.AdventDayMin || day > model.AdventDayMax {
		return nil, shared.InvalidInputf("advent day %d is out of bounds [%d, %d]",
			day, model.AdventDayMin, model.AdventDayMax)
	}
	items, err := s.advents.ListByDay(ctx, day, user)
	if err != nil {
		return nil, err
	}
	return s.adventResponses(ctx, items)
}

// Today возвращает записи второго пользователя на сегодняшний календарный день
func (s *AdventService) Today(ctx context.Context, forUser model.UserType) ([]model.AdventResponse, error) {
	return s.ListForDay(ctx, utcNow().Day(), forUser)
}

func (s *AdventService) Get(ctx context.Context, id string) (*model.AdventResponse, error) {
	oid, err := parseObjectID(id, "advent item")
	if err != nil {
		return nil, err
	}
	advent, err := s.advents.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if advent == nil {
		return nil, shared.NotFoundf("advent item", id)
	}
	return s.adventResponse(ctx, *advent)
}

// Delete удаляет запись календаря. Байты в S3 не трогаем, как и у обычных
// картинок. (Don't delete images for now.)
func (s *AdventService) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id, "advent item")
	if err != nil {
		return err
	}
	deleted, err := s.advents.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if !deleted {
		return shared.NotFoundf("advent item", id)
	}
	return nil
}

func (s *AdventService) adventResponses(ctx context.Context, items []model.Advent) ([]model.AdventResponse, error) {
	responses := make([]model.AdventResponse, 0, len(items))
	for _, item := range items {
		resp, err := s.adventResponse(ctx, item)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *AdventService) adventResponse(ctx context.Context, advent model.Advent) (*model.AdventResponse, error) {
	ttl := s.cfg.PresignExpires
	url, err := s.objects.PresignGet(ctx, s.originalKey(advent.ImageKey), ttl)
	if err != nil {
		return nil, err
	}
	resp := &model.AdventResponse{Advent: advent, URL: url}

	thumbURL, err := s.objects.PresignGet(ctx, s.thumbnailKey(advent.ImageKey), ttl)
	if err != nil {
		return nil, err
	}
	resp.ThumbnailURL = &thumbURL
	return resp, nil
}

func (s *AdventService) ensureThumbnail(ctx context.Context, imageKey, contentType string) error {
	_, err := ensureThumbnailAt(ctx, s.objects, imageKey,
		s.originalKey(imageKey), s.thumbnailKey(imageKey), s.cfg.ThumbnailSize, contentType)
	return err
}

func (s *AdventService) originalKey(imageKey string) string {
	return s.cfg.ImageFolder + imageKey
}

func (s *AdventService) thumbnailKey(imageKey string) string {
	return s.cfg.ThumbnailFolder + shared.ThumbnailName(imageKey, s.cfg.ThumbnailSize)
}
