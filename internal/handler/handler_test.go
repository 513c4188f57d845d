package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"counting-down-back/internal/config"
	"counting-down-back/internal/model"
	"counting-down-back/internal/service"
	"counting-down-back/internal/shared"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// In-memory хранилища вместо Mongo и S3: роутер и сервисы при этом настоящие

type memMetaStore struct {
	mu    sync.Mutex
	items []model.ImageMetadata
}

func (m *memMetaStore) Create(_ context.Context, meta model.ImageMetadata) (*model.ImageMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if meta.ID.IsZero() {
		meta.ID = bson.NewObjectID()
	}
	m.items = append(m.items, meta)
	out := meta
	return &out, nil
}

func (m *memMetaStore) GetByID(_ context.Context, id bson.ObjectID) (*model.ImageMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ID == id && item.DeletedAt == nil {
			out := item
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memMetaStore) GetByKey(_ context.Context, imageKey string) (*model.ImageMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ImageKey == imageKey && item.DeletedAt == nil {
			out := item
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memMetaStore) ListPage(_ context.Context, limit int, cursor *shared.Cursor, userFilter *model.UserType) ([]model.ImageMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var live []model.ImageMetadata
	for _, item := range m.items {
		if item.DeletedAt != nil {
			continue
		}
		if userFilter != nil && item.UploadedBy != *userFilter {
			continue
		}
		if cursor != nil {
			after := item.UploadedAt.Before(cursor.CreatedAt) ||
				(item.UploadedAt.Equal(cursor.CreatedAt) && bytes.Compare(item.ID[:], cursor.ID[:]) < 0)
			if !after {
				continue
			}
		}
		live = append(live, item)
	}
	for i := range live {
		for j := i + 1; j < len(live); j++ {
			a, b := live[i], live[j]
			less := a.UploadedAt.Before(b.UploadedAt) ||
				(a.UploadedAt.Equal(b.UploadedAt) && bytes.Compare(a.ID[:], b.ID[:]) < 0)
			if less {
				live[i], live[j] = b, a
			}
		}
	}
	if len(live) > limit {
		live = live[:limit]
	}
	return live, nil
}

func (m *memMetaStore) Update(_ context.Context, id bson.ObjectID, upd model.ImageMetadataUpdate) (*model.ImageMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, item := range m.items {
		if item.ID != id || item.DeletedAt != nil {
			continue
		}
		if upd.Title != nil {
			m.items[i].Title = *upd.Title
		}
		if upd.Description != nil {
			m.items[i].Description = *upd.Description
		}
		if upd.ImageTags != nil {
			m.items[i].ImageTags = upd.ImageTags
		}
		out := m.items[i]
		return &out, nil
	}
	return nil, nil
}

func (m *memMetaStore) SoftDelete(_ context.Context, id bson.ObjectID, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, item := range m.items {
		if item.ID == id && item.DeletedAt == nil {
			m.items[i].DeletedAt = &now
			return true, nil
		}
	}
	return false, nil
}

type memObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemObjectStore() *memObjectStore {
	return &memObjectStore{objects: map[string][]byte{}}
}

func (m *memObjectStore) Put(_ context.Context, key string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
	return nil
}

func (m *memObjectStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *memObjectStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *memObjectStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memObjectStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://signed.example/%s?expires=%d", key, int(ttl.Seconds())), nil
}

type memAdventStore struct {
	mu    sync.Mutex
	items []model.Advent
}

func (m *memAdventStore) Create(_ context.Context, advent model.Advent) (*model.Advent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	advent.ID = bson.NewObjectID()
	m.items = append(m.items, advent)
	out := advent
	return &out, nil
}

func (m *memAdventStore) GetByID(_ context.Context, id bson.ObjectID) (*model.Advent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ID == id {
			out := item
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memAdventStore) ListByUser(_ context.Context, user model.UserType) ([]model.Advent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Advent
	for _, item := range m.items {
		if item.UploadedBy == user {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memAdventStore) ListByDay(_ context.Context, day int, user model.UserType) ([]model.Advent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Advent
	for _, item := range m.items {
		if item.Day == day && item.UploadedBy == user {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memAdventStore) Delete(_ context.Context, id bson.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, item := range m.items {
		if item.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memTogetherStore struct {
	mu    sync.Mutex
	items []model.TogetherListItem
}

func (m *memTogetherStore) List(_ context.Context) ([]model.TogetherListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]model.TogetherListItem(nil), m.items...)
	for i := range out {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.Before(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (m *memTogetherStore) Get(_ context.Context, id bson.ObjectID) (*model.TogetherListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ID == id {
			out := item
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memTogetherStore) Create(_ context.Context, item model.TogetherListItem) (*model.TogetherListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = bson.NewObjectID()
	m.items = append(m.items, item)
	out := item
	return &out, nil
}

func (m *memTogetherStore) Update(_ context.Context, id bson.ObjectID, in model.TogetherListItemInput, now time.Time) (*model.TogetherListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, item := range m.items {
		if item.ID == id {
			m.items[i].Title = in.Title
			m.items[i].Category = in.Category
			m.items[i].Completed = in.Completed
			m.items[i].UpdatedAt = now
			out := m.items[i]
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memTogetherStore) SetCompleted(_ context.Context, id bson.ObjectID, completed bool, now time.Time) (*model.TogetherListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, item := range m.items {
		if item.ID == id {
			m.items[i].Completed = completed
			m.items[i].UpdatedAt = now
			out := m.items[i]
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memTogetherStore) Delete(_ context.Context, id bson.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, item := range m.items {
		if item.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memSessionStore struct {
	mu       sync.Mutex
	sessions []model.Session
}

func (m *memSessionStore) Create(_ context.Context, session model.Session) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session.ID = bson.NewObjectID()
	m.sessions = append(m.sessions, session)
	out := session
	return &out, nil
}

func (m *memSessionStore) GetByID(_ context.Context, sessionID string, now time.Time) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.SessionID == sessionID && s.ExpiresAt.After(now) {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memSessionStore) GetByUser(_ context.Context, user model.UserType, now time.Time) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.UserType == user && s.ExpiresAt.After(now) {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memSessionStore) Delete(_ context.Context, sessionID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []model.Session
	var deleted int64
	for _, s := range m.sessions {
		if s.SessionID == sessionID {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	m.sessions = kept
	return deleted, nil
}

func (m *memSessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []model.Session
	var deleted int64
	for _, s := range m.sessions {
		if !s.ExpiresAt.After(now) {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	m.sessions = kept
	return deleted, nil
}

func (m *memSessionStore) DeleteAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deleted := int64(len(m.sessions))
	m.sessions = nil
	return deleted, nil
}

func (m *memSessionStore) CountActive(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, s := range m.sessions {
		if s.ExpiresAt.After(now) {
			count++
		}
	}
	return count, nil
}

type fixture struct {
	router  *gin.Engine
	meta    *memMetaStore
	objects *memObjectStore
	tasks   *service.Tasks
}

func newFixture() *fixture {
	cfg := &config.Config{
		AppEnv:               "test",
		ImageFolder:          "images/",
		ThumbnailFolder:      "thumbnails/",
		ThumbnailSize:        128,
		ThumbnailXLSize:      1200,
		ThumbnailAllowCustom: true,
		ThumbnailMinSize:     32,
		ThumbnailMaxSize:     2000,
		PresignExpires:       time.Hour,
		MaxPresignExpires:    24 * time.Hour,
		SessionDuration:      7 * 24 * time.Hour,
		DefaultPageSize:      20,
		MaxPageSize:          100,
		AccessKeyDanfeng:     "danfeng-key",
		AccessKeyJoris:       "joris-key",
		RateLimitRequests:    1000,
		RateLimitSeconds:     1,
	}
	meta := &memMetaStore{}
	objects := newMemObjectStore()
	tasks := service.NewTasks(time.Minute)
	auth := service.NewAuthService(cfg, &memSessionStore{})
	images := service.NewImageService(cfg, meta, objects, tasks)
	advent := service.NewAdventService(cfg, &memAdventStore{}, objects, tasks)
	together := service.NewTogetherListService(&memTogetherStore{})
	h := NewHandler(cfg, auth, images, advent, nil, together, nil, nil)
	return &fixture{router: h.SetupRouter(), meta: meta, objects: objects, tasks: tasks}
}

func (f *fixture) do(t *testing.T, method, path, sessionID string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) login(t *testing.T) string {
	return f.loginAs(t, "danfeng-key")
}

func (f *fixture) loginAs(t *testing.T, accessKey string) string {
	t.Helper()
	body := strings.NewReader(fmt.Sprintf(`{"access_key":%q}`, accessKey))
	w := f.do(t, http.MethodPost, "/api/v1/auth/login", "", body, "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp model.SessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.SessionID
}

func multipartUpload(t *testing.T, uploader, title string, file []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("uploader", uploader)
	if title != "" {
		mw.WriteField("title", title)
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="photo.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create multipart part: %v", err)
	}
	part.Write(file)
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func smallJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height)), nil); err != nil {
		t.Fatalf("jpeg.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestHealthIsPublic(t *testing.T) {
	f := newFixture()
	w := f.do(t, http.MethodGet, "/healthz", "", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestMissingSessionIsRejected(t *testing.T) {
	f := newFixture()
	w := f.do(t, http.MethodGet, "/api/v1/images", "", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	w = f.do(t, http.MethodGet, "/api/v1/images", "bogus-session", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status with bogus session = %d, want 401", w.Code)
	}
}

func TestLoginWrongKey(t *testing.T) {
	f := newFixture()
	body := strings.NewReader(`{"access_key":"who-dis"}`)
	w := f.do(t, http.MethodPost, "/api/v1/auth/login", "", body, "application/json")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestUploadDownloadThumbnailFlow(t *testing.T) {
	f := newFixture()
	session := f.login(t)

	body, contentType := multipartUpload(t, "Danfeng", "sunset", smallJPEG(t, 600, 300))
	w := f.do(t, http.MethodPost, "/api/v1/images", session, body, contentType)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body = %s", w.Code, w.Body.String())
	}
	var created model.ImageMetadata
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if created.Title != "sunset" || created.UploadedBy != model.UserDanfeng {
		t.Errorf("created = %+v, want title sunset by Danfeng", created)
	}
	f.tasks.Wait()

	// Оригинал отдается как есть
	w = f.do(t, http.MethodGet, "/api/v1/images/"+created.ImageKey, session, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get original status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("original content type = %q, want image/jpeg", ct)
	}

	// Миниатюра вписана в запрошенный квадрат
	w = f.do(t, http.MethodGet, "/api/v1/images/"+created.ImageKey+"/thumbnail?size=64", session, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("thumbnail status = %d, body = %s", w.Code, w.Body.String())
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if cfg.Width > 64 || cfg.Height > 64 {
		t.Errorf("thumbnail %dx%d exceeds 64", cfg.Width, cfg.Height)
	}

	// Недопустимый размер отклоняется
	w = f.do(t, http.MethodGet, "/api/v1/images/"+created.ImageKey+"/thumbnail?size=9000", session, nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("oversized thumbnail status = %d, want 400", w.Code)
	}
}

func TestUnknownImageIs404(t *testing.T) {
	f := newFixture()
	session := f.login(t)
	w := f.do(t, http.MethodGet, "/api/v1/images/deadbeefdeadbeefdeadbeefdeadbeef", session, nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestListPaginationOverHTTP(t *testing.T) {
	f := newFixture()
	session := f.login(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		f.meta.Create(context.Background(), model.ImageMetadata{
			ImageKey:   shared.GenerateCryptoID(shared.ImageKeyBytes),
			UploadedBy: model.UserDanfeng,
			Title:      fmt.Sprintf("image %d", i),
			ImageTags:  []string{},
			UploadedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	var pageSizes []int
	cursor := ""
	for {
		path := "/api/v1/images?limit=2"
		if cursor != "" {
			path += "&cursor=" + cursor
		}
		w := f.do(t, http.MethodGet, path, session, nil, "")
		if w.Code != http.StatusOK {
			t.Fatalf("list status = %d, body = %s", w.Code, w.Body.String())
		}
		var page model.ImagePageResponse
		if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
			t.Fatalf("decode page: %v", err)
		}
		pageSizes = append(pageSizes, len(page.Items))
		if page.NextCursor == nil {
			break
		}
		cursor = *page.NextCursor
	}

	want := []int{2, 2, 1}
	if len(pageSizes) != len(want) {
		t.Fatalf("page sizes = %v, want %v", pageSizes, want)
	}
	for i := range want {
		if pageSizes[i] != want[i] {
			t.Fatalf("page sizes = %v, want %v", pageSizes, want)
		}
	}
}

func TestMalformedCursorIs400(t *testing.T) {
	f := newFixture()
	session := f.login(t)
	w := f.do(t, http.MethodGet, "/api/v1/images?cursor=%40%40broken%40%40", session, nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	f := newFixture()
	session := f.login(t)

	w := f.do(t, http.MethodDelete, "/api/v1/auth/session", session, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}

	w = f.do(t, http.MethodGet, "/api/v1/images", session, nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status after logout = %d, want 401", w.Code)
	}
}

func multipartAdvent(t *testing.T, day, title, description string, file []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("day", day)
	mw.WriteField("title", title)
	mw.WriteField("description", description)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="surprise.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create multipart part: %v", err)
	}
	part.Write(file)
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func (f *fixture) adventList(t *testing.T, path, session string) []model.AdventResponse {
	t.Helper()
	w := f.do(t, http.MethodGet, path, session, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s status = %d, body = %s", path, w.Code, w.Body.String())
	}
	var items []model.AdventResponse
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode %s response: %v", path, err)
	}
	return items
}

func TestAdventCalendarFlow(t *testing.T) {
	f := newFixture()
	danfeng := f.login(t)
	joris := f.loginAs(t, "joris-key")

	body, contentType := multipartAdvent(t, "5", "day five", "open carefully", smallJPEG(t, 200, 100))
	w := f.do(t, http.MethodPost, "/api/v1/advent", danfeng, body, contentType)
	if w.Code != http.StatusCreated {
		t.Fatalf("create advent status = %d, body = %s", w.Code, w.Body.String())
	}
	var created model.AdventResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Day != 5 || created.UploadedBy != model.UserDanfeng {
		t.Errorf("created = %+v, want day 5 by Danfeng", created.Advent)
	}
	if created.URL == "" || created.ThumbnailURL == nil {
		t.Errorf("created URLs = %q/%v, want both signed", created.URL, created.ThumbnailURL)
	}
	f.tasks.Wait()

	// Автор видит запись среди своих, второй пользователь среди адресованных ему
	if got := f.adventList(t, "/api/v1/advent/by_me", danfeng); len(got) != 1 {
		t.Fatalf("by_me (author) = %d items, want 1", len(got))
	}
	if got := f.adventList(t, "/api/v1/advent/for_me", joris); len(got) != 1 {
		t.Fatalf("for_me (recipient) = %d items, want 1", len(got))
	}
	if got := f.adventList(t, "/api/v1/advent/by_me", joris); len(got) != 0 {
		t.Fatalf("by_me (recipient) = %d items, want 0", len(got))
	}
	if got := f.adventList(t, "/api/v1/advent/day/5", danfeng); len(got) != 1 {
		t.Fatalf("day/5 = %d items, want 1", len(got))
	}

	// Удаление записи не трогает байты в S3
	w = f.do(t, http.MethodDelete, "/api/v1/advent/"+created.ID.Hex(), danfeng, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete advent status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := f.adventList(t, "/api/v1/advent/by_me", danfeng); len(got) != 0 {
		t.Fatalf("by_me after delete = %d items, want 0", len(got))
	}
	if ok, _ := f.objects.Exists(context.Background(), "images/"+created.ImageKey); !ok {
		t.Errorf("original bytes removed after advent delete")
	}
}

func TestAdventDayOutOfBounds(t *testing.T) {
	f := newFixture()
	session := f.login(t)

	body, contentType := multipartAdvent(t, "32", "late", "too late", smallJPEG(t, 100, 100))
	w := f.do(t, http.MethodPost, "/api/v1/advent", session, body, contentType)
	if w.Code != http.StatusBadRequest {
		t.Errorf("create day 32 status = %d, want 400", w.Code)
	}

	w = f.do(t, http.MethodGet, "/api/v1/advent/day/0", session, nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("day 0 status = %d, want 400", w.Code)
	}
}

func TestTogetherListFlow(t *testing.T) {
	f := newFixture()
	session := f.login(t)

	body := strings.NewReader(`{"title":"book flights","category":"travel"}`)
	w := f.do(t, http.MethodPost, "/api/v1/together", session, body, "application/json")
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var created model.TogetherListItem
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Title != "book flights" || created.Completed {
		t.Errorf("created = %+v, want incomplete 'book flights'", created)
	}

	w = f.do(t, http.MethodPost, "/api/v1/together/"+created.ID.Hex()+"/toggle", session, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("toggle status = %d, body = %s", w.Code, w.Body.String())
	}
	var toggled model.TogetherListItem
	if err := json.Unmarshal(w.Body.Bytes(), &toggled); err != nil {
		t.Fatalf("decode toggle response: %v", err)
	}
	if !toggled.Completed {
		t.Errorf("toggled.Completed = false, want true")
	}

	// PUT заменяет пункт целиком
	body = strings.NewReader(`{"title":"book trains","category":"travel","completed":false}`)
	w = f.do(t, http.MethodPut, "/api/v1/together/"+created.ID.Hex(), session, body, "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}
	var updated model.TogetherListItem
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if updated.Title != "book trains" || updated.Completed {
		t.Errorf("updated = %+v, want incomplete 'book trains'", updated)
	}

	w = f.do(t, http.MethodDelete, "/api/v1/together/"+created.ID.Hex(), session, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body = %s", w.Code, w.Body.String())
	}
	w = f.do(t, http.MethodGet, "/api/v1/together/"+created.ID.Hex(), session, nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", w.Code)
	}
}

func TestTogetherRejectsBlankFields(t *testing.T) {
	f := newFixture()
	session := f.login(t)
	body := strings.NewReader(`{"title":"   ","category":"travel"}`)
	w := f.do(t, http.MethodPost, "/api/v1/together", session, body, "application/json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
