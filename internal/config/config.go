package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config собирает все настройки приложения из переменных окружения.
// Значения по умолчанию рассчитаны на локальную разработку.
type Config struct {
	AppEnv       string
	Port         string
	FrontendURLs []string

	MongoURL     string
	MongoAppName string
	MongoDBName  string

	AWSRegion    string
	AWSBucket    string
	AWSAccessKey string
	AWSSecretKey string
	AWSEndpoint  string // для S3-совместимых сервисов; пусто — обычный AWS

	ImageFolder     string
	ThumbnailFolder string

	ThumbnailSize        int
	ThumbnailXLSize      int
	ThumbnailSizes       []int // явный список; если задан, заменяет Size/XLSize
	ThumbnailAllowCustom bool
	ThumbnailMinSize     int
	ThumbnailMaxSize     int
	PresignExpires       time.Duration
	MaxPresignExpires    time.Duration

	AccessKeyDanfeng string
	AccessKeyJoris   string
	SessionDuration  time.Duration

	DefaultPageSize int
	MaxPageSize     int

	RateLimitRequests int
	RateLimitSeconds  int
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:       getEnv("APP_ENV", "dev"),
		Port:         getEnv("PORT", "8000"),
		FrontendURLs: getEnvList("FRONTEND_URLS", nil),

		MongoURL:     getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoAppName: getEnv("MONGO_APP_NAME", "counting_down_app"),
		MongoDBName:  getEnv("MONGO_DB_NAME", "counting_down"),

		AWSRegion:    getEnv("AWS_REGION", "eu-west-1"),
		AWSBucket:    getEnv("AWS_S3_BUCKET", "my-app-bucket"),
		AWSAccessKey: os.Getenv("AWS_ACCESS_KEY"),
		AWSSecretKey: os.Getenv("AWS_SECRET_KEY"),
		AWSEndpoint:  os.Getenv("AWS_S3_ENDPOINT"),

		ImageFolder:     getEnv("AWS_S3_IMAGE_FOLDER", "images/"),
		ThumbnailFolder: getEnv("AWS_S3_THUMBNAIL_FOLDER", "thumbnails/"),

		ThumbnailSize:        getEnvInt("THUMBNAIL_SIZE", 128),
		ThumbnailXLSize:      getEnvInt("THUMBNAIL_XL_SIZE", 1200),
		ThumbnailAllowCustom: getEnvBool("THUMBNAIL_ALLOW_CUSTOM_SIZES", true),
		ThumbnailMinSize:     getEnvInt("THUMBNAIL_MIN_SIZE", 32),
		ThumbnailMaxSize:     getEnvInt("THUMBNAIL_MAX_SIZE", 2000),
		PresignExpires:       time.Duration(getEnvInt("AWS_S3_PRESIGN_EXPIRES", 3600)) * time.Second,
		MaxPresignExpires:    time.Duration(getEnvInt("AWS_S3_MAX_PRESIGN_EXPIRES", 24*3600)) * time.Second,

		AccessKeyDanfeng: os.Getenv("ACCESS_KEY_DANFENG"),
		AccessKeyJoris:   os.Getenv("ACCESS_KEY_JORIS"),
		SessionDuration:  time.Duration(getEnvInt("SESSION_DURATION", 7*24*3600)) * time.Second,

		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 20),
		MaxPageSize:     getEnvInt("MAX_PAGE_SIZE", 100),

		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 50),
		RateLimitSeconds:  getEnvInt("RATE_LIMIT_SECONDS", 1),
	}

	sizes, err := getEnvIntList("THUMBNAIL_SIZES")
	if err != nil {
		return nil, err
	}
	cfg.ThumbnailSizes = sizes

	// В prod секретные ключи доступа обязательны
	if strings.EqualFold(cfg.AppEnv, "prod") {
		var missing []string
		if cfg.AccessKeyDanfeng == "" {
			missing = append(missing, "ACCESS_KEY_DANFENG")
		}
		if cfg.AccessKeyJoris == "" {
			missing = append(missing, "ACCESS_KEY_JORIS")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("missing required env vars in production: %s", strings.Join(missing, ", "))
		}
	}

	return cfg, nil
}

// DefaultThumbnailSizes возвращает размеры, которые прогреваются при загрузке
// и для которых выдаются подписанные ссылки.
func (c *Config) DefaultThumbnailSizes() []int {
	if len(c.ThumbnailSizes) > 0 {
		return c.ThumbnailSizes
	}
	return []int{c.ThumbnailSize, c.ThumbnailXLSize}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getEnvList разбирает список через запятую: "https://a.com, https://b.com"
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func getEnvIntList(key string) ([]int, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(v, ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid value in %s: %q", key, p)
		}
		out = append(out, n)
	}
	return out, nil
}
