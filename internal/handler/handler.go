package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"counting-down-back/internal/config"
	"counting-down-back/internal/model"
	"counting-down-back/internal/service"
	"counting-down-back/internal/shared"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const sessionHeader = "X-Session-Id"

type Handler struct {
	cfg      *config.Config
	auth     *service.AuthService
	images   *service.ImageService
	advent   *service.AdventService
	todos    *service.TodoService
	together *service.TogetherListService
	messages *service.MessageService
	flights  *service.FlightService
}

func NewHandler(
	cfg *config.Config,
	auth *service.AuthService,
	images *service.ImageService,
	advent *service.AdventService,
	todos *service.TodoService,
	together *service.TogetherListService,
	messages *service.MessageService,
	flights *service.FlightService,
) *Handler {
	return &Handler{
		cfg:      cfg,
		auth:     auth,
		images:   images,
		advent:   advent,
		todos:    todos,
		together: together,
		messages: messages,
		flights:  flights,
	}
}

func (h *Handler) SetupRouter() *gin.Engine {
	if h.cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(RequestIDMiddleware())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("panic recovered", "error", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorMessage{Error: "internal server error"})
	}))
	r.Use(RateLimitMiddleware(h.cfg.RateLimitRequests, h.cfg.RateLimitSeconds))

	// Настройка CORS
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", sessionHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(h.cfg.FrontendURLs) > 0 {
		corsCfg.AllowOrigins = h.cfg.FrontendURLs
	} else {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", h.Health)

	v1 := r.Group("/api/v1")
	v1.POST("/auth/login", h.Login)

	authed := v1.Group("", h.SessionMiddleware())
	{
		authed.GET("/auth/session", h.GetSession)
		authed.DELETE("/auth/session", h.Logout)
		authed.GET("/auth/sessions/count", h.CountSessions)

		authed.GET("/images", h.ListImages)
		authed.POST("/images", h.UploadImage)
		authed.GET("/images/:key", h.GetImage)
		authed.GET("/images/:key/thumbnail", h.GetThumbnail)
		authed.GET("/images/:key/url", h.GetImageURL)
		authed.GET("/images/:key/thumbnail/url", h.GetThumbnailURL)
		authed.PATCH("/images/:id", h.UpdateImage)
		authed.DELETE("/images/:id", h.DeleteImage)

		authed.GET("/advent/by_me", h.ListAdventByMe)
		authed.GET("/advent/for_me", h.ListAdventForMe)
		authed.GET("/advent/today", h.TodayAdvent)
		authed.GET("/advent/day/:day", h.GetAdventByDay)
		authed.GET("/advent/:id", h.GetAdvent)
		authed.POST("/advent", h.CreateAdvent)
		authed.DELETE("/advent/:id", h.DeleteAdvent)

		authed.GET("/todos", h.ListTodos)
		authed.POST("/todos", h.CreateTodo)
		authed.GET("/todos/:id", h.GetTodo)
		authed.PATCH("/todos/:id", h.UpdateTodo)
		authed.DELETE("/todos/:id", h.DeleteTodo)
		authed.POST("/todos/:id/toggle", h.ToggleTodo)

		authed.GET("/together", h.ListTogetherItems)
		authed.POST("/together", h.CreateTogetherItem)
		authed.GET("/together/:id", h.GetTogetherItem)
		authed.PUT("/together/:id", h.UpdateTogetherItem)
		authed.DELETE("/together/:id", h.DeleteTogetherItem)
		authed.POST("/together/:id/toggle", h.ToggleTogetherItem)

		authed.GET("/messages", h.ListMessages)
		authed.POST("/messages", h.CreateMessage)
		authed.DELETE("/messages/:id", h.DeleteMessage)

		authed.GET("/flights", h.ListFlights)
		authed.POST("/flights", h.CreateFlight)
		authed.GET("/flights/active", h.ListActiveFlights)
		authed.GET("/flights/recent", h.MostRecentActiveFlight)
		authed.GET("/flights/:id", h.GetFlight)
		authed.PATCH("/flights/:id", h.UpdateFlight)
		authed.DELETE("/flights/:id", h.DeleteFlight)

		authed.GET("/airports", h.ListAirports)
		authed.GET("/airports/search", h.SearchAirports)
		authed.GET("/airports/:code", h.GetAirport)
	}

	return r
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SessionMiddleware пускает дальше только запросы с живой сессией
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(sessionHeader)
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorMessage{Error: "Missing session"})
			return
		}
		session, err := h.auth.GetSession(c.Request.Context(), sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorMessage{Error: "Invalid or expired session"})
			return
		}
		c.Set("user_type", session.UserType)
		c.Next()
	}
}

// RequestIDMiddleware проставляет идентификатор запроса для трассировки в логах
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-Id", requestID)
		c.Next()
	}
}

// RateLimitMiddleware — общий лимит запросов на процесс
func RateLimitMiddleware(requests, seconds int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(float64(requests)/float64(seconds)), requests)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, model.ErrorMessage{Error: "Rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// abortError переводит ошибку сервиса в HTTP статус
func (h *Handler) abortError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: err.Error()})
	case errors.Is(err, shared.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorMessage{Error: err.Error()})
	case errors.Is(err, shared.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, model.ErrorMessage{Error: "Unauthorized"})
	default:
		slog.Error("request failed", "path", c.Request.URL.Path, "error", err,
			"request_id", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, model.ErrorMessage{Error: "internal server error"})
	}
}
