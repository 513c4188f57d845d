package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"counting-down-back/internal/config"
	"counting-down-back/internal/handler"
	"counting-down-back/internal/service"
	"counting-down-back/internal/storage/mongo"
	"counting-down-back/internal/storage/s3"

	"github.com/joho/godotenv"
)

func main() {
	// Загрузка переменных окружения (local)
	if err := godotenv.Load(".env.local"); err != nil {
		log.Println("Error loading .env.local file")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// БД
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := mongo.Connect(ctx, cfg)
	if err != nil {
		slog.Error("Failed to connect to mongo", "error", err)
		os.Exit(1)
	}
	defer db.Close(context.Background())

	if err := db.EnsureIndexes(ctx); err != nil {
		slog.Error("Failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// S3
	objects, err := s3.NewS3Storage(cfg)
	if err != nil {
		slog.Error("Failed to init S3 storage", "error", err)
		os.Exit(1)
	}

	// Сервисы
	tasks := service.NewTasks(time.Minute)
	authService := service.NewAuthService(cfg, db.Sessions)
	imageService := service.NewImageService(cfg, db.Images, objects, tasks)
	adventService := service.NewAdventService(cfg, db.Advent, objects, tasks)
	todoService := service.NewTodoService(db.Todos)
	togetherService := service.NewTogetherListService(db.Together)
	messageService := service.NewMessageService(db.Messages)
	flightService := service.NewFlightService(db.Flights, db.Airports)

	// Обработчик
	h := handler.NewHandler(cfg, authService, imageService, adventService,
		todoService, togetherService, messageService, flightService)
	router := h.SetupRouter()

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Корректная остановка: ждем сигнал, гасим сервер, дожидаемся фоновых задач
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	tasks.Wait()
	slog.Info("Server stopped")
}
