package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/albumforge/albumforge-api/internal/config"
	"github.com/albumforge/albumforge-api/internal/domain/album"
	"github.com/albumforge/albumforge-api/internal/domain/auth"
	"github.com/albumforge/albumforge-api/internal/domain/export"
	"github.com/albumforge/albumforge-api/internal/domain/photo"
	"github.com/albumforge/albumforge-api/internal/domain/sticker"
	"github.com/albumforge/albumforge-api/internal/domain/user"
	"github.com/albumforge/albumforge-api/internal/middleware"
	"github.com/albumforge/albumforge-api/internal/pkg/database"
	"github.com/albumforge/albumforge-api/internal/pkg/imaging"
	"github.com/albumforge/albumforge-api/internal/pkg/jwt"
	"github.com/albumforge/albumforge-api/internal/pkg/response"
	"github.com/albumforge/albumforge-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting albumforge api")

	// Postgres
	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer database.ClosePostgres(db)

	// Redis is optional; the sticker cache degrades to direct reads without it
	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, continuing without cache")
		redisClient = nil
	}
	if redisClient != nil {
		defer database.CloseRedis(redisClient)
	}

	// Blob storage
	store, err := buildStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)
	authMiddleware := middleware.Auth(jwtService)

	// Repositories
	userRepo := user.NewRepository(db)
	albumRepo := album.NewRepository(db)
	photoRepo := photo.NewRepository(db)
	stickerRepo := sticker.NewRepository(db)

	// Services
	authService := auth.NewService(userRepo, jwtService)
	albumService := album.NewService(albumRepo)
	photoService := photo.NewService(photoRepo, store, imaging.NewProcessor(imaging.DefaultConfig()), cfg.MaxUploadSizeMB)
	stickerService := sticker.NewService(stickerRepo, redisClient)

	renderer := export.NewRenderer(
		export.NewPhotoSource(photoRepo, store),
		export.NewStickerSource(stickerRepo),
	)
	exportService := export.NewService(albumRepo, renderer)

	// Handlers
	authHandler := auth.NewHandler(authService)
	albumHandler := album.NewHandler(albumService)
	photoHandler := photo.NewHandler(photoService)
	stickerHandler := sticker.NewHandler(stickerService)
	exportHandler := export.NewHandler(exportService)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/albums", albumHandler.Routes(authMiddleware, exportHandler.Download))
		r.Mount("/photos", photoHandler.Routes(authMiddleware))
		r.Mount("/stickers", stickerHandler.Routes(authMiddleware))
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info().Msg("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("forced shutdown")
		}
		close(done)
	}()

	log.Info().Str("addr", server.Addr).Msg("listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server failed")
	}
	<-done
	log.Info().Msg("server stopped")
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func buildStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case "s3":
		return storage.NewS3Storage(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			PublicURL: cfg.S3PublicURL,
		})
	case "local":
		return storage.NewLocalStorage(cfg.LocalPath, cfg.LocalBaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
