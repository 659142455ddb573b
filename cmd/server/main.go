package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/guestlens/server/docs"
	"github.com/guestlens/server/internal/config"
	"github.com/guestlens/server/internal/handlers"
	custommw "github.com/guestlens/server/internal/middleware"
	"github.com/guestlens/server/internal/observability"
	"github.com/guestlens/server/internal/repository"
	"github.com/guestlens/server/internal/services"
)

const serviceVersion = "1.0.0"

// @title GuestLens Server API
// @version 1.0
// @description Event photo-sharing server: galleries, media feeds, tags, stories and realtime updates.
// @BasePath /
// @securityDefinitions.apikey SessionToken
// @in header
// @name X-Session-Token
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize telemetry
	ctx := context.Background()
	telemetry, err := observability.Initialize(ctx, observability.NewConfig("guestlens-server", serviceVersion))
	if err != nil {
		log.Printf("Warning: telemetry initialization failed: %v", err)
	}

	// Initialize database
	var db *repository.DB
	if cfg.UsePostgres() {
		log.Println("Using PostgreSQL database")
		db, err = repository.NewPostgresDB(cfg.DatabaseURL)
	} else {
		log.Println("Using SQLite database")
		db, err = repository.NewSQLiteDB(cfg.DatabasePath)
	}
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Repositories
	galleryRepo := repository.NewGalleryRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Services
	hashService := services.NewHashService()
	exifService := services.NewEXIFService()
	storageService, err := services.NewMediaStorageService(
		cfg.MediaStorage.BasePath,
		cfg.MediaStorage.AllowedExtensions,
		cfg.MediaStorage.MaxFileSizeMB,
	)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}
	thumbnailService := services.NewThumbnailService(cfg.MediaStorage.BasePath)

	hub := services.NewWebSocketHub()
	go hub.Run()

	var pushService *services.PushService
	if cfg.Push.FirebaseCredentialsPath != "" {
		pushService, err = services.NewPushService(cfg.Push.FirebaseCredentialsPath)
		if err != nil {
			log.Printf("Warning: push notifications disabled: %v", err)
			pushService = nil
		}
	}

	var notifier services.UploadNotifier
	if pushService != nil {
		notifier = pushService
	}

	warmer := services.NewThumbnailWarmer(storageService)
	feedService := services.NewFeedService(mediaRepo, warmer)
	mediaService := services.NewMediaService(mediaRepo, galleryRepo, storageService, thumbnailService, exifService, hashService, hub, notifier)
	galleryService := services.NewGalleryService(galleryRepo, mediaRepo, sessionRepo, cfg.Sessions.DurationHours)
	engagementService := services.NewEngagementService(commentRepo, likeRepo, profileRepo, mediaRepo, hub)
	storyService := services.NewStoryService(storyRepo, storageService, hub)
	maintenanceService := services.NewMaintenanceService(mediaRepo, storyRepo, sessionRepo, storageService)
	maintenanceService.Start()
	defer maintenanceService.Stop()

	// Story expiry sweeper
	sweeperCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	go storyService.RunSweeper(sweeperCtx, time.Duration(cfg.Stories.SweepIntervalMinutes)*time.Minute)

	// Metrics
	businessMetrics, err := observability.NewBusinessMetrics()
	if err != nil {
		log.Printf("Warning: business metrics unavailable: %v", err)
	}
	httpMetrics, err := observability.NewHTTPMetrics()
	if err != nil {
		log.Printf("Warning: HTTP metrics unavailable: %v", err)
	}

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	galleryHandler := handlers.NewGalleryHandler(galleryService, pushService, businessMetrics)
	mediaHandler := handlers.NewMediaHandler(mediaService, feedService, storageService, thumbnailService, businessMetrics)
	tagHandler := handlers.NewTagHandler(mediaService)
	engagementHandler := handlers.NewEngagementHandler(engagementService)
	storyHandler := handlers.NewStoryHandler(storyService, storageService)
	adminHandler := handlers.NewAdminHandler(galleryService, maintenanceService, hub)
	wsHandler := handlers.NewWebSocketHandler(hub, feedService, businessMetrics)

	// Router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.TracingMiddleware("guestlens-server"))
	if httpMetrics != nil {
		r.Use(observability.MetricsMiddleware(httpMetrics))
	}

	r.Get("/health", healthHandler.HealthCheck)
	r.Get("/api/health", healthHandler.HealthCheck)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Position normalization is a pure utility, no gallery context needed
	r.Post("/api/tags/normalize-position", tagHandler.NormalizePosition)

	// Gallery discovery and creation, no session required
	r.Post("/api/galleries", galleryHandler.Create)
	r.Get("/api/galleries/by-slug/{slug}", galleryHandler.GetBySlug)
	r.Get("/api/galleries/by-token/{token}", galleryHandler.GetBySecretToken)
	r.Post("/api/galleries/{galleryID}/auth", galleryHandler.Authenticate)

	// Everything inside a gallery requires a valid session for it
	r.Route("/api/galleries/{galleryID}", func(r chi.Router) {
		r.Use(custommw.GalleryAccess(galleryRepo, sessionRepo))

		r.Get("/", galleryHandler.Get)
		r.Post("/logout", galleryHandler.Logout)
		r.Post("/push-token", galleryHandler.RegisterPushToken)

		r.Get("/media", mediaHandler.Feed)
		r.Post("/media", mediaHandler.Upload)
		r.Get("/media/count", mediaHandler.Count)
		r.Post("/notes", mediaHandler.CreateNote)
		r.Get("/media/{mediaID}", mediaHandler.Get)
		r.Delete("/media/{mediaID}", mediaHandler.Delete)
		r.Get("/media/{mediaID}/file", mediaHandler.ServeFile)
		r.Get("/media/{mediaID}/thumbnail", mediaHandler.ServeThumbnail)

		r.Post("/media/{mediaID}/tags", tagHandler.AddTag)
		r.Delete("/media/{mediaID}/tags/{tagID}", tagHandler.RemoveTag)

		r.Get("/media/{mediaID}/comments", engagementHandler.ListComments)
		r.Post("/media/{mediaID}/comments", engagementHandler.AddComment)
		r.Delete("/comments/{commentID}", engagementHandler.DeleteComment)
		r.Post("/media/{mediaID}/like", engagementHandler.ToggleLike)
		r.Get("/media/{mediaID}/like", engagementHandler.GetLikes)

		r.Get("/profiles", engagementHandler.ListProfiles)
		r.Put("/profiles", engagementHandler.UpsertProfile)
		r.Get("/profiles/{deviceID}", engagementHandler.GetProfile)

		r.Get("/stories", storyHandler.List)
		r.Post("/stories", storyHandler.Create)
		r.Get("/stories/{storyID}/file", storyHandler.ServeFile)
		r.Delete("/stories/{storyID}", storyHandler.Delete)

		r.Get("/ws", wsHandler.HandleConnection)

		// Host-only moderation
		r.Group(func(r chi.Router) {
			r.Use(custommw.HostOnly)
			r.Patch("/", galleryHandler.Update)
			r.Delete("/", adminHandler.DeleteGallery)
			r.Get("/admin/maintenance", adminHandler.MaintenanceStatus)
			r.Post("/admin/maintenance", adminHandler.RunMaintenance)
			r.Get("/admin/stats", adminHandler.Stats)
		})
	})

	// Create server
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Longer for uploads
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("GuestLens Server starting on %s", cfg.ServerAddress)
		log.Printf("Media storage path: %s", cfg.MediaStorage.BasePath)
		log.Printf("Max file size: %dMB", cfg.MediaStorage.MaxFileSizeMB)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			log.Printf("Telemetry shutdown error: %v", err)
		}
	}

	log.Println("Server stopped")
}
