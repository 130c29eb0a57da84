package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	_ "arstudio/docs"
	"arstudio/internal/config"
	"arstudio/internal/events"
	"arstudio/internal/handlers"
	"arstudio/internal/metrics"
	"arstudio/internal/models"
	"arstudio/internal/repository"
	"arstudio/internal/services"
	"arstudio/internal/storage"
)

// @title AR Studio API
// @version 1.0
// @description Authoring and publishing API for web AR experiences
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := InitConfig()
	db := ConnectDatabase(cfg)
	MigrateDatabase(db)
	minioClient := InitMinIOClient(cfg)

	publisher := events.Connect(cfg.NatsURL)
	defer publisher.Close()

	m := metrics.NewMetrics()
	markupCache := services.NewMarkupCache(cfg.MarkupCacheTTL)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	objectRepo := repository.NewSceneObjectRepository(db)
	assetRepo := repository.NewAssetRepository(db)

	projectService := services.NewProjectService(projectRepo, assetRepo, markupCache, m, publisher)
	objectService := services.NewSceneObjectService(objectRepo, projectRepo, markupCache)
	assetService := services.NewAssetService(assetRepo, minioClient, cfg.MinioBucket, cfg.PublicBaseURL, m, publisher)

	auth := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	projectHandler := handlers.NewProjectHandler(projectService, cfg.NearbyRadius)
	objectHandler := handlers.NewSceneObjectHandler(objectService)
	assetHandler := handlers.NewAssetHandler(assetService)

	app := fiber.New(fiber.Config{
		BodyLimit: 256 * 1024 * 1024,
	})

	// Register Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Public viewer
	app.Get("/v/:slug", projectHandler.ViewPublished)

	api := app.Group("/api")
	api.Get("/swagger/*", swagger.HandlerDefault)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	api.Post("/auth/setup", auth.Setup)
	api.Post("/auth/login", auth.Login)

	// Everything below requires a bearer token
	api.Use(auth.RequireAuth)

	api.Get("/projects", projectHandler.ListProjects)
	api.Post("/projects", projectHandler.CreateProject)
	api.Get("/projects/nearby", projectHandler.NearbyProjects)
	api.Get("/projects/:id", projectHandler.GetProject)
	api.Put("/projects/:id", projectHandler.UpdateProject)
	api.Get("/projects/:id/export", projectHandler.ExportMarkup)

	api.Post("/projects/:id/objects", objectHandler.CreateObject)
	api.Put("/objects/:id", objectHandler.UpdateObject)
	api.Delete("/objects/:id", objectHandler.DeleteObject)

	api.Get("/assets", assetHandler.ListAssets)
	api.Post("/assets", assetHandler.UploadAsset)
	api.Delete("/assets/:id", assetHandler.DeleteAsset)

	routes := app.GetRoutes()
	log.Println("Registered routes:")
	for _, r := range routes {
		log.Printf("  %s %s\n", r.Method, r.Path)
	}

	port := cfg.AppPort
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}

	// Start the Fiber server and shut down cleanly on SIGINT/SIGTERM
	go func() {
		log.Printf("Server listening on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	return cfg
}

func ConnectDatabase(cfg *config.Config) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	return db
}

func MigrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(&models.User{}, &models.Project{}, &models.SceneObject{}, &models.Asset{})
	if err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
}

func InitMinIOClient(cfg *config.Config) *minio.Client {
	minioClient, err := storage.NewMinioClient(cfg)
	if err != nil {
		log.Fatalf("MinIO client initialization failed: %v", err)
	}
	return minioClient
}
