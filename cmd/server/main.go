package main

import (
	"campusconnect/placement-app/internal/api"
	"campusconnect/placement-app/internal/config"
	"campusconnect/placement-app/internal/pdftext"
	"campusconnect/placement-app/internal/repository/mongo"
	"campusconnect/placement-app/internal/service"
	"campusconnect/placement-app/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Campus Placement Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureStudentIndexes(ctx, appDB.Collection("students"))
		mongo.EnsureResumeIndexes(ctx, appDB.Collection("resumes"))
		mongo.EnsurePlacementIndexes(ctx, appDB.Collection("placements"))
		mongo.EnsureApplicationIndexes(ctx, appDB.Collection("applications"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	var fileStorage storage.FileStorage
	switch cfg.Storage.Driver {
	case "s3":
		fileStorage, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	default:
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.LocalPath)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize local storage: %v", err)
		}
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	studentRepo := mongo.NewMongoStudentRepository(appDB)
	counterRepo := mongo.NewMongoCounterRepository(appDB)
	resumeRepo := mongo.NewMongoResumeRepository(appDB)
	companyRepo := mongo.NewMongoCompanyRepository(appDB)
	placementRepo := mongo.NewMongoPlacementRepository(appDB)
	applicationRepo := mongo.NewMongoApplicationRepository(appDB)
	questionBankRepo := mongo.NewMongoQuestionBankRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(studentRepo, counterRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	studentService := service.NewStudentService(studentRepo)
	resumeService := service.NewResumeService(resumeRepo, fileStorage, pdftext.Extract, cfg.Resume)
	placementService := service.NewPlacementService(placementRepo, companyRepo, applicationRepo)
	questionBankService := service.NewQuestionBankService(questionBankRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	// Stored resumes are served directly when the local driver is in use.
	if cfg.Storage.Driver != "s3" {
		router.Static("/uploads/resumes", cfg.Storage.LocalPath)
	}

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, studentService, resumeService, placementService, questionBankService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
