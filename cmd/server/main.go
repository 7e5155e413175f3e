package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casafinder/listing-service/internal/adapter/messaging/nats"
	"github.com/casafinder/listing-service/internal/adapter/repository/cache"
	"github.com/casafinder/listing-service/internal/adapter/repository/mongodb"
	"github.com/casafinder/listing-service/internal/adapter/rest"
	"github.com/casafinder/listing-service/internal/adapter/storage/cloudinary"
	"github.com/casafinder/listing-service/internal/adapter/storage/s3"
	"github.com/casafinder/listing-service/internal/config"
	"github.com/casafinder/listing-service/internal/mailer"
	"github.com/casafinder/listing-service/internal/platform/logger"
	"github.com/casafinder/listing-service/internal/platform/tracer"
	"github.com/casafinder/listing-service/internal/property/usecase"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewLogger()

	shutdownTracer, err := tracer.InitTracer(context.Background())
	if err != nil {
		appLogger.Warn("tracing disabled", "error", err.Error())
	} else {
		defer shutdownTracer(context.Background())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.MongoDatabase)

	// Bootstrap: seed reference data and ensure indexes before serving.
	if err := mongodb.SeedLookups(ctx, db); err != nil {
		log.Fatalf("Failed to seed lookup collections: %v", err)
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}
	lookups, err := mongodb.NewLookupCache(ctx, db)
	if err != nil {
		log.Fatalf("Failed to load lookup cache: %v", err)
	}

	locationRepo := mongodb.NewLocationRepository(db, appLogger)
	propertyRepo := mongodb.NewPropertyRepository(mongoClient, db, locationRepo, lookups, appLogger)
	searchRepo := mongodb.NewSearchRepository(db, lookups, appLogger)
	userRepo := mongodb.NewUserRepository(db, appLogger)

	propertyCache, err := cache.NewPropertyCache(cfg.RedisAddress)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	publisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer publisher.Close()

	photoStorage, err := s3.NewS3Storage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize photo storage: %v", err)
	}

	verifier := cloudinary.NewVerifier(cfg.UploadAPISecret)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)

	propertyUC := usecase.NewPropertyUsecase(propertyRepo, verifier, publisher, propertyCache, userRepo, smtpMailer, appLogger)
	searchUC := usecase.NewSearchUsecase(locationRepo, searchRepo, propertyCache, appLogger)
	photoUC := usecase.NewPhotoUsecase(photoStorage, verifier, appLogger)

	handler := rest.NewHandler(propertyUC, searchUC, photoUC, appLogger)
	server := rest.NewServer(cfg.HTTPPort, handler, mongoClient, cfg.JWTSecret, appLogger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			appLogger.Error("server stopped with error", "error", err.Error())
		}
	case sig := <-sigChan:
		appLogger.Info("shutting down", "signal", sig.String())
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("graceful shutdown failed", "error", err.Error())
		}
	}
}
