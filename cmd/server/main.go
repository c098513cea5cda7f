package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/krmu/lostfound-api/internal/config"
	"github.com/krmu/lostfound-api/internal/handler"
	"github.com/krmu/lostfound-api/internal/otp"
	"github.com/krmu/lostfound-api/internal/repository"
	"github.com/krmu/lostfound-api/internal/usecase"
	"github.com/krmu/lostfound-api/shared/auth"
	"github.com/krmu/lostfound-api/shared/mailer"
	"github.com/krmu/lostfound-api/shared/storage"
	"github.com/krmu/lostfound-api/shared/validation"
)

const tokenTTL = 24 * time.Hour

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}

	db := client.Database(cfg.MongoDatabase)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndex()

	userRepo := repository.NewUserMongoRepository(indexCtx, &logger, db)
	complaintRepo := repository.NewComplaintMongoRepository(db)
	foundItemRepo := repository.NewFoundItemMongoRepository(db)

	uploader, err := storage.NewCloudinaryUploader(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure object storage")
	}

	sender := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	jwtAuth := auth.NewJWTAuthenticator("lostfound-api", tokenTTL)
	codeStore := otp.NewMemoryStore()

	validator, err := validation.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure validator")
	}

	router := handler.NewRouter(&logger, validator, handler.Usecases{
		Auth:       usecase.NewAuthUsecase(userRepo, jwtAuth, cfg),
		Complaints: usecase.NewComplaintUsecase(complaintRepo, userRepo, uploader),
		FoundItems: usecase.NewFoundItemUsecase(foundItemRepo, userRepo, uploader),
		OTP:        usecase.NewOTPUsecase(codeStore, sender),
		Notify:     usecase.NewNotifyUsecase(sender, cfg),
	}, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info().Int("port", cfg.Port).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
