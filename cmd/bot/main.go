package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/starkeae/divarkhaf-bot/internal/adapter/messaging/nats"
	"github.com/starkeae/divarkhaf-bot/internal/adapter/repository/cache"
	"github.com/starkeae/divarkhaf-bot/internal/adapter/repository/mongodb"
	"github.com/starkeae/divarkhaf-bot/internal/adapter/storage/s3"
	"github.com/starkeae/divarkhaf-bot/internal/adapter/telegram"
	"github.com/starkeae/divarkhaf-bot/internal/analytics"
	"github.com/starkeae/divarkhaf-bot/internal/config"
	"github.com/starkeae/divarkhaf-bot/internal/conversation"
	"github.com/starkeae/divarkhaf-bot/internal/listing/usecase"
	"github.com/starkeae/divarkhaf-bot/internal/mailer"
	"github.com/starkeae/divarkhaf-bot/internal/platform/logger"
	"github.com/starkeae/divarkhaf-bot/internal/platform/tracer"
)

const pollTimeout = 30

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTLPEndpoint != "" {
		tp, err := tracer.Init(ctx, cfg.OTLPEndpoint)
		if err != nil {
			zapLogger.Fatal("failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			tp.Shutdown(shutdownCtx)
		}()
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		zapLogger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database(cfg.MongoDB)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		zapLogger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	listingCache := cache.NewListingCache(redisClient)

	var publisher analytics.Publisher
	natsPublisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		zapLogger.Warn("nats unavailable, interaction events will only be stored", zap.Error(err))
	} else {
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	listingRepo := mongodb.NewListingRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	reportRepo := mongodb.NewReportRepository(db)
	bookmarkRepo := mongodb.NewBookmarkRepository(db)
	viewRepo := mongodb.NewViewRepository(db)
	interactionRepo := mongodb.NewInteractionRepository(db)
	statsRepo := mongodb.NewStatsRepository(db)

	auth := usecase.NewStaticAuthorizer(cfg.AdminChatID)
	tracker := analytics.NewTracker(interactionRepo, publisher, zapLogger)

	listings := usecase.NewListingUsecase(listingRepo, reportRepo, viewRepo, bookmarkRepo, listingCache, zapLogger)
	bookmarks := usecase.NewBookmarkUsecase(bookmarkRepo, listings, zapLogger)
	users := usecase.NewUserUsecase(userRepo, zapLogger)
	stats := usecase.NewStatsUsecase(statsRepo, auth)

	var notifier usecase.Notifier
	if cfg.SMTPEmail != "" && cfg.AdminEmail != "" {
		notifier = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword, cfg.AdminEmail)
	}
	reports := usecase.NewReportUsecase(reportRepo, listings, auth, notifier, zapLogger)

	var archive telegram.PhotoArchiver
	photoArchive, err := s3.NewPhotoArchive(
		cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, zapLogger)
	if err != nil {
		zapLogger.Warn("object storage unavailable, photo archiving disabled", zap.Error(err))
	} else {
		archive = photoArchive
	}

	handler := telegram.NewHandler(telegram.Deps{
		Logger:    zapLogger,
		Auth:      auth,
		Listings:  listings,
		Bookmarks: bookmarks,
		Reports:   reports,
		Users:     users,
		Stats:     stats,
		Tracker:   tracker,
		Machine:   conversation.NewMachine(listings, tracker, zapLogger),
		Reporting: conversation.NewReportFlow(reports, zapLogger),
		Sessions:  conversation.NewStore(),
		Archive:   archive,
	})

	client, err := telegram.NewClient(cfg.BotToken, pollTimeout, zapLogger, handler.HandleUpdate)
	if err != nil {
		zapLogger.Fatal("failed to create telegram client", zap.Error(err))
	}
	handler.Bind(client)

	zapLogger.Info("bot starting")
	if err := client.Start(ctx); err != nil {
		zapLogger.Fatal("bot stopped with error", zap.Error(err))
	}
	zapLogger.Info("bot stopped")
}
