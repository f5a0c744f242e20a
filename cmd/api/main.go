package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"otodeal/internal/adapter/api"
	"otodeal/internal/adapter/api/handler"
	apimiddleware "otodeal/internal/adapter/api/middleware"
	"otodeal/internal/adapter/api/router"
	"otodeal/internal/adapter/repository"
	"otodeal/internal/domain/service"
	"otodeal/internal/infrastructure/firebase"
	"otodeal/internal/infrastructure/ratelimit"
	"otodeal/internal/infrastructure/storage"
	"otodeal/internal/infrastructure/websocket"
	"otodeal/internal/usecase"
	"otodeal/pkg/config"
	"otodeal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()

	var opts []option.ClientOption
	credentialsPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	showroomRepo := repository.NewFirestoreShowroomRepository(firestoreClient)
	carRepo := repository.NewFirestoreCarRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)
	subscriptionRepo := repository.NewFirestoreSubscriptionRepository(firestoreClient)
	fileMetadataRepo := repository.NewFirestoreFileMetadataRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	// Redis backs the rate limiter when configured; a single node falls back
	// to the in-memory store.
	var limiterStore ratelimit.Store
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
		limiterStore = ratelimit.NewRedisStore(redisClient)
		logger.Info("Rate limiting backed by Redis at %s", cfg.RedisAddr)
	} else {
		memStore := ratelimit.NewMemoryStore()
		memStore.StartCleanupRoutine(ctx)
		limiterStore = memStore
	}
	limiter := ratelimit.NewRateLimiter(limiterStore)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	stripeService := service.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo)
	showroomUseCase := usecase.NewShowroomUseCase(showroomRepo, carRepo, limiter)
	carUseCase := usecase.NewCarUseCase(carRepo, showroomRepo, limiter)
	messageUseCase := usecase.NewMessageUseCase(messageRepo, userRepo, limiter, wsManager)
	favoriteUseCase := usecase.NewFavoriteUseCase(favoriteRepo, carRepo, showroomRepo)
	subscriptionUseCase := usecase.NewSubscriptionUseCase(
		subscriptionRepo,
		userRepo,
		stripeService,
		limiter,
		cfg.StripePriceIDPro,
		cfg.CheckoutSuccessURL,
		cfg.CheckoutCancelURL,
	)
	fileUseCase := usecase.NewFileUseCase(fileMetadataRepo, storageClient, cfg.MaxUploadSizeMB)

	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient, userRepo)
	adminMiddleware := apimiddleware.NewAdminMiddleware()

	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authUseCase),
		User:         handler.NewUserHandler(userUseCase),
		Showroom:     handler.NewShowroomHandler(showroomUseCase),
		Car:          handler.NewCarHandler(carUseCase),
		Message:      handler.NewMessageHandler(messageUseCase),
		Favorite:     handler.NewFavoriteHandler(favoriteUseCase),
		Subscription: handler.NewSubscriptionHandler(subscriptionUseCase),
		File:         handler.NewFileHandler(fileUseCase),
		WebSocket:    handler.NewWebSocketHandler(wsManager, authClient),
	}

	router.Setup(e, handlers, authMiddleware, adminMiddleware)
	router.SetupDevRouter(e, cfg.Environment, handler.NewDevTokenHandler(firebaseAuthClient, userRepo))

	logger.Info("Starting server on port %s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
