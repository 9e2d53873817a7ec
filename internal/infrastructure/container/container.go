package container

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sanjail3/fyndly-backend/internal/config"
	"github.com/sanjail3/fyndly-backend/internal/delivery/http"
	"github.com/sanjail3/fyndly-backend/internal/delivery/http/handler"
	"github.com/sanjail3/fyndly-backend/internal/delivery/http/middleware"
	"github.com/sanjail3/fyndly-backend/internal/infrastructure/cache"
	"github.com/sanjail3/fyndly-backend/internal/infrastructure/database"
	"github.com/sanjail3/fyndly-backend/internal/infrastructure/embedding"
	"github.com/sanjail3/fyndly-backend/internal/infrastructure/server"
	"github.com/sanjail3/fyndly-backend/internal/repository/postgres"
	"github.com/sanjail3/fyndly-backend/internal/usecase/connect"
	"github.com/sanjail3/fyndly-backend/internal/usecase/profile"
	"github.com/sanjail3/fyndly-backend/internal/usecase/queue"
	"github.com/sanjail3/fyndly-backend/internal/usecase/recommend"
	"github.com/sanjail3/fyndly-backend/internal/usecase/swipe"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *embedding.GeminiClient
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis. The queue cache degrades to a no-op without it.
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		fmt.Printf("Warning: failed to initialize redis, queue caching disabled: %v\n", err)
		redisClient = nil
	}
	queueCache := cache.NewQueueCache(redisClient, 60*time.Second)

	// Initialize embedding client
	geminiClient, err := embedding.NewGeminiClient(cfg.GeminiAPIKey)
	if err != nil {
		fmt.Printf("Warning: failed to initialize Gemini client: %v\n", err)
		// Don't fail, profiles just won't get embeddings refreshed
	}

	// Initialize repositories
	profileRepo := postgres.NewProfileRepository(db)
	requestRepo := postgres.NewRequestRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	queueRepo := postgres.NewQueueRepository(db)

	// Initialize recommendation engine
	resolver := recommend.NewExclusionResolver(matchRepo, requestRepo, swipeRepo)
	retriever := recommend.NewRetriever()
	scorer := recommend.NewScorer(cfg.Recommend)
	builder := recommend.NewSectionBuilder(cfg.Recommend, scorer, rand.New(rand.NewSource(time.Now().UnixNano())))

	// Initialize use cases
	var embedder profile.EmbeddingClient
	if geminiClient != nil {
		embedder = geminiClient
	}
	profileUseCase := profile.NewUseCase(profileRepo, embedder)

	recommendUseCase := recommend.NewUseCase(
		cfg.Recommend,
		profileRepo,
		queueRepo,
		resolver,
		retriever,
		builder,
		queueCache,
	)

	queueUseCase := queue.NewUseCase(queueRepo, profileRepo, queueCache, cfg.Recommend.StaleAfter)

	swipeUseCase := swipe.NewUseCase(swipeRepo, matchRepo, profileRepo, queueRepo, queueCache)

	connectUseCase := connect.NewUseCase(requestRepo, matchRepo, profileRepo)

	// Initialize handlers
	profileHandler := handler.NewProfileHandler(profileUseCase)
	recommendHandler := handler.NewRecommendHandler(recommendUseCase, queueUseCase)
	swipeHandler := handler.NewSwipeHandler(swipeUseCase)
	connectHandler := handler.NewConnectHandler(connectUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret)

	// Initialize router
	router := http.NewRouter(
		profileHandler,
		recommendHandler,
		swipeHandler,
		connectHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Gemini: geminiClient,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			fmt.Printf("Error closing Redis: %v\n", err)
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
