package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/zawajapp/zawaj-backend/internal/agent"
	"github.com/zawajapp/zawaj-backend/internal/config"
	"github.com/zawajapp/zawaj-backend/internal/delivery/http"
	"github.com/zawajapp/zawaj-backend/internal/delivery/http/handler"
	"github.com/zawajapp/zawaj-backend/internal/delivery/http/middleware"
	"github.com/zawajapp/zawaj-backend/internal/infrastructure/database"
	"github.com/zawajapp/zawaj-backend/internal/infrastructure/gemini"
	"github.com/zawajapp/zawaj-backend/internal/infrastructure/logger"
	"github.com/zawajapp/zawaj-backend/internal/infrastructure/server"
	"github.com/zawajapp/zawaj-backend/internal/repository/postgres"
	redisrepo "github.com/zawajapp/zawaj-backend/internal/repository/redis"
	"github.com/zawajapp/zawaj-backend/internal/usecase/compatibility"
	"github.com/zawajapp/zawaj-backend/internal/usecase/feed"
	"github.com/zawajapp/zawaj-backend/internal/usecase/match"
	"go.uber.org/zap"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *goredis.Client
	Server *server.Server
	Gemini *gemini.Client

	sweepCancel context.CancelFunc
}

// NewContainer wires the whole application together.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log, err := logger.New(cfg.Logging.Level, cfg.Server.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	geminiClient, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	// Agents and dispatcher
	dispatcher := agent.NewDispatcher(log,
		agent.NewAuthenticationAgent(geminiClient),
		agent.NewVerificationAgent(geminiClient),
		agent.NewCommunicationAgent(geminiClient),
		agent.NewGuardianAgent(),
		agent.NewSecurityAgent(),
		agent.NewPersonalityAgent(geminiClient),
	)

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	prefsRepo := postgres.NewPreferencesRepository(db)
	guardianRepo := postgres.NewGuardianRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	exclusionStore := redisrepo.NewExclusionStore(redisClient)

	// Use cases
	compatibilityUseCase := compatibility.NewCompatibilityUseCase(
		dispatcher,
		userRepo,
		profileRepo,
		log,
	)

	feedUseCase := feed.NewFeedUseCase(
		userRepo,
		profileRepo,
		prefsRepo,
		swipeRepo,
		exclusionStore,
		log,
	)

	matchUseCase := match.NewMatchUseCase(
		matchRepo,
		swipeRepo,
		userRepo,
		guardianRepo,
		exclusionStore,
		compatibilityUseCase,
		cfg.Match,
		log,
	)

	// Handlers
	feedHandler := handler.NewFeedHandler(feedUseCase)
	compatibilityHandler := handler.NewCompatibilityHandler(compatibilityUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)
	guardianHandler := handler.NewGuardianHandler(matchUseCase)
	agentHandler := handler.NewAgentHandler(dispatcher)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret)

	// Router
	router := http.NewRouter(
		feedHandler,
		compatibilityHandler,
		matchHandler,
		guardianHandler,
		agentHandler,
		authMiddleware,
	)
	ginRouter := router.Setup()

	srv := server.NewServer(&cfg.Server, ginRouter, log)

	// Background expiry sweep
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	matchUseCase.StartExpirySweep(sweepCtx)

	return &Container{
		Config:      cfg,
		Logger:      log,
		DB:          db,
		Redis:       redisClient,
		Server:      srv,
		Gemini:      geminiClient,
		sweepCancel: sweepCancel,
	}, nil
}

// Close stops background work and closes all connections.
func (c *Container) Close() error {
	if c.sweepCancel != nil {
		c.sweepCancel()
	}

	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("failed to close redis client", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
