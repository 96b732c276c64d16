package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"skillswap_backend/internal/config"
	"skillswap_backend/internal/controller"
	"skillswap_backend/internal/repository"
	"skillswap_backend/internal/service"
	"skillswap_backend/internal/util"
	"skillswap_backend/pkg/configwatcher"
	"skillswap_backend/pkg/database"
	"skillswap_backend/pkg/logger"
	"skillswap_backend/pkg/monitoring"
	"skillswap_backend/pkg/security"
	"skillswap_backend/pkg/tracing"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const activityWriteInterval = time.Minute

type App struct {
	Config     *config.Config
	ConfigFile string
	Router     *gin.Engine
	DB         *gorm.DB
	Redis      *redis.Client

	repos    *repositories
	services *services
	tracer   *sdktrace.TracerProvider

	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	skill       *repository.SkillRepository
	profile     *repository.ProfileRepository
	swap        *repository.SwapRequestRepository
	review      *repository.ReviewRepository
	quizSession repository.QuizSessionStore
}

type services struct {
	ai          *service.AIService
	auth        *service.AuthService
	storage     *service.StorageService
	skill       *service.SkillService
	profile     *service.ProfileService
	swap        *service.SwapService
	review      *service.ReviewService
	quiz        *service.QuizService
	matchmaking *service.MatchmakingService
	assistant   *service.AssistantService
	dashboard   *service.DashboardService
}

type controllers struct {
	auth      *controller.AuthController
	profile   *controller.ProfileController
	user      *controller.UserController
	skill     *controller.SkillController
	swap      *controller.SwapController
	quiz      *controller.QuizController
	ai        *controller.AIController
	dashboard *controller.DashboardController
	health    *controller.HealthController
}

// RegisterConfigCallback adds a function that receives every reloaded config.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	repos := &repositories{
		user:    repository.NewUserRepository(db),
		skill:   repository.NewSkillRepository(db),
		profile: repository.NewProfileRepository(db),
		swap:    repository.NewSwapRequestRepository(db),
		review:  repository.NewReviewRepository(db),
	}
	if rdb != nil {
		repos.quizSession = repository.NewRedisQuizSessionStore(rdb)
	} else {
		logger.Log.Warn("Redis disabled, quiz sessions are kept in process memory")
		repos.quizSession = repository.NewMemoryQuizSessionStore()
	}
	return repos
}

func (a *App) initServices(repos *repositories, cfg *config.Config, ai *service.AIService) *services {
	s := &services{ai: ai}

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.ai.UpdateConfig(newCfg.AI)
		logger.Log.Info("AI settings reloaded",
			zap.String("provider", newCfg.AI.Provider),
			zap.String("model", newCfg.AI.Model),
			zap.Bool("enabled", newCfg.AI.Enabled()))
	})

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.skill = service.NewSkillService(repos.skill, s.ai)
	s.review = service.NewReviewService(repos.review, repos.swap)
	s.profile = service.NewProfileService(repos.profile, repos.skill, s.review, repos.swap, s.storage)
	s.swap = service.NewSwapService(repos.swap, repos.user, cfg)
	s.quiz = service.NewQuizService(repos.profile, repos.skill, repos.quizSession, s.ai, cfg.Quiz)
	s.matchmaking = service.NewMatchmakingService(repos.profile, s.ai)
	s.assistant = service.NewAssistantService(s.ai)
	s.dashboard = service.NewDashboardService(s.swap, s.matchmaking)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		profile:   controller.NewProfileController(s.profile),
		user:      controller.NewUserController(s.profile),
		skill:     controller.NewSkillController(s.skill),
		swap:      controller.NewSwapController(s.swap, s.review),
		quiz:      controller.NewQuizController(s.quiz),
		ai:        controller.NewAIController(s.matchmaking, s.assistant),
		dashboard: controller.NewDashboardController(s.dashboard),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	if cfg.RateLimit.MaxRequests > 0 {
		window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
		router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))
	}

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New wires an App around already opened stores. rdb may be nil. ai may be
// nil, in which case one is built from cfg.AI.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, ai *service.AIService) *App {
	if ai == nil {
		ai = service.NewAIService(cfg.AI)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	app.repos = app.initRepositories(db, rdb)
	app.services = app.initServices(app.repos, cfg, ai)
	controllers := app.initControllers(app.services, db, rdb)

	monitoring.Init()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, app.repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}
	return app
}

// NewApp connects to the configured database and Redis, runs migrations when
// asked to and builds the App. configFile is watched for changes by Run.
func NewApp(cfg *config.Config, configFile string) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	app := New(cfg, db, rdb, nil)
	app.ConfigFile = configFile

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var wg sync.WaitGroup
	if a.ConfigFile != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := configwatcher.WatchConfig(ctx, a.ConfigFile, a.applyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.String("file", filepath.Clean(a.ConfigFile)), zap.Error(err))
			}
		}()
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	stop()
	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
