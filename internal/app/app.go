package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"gorm.io/gorm"

	"reviewin_backend/internal/config"
	"reviewin_backend/internal/controller"
	"reviewin_backend/internal/repository"
	"reviewin_backend/internal/service"
	"reviewin_backend/pkg/database"
	"reviewin_backend/pkg/logger"
	"reviewin_backend/pkg/monitoring"
	"reviewin_backend/pkg/security"
	"reviewin_backend/pkg/tracing"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	tracerProvider *sdktrace.TracerProvider
}

type repositories struct {
	user       *repository.UserRepository
	class      *repository.ClassRepository
	assignment *repository.AssignmentRepository
	submission *repository.SubmissionRepository
	review     *repository.PeerReviewRepository
}

type services struct {
	auth       *service.AuthService
	token      *service.TokenService
	class      *service.ClassService
	assignment *service.AssignmentService
	submission *service.SubmissionService
	review     *service.PeerReviewService
	storage    *service.StorageService
}

type controllers struct {
	auth       *controller.AuthController
	class      *controller.ClassController
	assignment *controller.AssignmentController
	submission *controller.SubmissionController
	review     *controller.PeerReviewController
	upload     *controller.UploadController
	health     *controller.HealthController
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		class:      repository.NewClassRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		submission: repository.NewSubmissionRepository(db),
		review:     repository.NewPeerReviewRepository(db),
	}
}

func initServices(repos *repositories, cfg *config.Config, blocklist service.TokenBlocklist) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	return &services{
		auth:       service.NewAuthService(repos.user),
		token:      service.NewTokenService(cfg, blocklist),
		class:      service.NewClassService(repos.class),
		assignment: service.NewAssignmentService(repos.assignment, repos.class),
		submission: service.NewSubmissionService(repos.submission, repos.assignment, repos.class),
		review:     service.NewPeerReviewService(repos.review, repos.submission, repos.assignment, repos.class),
		storage:    storage,
	}, nil
}

func initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.token, repos.user),
		class:      controller.NewClassController(s.class),
		assignment: controller.NewAssignmentController(s.assignment),
		submission: controller.NewSubmissionController(s.submission),
		review:     controller.NewPeerReviewController(s.review),
		upload:     controller.NewUploadController(s.storage),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(
		cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
	))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)
	logger.Log.Info("logger initialized")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	// The revocation set lives in Redis when available so logout
	// survives restarts; otherwise it is process-local.
	var blocklist service.TokenBlocklist
	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("failed to initialize redis", zap.Error(err))
		}
		app.Redis = rdb
		blocklist = service.NewRedisBlocklist(rdb)
	} else {
		blocklist = service.NewMemoryBlocklist()
	}

	repos := initRepositories(db)
	svcs, err := initServices(repos, cfg, blocklist)
	if err != nil {
		logger.Log.Fatal("failed to initialize services", zap.Error(err))
	}
	ctrls := initControllers(svcs, repos, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("reviewin", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, ctrls, repos, blocklist)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Log.Error("failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
