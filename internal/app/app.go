package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz_portal_backend/internal/config"
	"quiz_portal_backend/internal/controller"
	"quiz_portal_backend/internal/repository"
	"quiz_portal_backend/internal/service"
	"quiz_portal_backend/pkg/database"
	"quiz_portal_backend/pkg/logger"
	"quiz_portal_backend/pkg/monitoring"
	"quiz_portal_backend/pkg/security"
	"quiz_portal_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user     *repository.UserRepository
	role     *repository.RoleRepository
	org      *repository.OrgRepository
	domain   *repository.DomainRepository
	question *repository.QuestionRepository
	quiz     *repository.QuizRepository
}

type services struct {
	user     *service.UserService
	org      *service.OrgService
	domain   *service.DomainService
	question *service.QuestionService
	quiz     *service.QuizService
}

type controllers struct {
	user     *controller.UserController
	org      *controller.OrgController
	question *controller.QuestionController
	quiz     *controller.QuizController
	webhook  *controller.WebhookController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		role:     repository.NewRoleRepository(db),
		org:      repository.NewOrgRepository(db),
		domain:   repository.NewDomainRepository(db),
		question: repository.NewQuestionRepository(db),
		quiz:     repository.NewQuizRepository(db),
	}
}

func (a *App) initServices(repos *repositories, rdb *redis.Client) *services {
	return &services{
		user:     service.NewUserService(repos.user),
		org:      service.NewOrgService(repos.org, repos.role),
		domain:   service.NewDomainService(repos.domain, rdb),
		question: service.NewQuestionService(repos.question, repos.domain),
		quiz:     service.NewQuizService(repos.question, repos.quiz),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	webhook, err := controller.NewWebhookController(s.user, a.Config)
	if err != nil {
		logger.Log.Fatal("Failed to initialize webhook verifier", zap.Error(err))
	}

	return &controllers{
		user:     controller.NewUserController(s.user),
		org:      controller.NewOrgController(s.org),
		question: controller.NewQuestionController(s.question),
		quiz:     controller.NewQuizController(s.quiz, s.domain),
		webhook:  webhook,
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The portal only uses redis as a read cache; run without it.
		logger.Log.Warn("Redis unavailable, domain cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quiz-portal", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	return app
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

	log.Println("Server exiting")
}
