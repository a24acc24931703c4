package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kvizmajstor_backend/internal/config"
	"kvizmajstor_backend/internal/controller"
	"kvizmajstor_backend/internal/repository"
	"kvizmajstor_backend/internal/service"
	"kvizmajstor_backend/pkg/configwatcher"
	"kvizmajstor_backend/pkg/database"
	"kvizmajstor_backend/pkg/logger"
	"kvizmajstor_backend/pkg/monitoring"
	"kvizmajstor_backend/pkg/security"
	"kvizmajstor_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config  *config.Config
	Router  *gin.Engine
	DB      *gorm.DB
	origins *security.OriginSet
}

type repositories struct {
	user     *repository.UserRepository
	category *repository.CategoryRepository
	quiz     *repository.QuizRepository
	result   *repository.ResultRepository
}

type services struct {
	auth     *service.AuthService
	category *service.CategoryService
	quiz     *service.QuizService
	user     *service.UserService
}

type controllers struct {
	auth     *controller.AuthController
	category *controller.CategoryController
	quiz     *controller.QuizController
	user     *controller.UserController
	admin    *controller.AdminController
	health   *controller.HealthController
	sitemap  *controller.SitemapController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		category: repository.NewCategoryRepository(db),
		quiz:     repository.NewQuizRepository(db),
		result:   repository.NewResultRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	return &services{
		auth:     service.NewAuthService(repos.user, cfg),
		category: service.NewCategoryService(repos.category, repos.quiz),
		quiz:     service.NewQuizService(repos.quiz, repos.category, repos.user, repos.result),
		user:     service.NewUserService(repos.user, repos.quiz, repos.result),
	}
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		category: controller.NewCategoryController(s.category),
		quiz:     controller.NewQuizController(s.quiz),
		user:     controller.NewUserController(s.user),
		admin:    controller.NewAdminController(s.user, s.category),
		health:   controller.NewHealthController(db),
		sitemap:  controller.NewSitemapController(repos.quiz, a.Config.Site.BaseURL),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	a.origins = security.NewOriginSet(cfg.CORS.AllowedOrigins)

	router.Use(security.CORS(a.origins))
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
	logger.InitLogger(cfg.Server.Mode)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("kvizmajstor-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	// CORS origin changes apply without a restart.
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		app.origins.Update(newCfg.CORS.AllowedOrigins)
	})

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
