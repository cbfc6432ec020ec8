package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"classquiz_backend/internal/config"
	"classquiz_backend/internal/controller"
	"classquiz_backend/internal/repository"
	"classquiz_backend/internal/service"
	"classquiz_backend/pkg/configwatcher"
	"classquiz_backend/pkg/database"
	"classquiz_backend/pkg/logger"
	"classquiz_backend/pkg/monitoring"
	"classquiz_backend/pkg/security"
	"classquiz_backend/pkg/tracing"

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

	tracerShutdown func(context.Context) error
}

type repositories struct {
	user            *repository.UserRepository
	classroom       *repository.ClassroomRepository
	enrollmentCode  *repository.EnrollmentCodeRepository
	quiz            *repository.QuizRepository
	question        *repository.QuestionRepository
	answer          *repository.AnswerRepository
	quizAttempt     *repository.QuizAttemptRepository
	questionAttempt *repository.QuestionAttemptRepository
	studentAnswer   *repository.StudentAnswerRepository
}

type services struct {
	auth       *service.AuthService
	classroom  *service.ClassroomService
	enrollment *service.EnrollmentService
	quiz       *service.QuizService
	question   *service.QuestionService
	answer     *service.AnswerService
	attempt    *service.AttemptService
	stats      *service.StatsService
}

type controllers struct {
	auth       *controller.AuthController
	classroom  *controller.ClassroomController
	enrollment *controller.EnrollmentController
	quiz       *controller.QuizController
	question   *controller.QuestionController
	answer     *controller.AnswerController
	attempt    *controller.AttemptController
	stats      *controller.StatsController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:            repository.NewUserRepository(db),
		classroom:       repository.NewClassroomRepository(db),
		enrollmentCode:  repository.NewEnrollmentCodeRepository(db),
		quiz:            repository.NewQuizRepository(db),
		question:        repository.NewQuestionRepository(db),
		answer:          repository.NewAnswerRepository(db),
		quizAttempt:     repository.NewQuizAttemptRepository(db),
		questionAttempt: repository.NewQuestionAttemptRepository(db),
		studentAnswer:   repository.NewStudentAnswerRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.classroom = service.NewClassroomService(repos.classroom)
	s.enrollment = service.NewEnrollmentService(repos.enrollmentCode, repos.classroom, repos.user, rdb, cfg, logger.Log)
	s.quiz = service.NewQuizService(repos.quiz, repos.classroom)
	s.question = service.NewQuestionService(repos.question, repos.quiz)
	s.answer = service.NewAnswerService(repos.answer, repos.question, repos.quiz)
	s.attempt = service.NewAttemptService(
		repos.quizAttempt,
		repos.questionAttempt,
		repos.studentAnswer,
		repos.quiz,
		repos.question,
		repos.answer,
		repos.classroom,
		logger.Log,
	)
	s.stats = service.NewStatsService(repos.quizAttempt, repos.questionAttempt, repos.quiz)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		classroom:  controller.NewClassroomController(s.classroom),
		enrollment: controller.NewEnrollmentController(s.enrollment),
		quiz:       controller.NewQuizController(s.quiz),
		question:   controller.NewQuestionController(s.question),
		answer:     controller.NewAnswerController(s.answer),
		attempt:    controller.NewAttemptController(s.attempt),
		stats:      controller.NewStatsController(s.stats),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("classquiz-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerShutdown = tp.Shutdown
	}

	app.registerRoutes(router, controllers, repos, cfg)

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if c, ok := newCfg.(*config.Config); ok {
			logger.Log.Info("Config reloaded", zap.String("mode", c.Server.Mode))
		}
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

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
