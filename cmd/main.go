package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/studyloop/config"
	"github.com/lshigami/studyloop/database"
	_ "github.com/lshigami/studyloop/docs"
	"github.com/lshigami/studyloop/internal/cache"
	adminctrl "github.com/lshigami/studyloop/internal/controller/admin"
	userctrl "github.com/lshigami/studyloop/internal/controller/user"
	"github.com/lshigami/studyloop/internal/logger"
	"github.com/lshigami/studyloop/internal/messaging"
	"github.com/lshigami/studyloop/internal/middleware"
	"github.com/lshigami/studyloop/internal/model"
	"github.com/lshigami/studyloop/internal/repository"
	"github.com/lshigami/studyloop/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Studyloop Assessment API
// @version 1.0
// @description Assessment attempts (quizzes, mock tests, practice papers) and SM-2 flashcard reviews.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			cache.NewRedisClient,
			NewEventPublisher,
			NewRateLimiter,
			NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			func(db *gorm.DB, rc *cache.RedisClient, cfg *config.Config) repository.TestRepository {
				return repository.NewCachedTestRepository(repository.NewTestRepository(db), rc, cfg.TestCache.TTL)
			},
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewFlashcardRepository,
			repository.NewFlashcardProgressRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewScoreConverterService,
			service.NewAdminTestService,
			service.NewUserTestService,
			service.NewAttemptService,
			service.NewFlashcardService,
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewAdminTestController,
			userctrl.NewUserTestController,
			userctrl.NewAttemptController,
			userctrl.NewFlashcardController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(func(lc fx.Lifecycle, rc *cache.RedisClient) {
			lc.Append(fx.Hook{OnStop: func(context.Context) error { return rc.Close() }})
		}),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Application stop failed")
	}
}

// NewEventPublisher publishes result events to RabbitMQ when enabled.
func NewEventPublisher(lc fx.Lifecycle, cfg *config.Config) (service.EventPublisher, error) {
	if !cfg.RabbitMQ.Enabled {
		log.Info().Msg("RabbitMQ disabled, result events will not be published")
		return service.NewNoopPublisher(), nil
	}
	client, err := messaging.NewRabbitMQClient(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error { return client.Close() }})
	return client, nil
}

func NewRateLimiter(rc *cache.RedisClient, cfg *config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(rc.GetClient(), cfg.RateLimit.Requests, cfg.RateLimit.Window)
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.UserIDHeader},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	limiter *middleware.RateLimiter,
	adminTestCtrl *adminctrl.AdminTestController,
	userTestCtrl *userctrl.UserTestController,
	attemptCtrl *userctrl.AttemptController,
	flashcardCtrl *userctrl.FlashcardController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/tests", adminTestCtrl.CreateTest)
		adminAPIGroup.POST("/flashcards", adminTestCtrl.CreateFlashcard)
	}

	userAPIGroup := router.Group("/api/v1")
	{
		userAPIGroup.GET("/tests", userTestCtrl.GetAllTests)
		userAPIGroup.GET("/tests/:test_id", userTestCtrl.GetTestDetails)
	}

	callerGroup := router.Group("/api/v1", middleware.RequireUser())
	{
		limited := limiter.Middleware()

		callerGroup.POST("/attempts", limited, attemptCtrl.StartAttempt)
		callerGroup.GET("/attempts", attemptCtrl.ListAttempts)
		callerGroup.GET("/attempts/:attempt_id", attemptCtrl.GetAttempt)
		callerGroup.PATCH("/attempts/:attempt_id/progress", limited, attemptCtrl.SaveProgress)
		callerGroup.POST("/attempts/:attempt_id/submit", limited, attemptCtrl.SubmitAttempt)

		callerGroup.GET("/flashcards/review-queue", flashcardCtrl.ReviewQueue)
		callerGroup.POST("/flashcards/:card_id/reviews", limited, flashcardCtrl.SubmitReview)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Studyloop API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Test{},
		&model.Question{},
		&model.Attempt{},
		&model.Flashcard{},
		&model.FlashcardProgress{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
