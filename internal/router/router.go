package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/study-planner-api/internal/config"
	"github.com/yukikurage/study-planner-api/internal/constants"
	"github.com/yukikurage/study-planner-api/internal/handlers"
	"github.com/yukikurage/study-planner-api/internal/middleware"
	"github.com/yukikurage/study-planner-api/internal/ratelimit"
	"github.com/yukikurage/study-planner-api/internal/repository"
	"github.com/yukikurage/study-planner-api/internal/services"
	"github.com/yukikurage/study-planner-api/internal/utils"
	"github.com/yukikurage/study-planner-api/internal/web"
	"gorm.io/gorm"
)

// SetupRouter wires repositories, services and handlers into a gin engine.
func SetupRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	db *gorm.DB,
	store sessions.Store,
	limiter ratelimit.Limiter,
) *gin.Engine {
	utils.RegisterValidators()

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.SetHTMLTemplate(web.Templates())

	// Repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	keyPointRepo := repository.NewKeyPointRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	keyPointService := services.NewKeyPointService(keyPointRepo)
	exportService := services.NewExportService(taskRepo)
	chatService := services.NewChatService(services.ChatConfig{
		APIKey:  cfg.ChatAPIKey,
		BaseURL: cfg.ChatBaseURL,
		Model:   cfg.ChatModel,
		Timeout: cfg.ChatTimeout,
	}, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	keyPointHandler := handlers.NewKeyPointHandler(keyPointService)
	exportHandler := handlers.NewExportHandler(exportService)
	studyBotHandler := handlers.NewStudyBotHandler(chatService, limiter, cfg.ChatTimeout)
	dashboardHandler := handlers.NewDashboardHandler(authService, taskService, keyPointService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Study Planner API is running",
		})
	})

	// Public pages
	r.GET("/", authHandler.Index)
	r.GET("/register", authHandler.RegisterPage)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)

	// Session protected pages
	protected := r.Group("")
	protected.Use(middleware.RequireAuth())
	{
		protected.GET("/logout", authHandler.Logout)
		protected.GET("/dashboard", dashboardHandler.Show)
		protected.GET("/export/csv", exportHandler.ExportCSV)
		protected.POST("/studybot", studyBotHandler.Chat)
	}

	// API routes
	api := r.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		api.GET("/me", authHandler.GetCurrentUser)

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.DELETE("", taskHandler.DeleteTask)
			tasks.GET("/:id", middleware.RequireTaskID(), taskHandler.GetTask)
			tasks.PUT("/:id", middleware.RequireTaskID(), taskHandler.UpdateTask)
			tasks.POST("/:id/complete", middleware.RequireTaskID(), taskHandler.ToggleComplete)
		}

		keyPoints := api.Group("/keypoints")
		{
			keyPoints.GET("", keyPointHandler.ListKeyPoints)
			keyPoints.POST("", keyPointHandler.CreateKeyPoint)
			keyPoints.DELETE("", keyPointHandler.DeleteKeyPoint)
		}
	}

	return r
}

// NewSessionStore builds the cookie or Redis backed session store selected by SESSION_STORE.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if cfg.SessionStore == "redis" {
		redisSessions, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			cfg.RedisAddr(),
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = redisSessions
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// NewLimiter returns a Redis backed study bot limiter, or Unlimited when CHAT_RATE_LIMIT is 0.
// The returned client is nil when no Redis connection was opened.
func NewLimiter(cfg *config.Config, logger *logrus.Logger) (ratelimit.Limiter, *redis.Client) {
	if cfg.ChatRateLimit <= 0 {
		return ratelimit.Unlimited{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
	})
	limiter := ratelimit.NewRedisLimiter(client, cfg.ChatRateLimit, constants.ChatRateWindow, constants.ChatRateKeyPrefix, logger)
	return limiter, client
}
