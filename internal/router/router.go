package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tennis-rally-api/internal/database"
	"tennis-rally-api/internal/dto"
	"tennis-rally-api/internal/handler"
	"tennis-rally-api/internal/metrics"
	"tennis-rally-api/internal/middleware"
	"tennis-rally-api/internal/repository"
	"tennis-rally-api/internal/service"
)

// Config holds the dependencies of the HTTP router
type Config struct {
	DB       *gorm.DB
	Logger   *zap.Logger
	BasePath string

	JWTSecret          string
	SessionTTL         time.Duration
	RememberTTL        time.Duration
	PasswordIterations int
	// Sessions defaults to a no-op store when nil
	Sessions service.SessionStore

	AllowedOrigins []string

	Metrics *metrics.Metrics
	// Gatherer backs /metrics; defaults to the global registry
	Gatherer prometheus.Gatherer
}

// Setup wires repositories, services and handlers and registers every route
func Setup(cfg Config) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			cfg.Logger.Error("Failed to register validators", zap.Error(err))
		}
	}

	sessions := cfg.Sessions
	if sessions == nil {
		sessions = service.NewNoopSessionStore()
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := gin.New()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	// Repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	eventRepo := repository.NewEventRepository(cfg.DB)
	participationRepo := repository.NewParticipationRepository(cfg.DB)
	rallyRepo := repository.NewRallyRepository(cfg.DB)
	quizRepo := repository.NewQuizRepository(cfg.DB)

	// Services
	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL, cfg.RememberTTL)
	authService := service.NewAuthService(userRepo, service.NewPasswordHasher(cfg.PasswordIterations), tokens, sessions, cfg.Metrics, cfg.Logger)
	userService := service.NewUserService(userRepo, rallyRepo, cfg.Logger)
	eventService := service.NewEventService(eventRepo, participationRepo, cfg.Metrics, cfg.Logger)
	rallyService := service.NewRallyService(rallyRepo, userRepo, cfg.Metrics, cfg.Logger)
	quizService := service.NewQuizService(quizRepo, cfg.Metrics, cfg.Logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Logger)
	userHandler := handler.NewUserHandler(userService, eventService, authService, cfg.Logger)
	eventHandler := handler.NewEventHandler(eventService, cfg.Logger)
	rallyHandler := handler.NewRallyHandler(rallyService, cfg.Logger)
	quizHandler := handler.NewQuizHandler(quizService, cfg.Logger)

	metricsHandler := gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Probes and metrics at the root for the orchestrator and Prometheus
	r.GET("/health", healthCheck)
	r.GET("/ready", readinessCheck(cfg.DB))
	r.GET("/metrics", metricsHandler)

	base := r.Group(cfg.BasePath)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		base.GET("/health", healthCheck)
		base.GET("/ready", readinessCheck(cfg.DB))
		base.GET("/metrics", metricsHandler)
	}

	auth := base.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	protected := base.Group("")
	protected.Use(middleware.AuthWithValidator(authService))
	{
		protected.POST("/auth/logout", authHandler.Logout)

		users := protected.Group("/users")
		{
			users.GET("/me", userHandler.GetMe)
			users.PUT("/me", userHandler.UpdateMe)
			users.DELETE("/me", userHandler.DeleteMe)
			users.GET("/me/stats", userHandler.GetMyStats)
			users.GET("/me/events", userHandler.GetMyEvents)
			users.GET("/search", userHandler.SearchPlayers)
			users.GET("/:userId", userHandler.GetUser)
			users.GET("/:userId/followers", rallyHandler.GetFollowers)
			users.GET("/:userId/following", rallyHandler.GetFollowing)
			users.POST("/:userId/rally", rallyHandler.StartRally)
			users.DELETE("/:userId/rally", rallyHandler.StopRally)
		}

		quiz := protected.Group("/quiz")
		{
			quiz.GET("", quizHandler.GetQuiz)
			quiz.POST("", quizHandler.SubmitQuiz)
		}

		events := protected.Group("/events")
		{
			events.GET("", eventHandler.ListEvents)
			events.POST("", eventHandler.CreateEvent)
			events.GET("/:eventId", eventHandler.GetEvent)
			events.PUT("/:eventId", eventHandler.UpdateEvent)
			events.DELETE("/:eventId", eventHandler.DeleteEvent)
			events.POST("/:eventId/join", eventHandler.JoinEvent)
			events.POST("/:eventId/leave", eventHandler.LeaveEvent)
			events.GET("/:eventId/participants", eventHandler.GetParticipants)
		}
	}

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readinessCheck reports 503 until the database answers a ping
func readinessCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := db
		if target == nil {
			target = database.GetDB()
		}
		if err := database.Ping(target); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "database": "connected"})
	}
}
