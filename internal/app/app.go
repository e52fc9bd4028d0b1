package app

import (
	"database/sql"
	"fmt"
	"log"

	"taskpad/internal/config"
	"taskpad/internal/handlers"
	"taskpad/internal/limiter"
	"taskpad/internal/pdf"
	"taskpad/internal/repositories"
	"taskpad/internal/routes"
	"taskpad/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "taskpad/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	codeRepo := repositories.NewLoginCodeRepository(db)
	linkRepo := repositories.NewMagicLinkRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	// === Limiter ===
	var attempts limiter.AttemptLimiter
	switch cfg.Limiter.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Limiter.RedisAddr})
		attempts = limiter.NewRedisLimiter(rdb, cfg.Limiter.MaxAttempts, cfg.Limiter.Window())
		log.Printf("[app] attempt limiter: redis (%s)", cfg.Limiter.RedisAddr)
	default:
		attempts = limiter.NewMemoryLimiter(cfg.Limiter.MaxAttempts, cfg.Limiter.Window(), cfg.Limiter.SweepInterval())
		log.Printf("[app] attempt limiter: in-memory")
	}
	defer attempts.Stop()

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	alertService := services.NewAlertService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	authService := services.NewAuthService(cfg.JWT.Secret)
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	otpService := services.NewOTPService(
		codeRepo,
		linkRepo,
		emailService,
		attempts,
		alertService,
		cfg.OTP.CodeLength,
		cfg.OTP.TTL(),
		cfg.OTP.LinkTTL(),
		cfg.Frontend.URL,
	)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(otpService, userService, authService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService, pdf.NewTaskExporter())

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		[]byte(cfg.JWT.Secret),
		authHandler,
		userHandler,
		taskHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
