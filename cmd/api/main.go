package main

import (
	"fmt"
	"time"

	"taskmanager/configs"
	v1 "taskmanager/internal/api/v1"
	"taskmanager/internal/api/v1/handlers"
	"taskmanager/internal/config"
	"taskmanager/internal/middleware"
	"taskmanager/internal/repository"
	"taskmanager/internal/service"
	"taskmanager/internal/token"
	"taskmanager/pkg/database"
	"taskmanager/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

func main() {
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	cfg := configs.LoadConfig()

	config.DB = database.ConnectDB(cfg)
	defer config.DB.Close()
	logger.SystemLogger.Info("Database connected")

	repository.CreateTableIfNotExists(config.DB)

	config.RedisClient = database.ConnectRedis(cfg)
	defer config.RedisClient.Close()

	// Repositories
	users := repository.NewPgUserRepository(config.DB)
	statuses := repository.NewPgTaskStatusRepository(config.DB)
	labels := repository.NewPgLabelRepository(config.DB)
	tasks := repository.NewPgTaskRepository(config.DB)

	// Services
	tokens := token.NewService([]byte(cfg.JWTSecret), cfg.TokenTTL, token.NewRedisRevocationStore(config.RedisClient))
	integrity := service.NewIntegrityGuard(tasks)
	h := handlers.New(
		service.NewAuthService(users, tokens),
		service.NewUserService(users, integrity),
		service.NewTaskStatusService(statuses, integrity),
		service.NewLabelService(labels, integrity),
		service.NewTaskService(tasks, users, statuses, labels),
	)

	app := fiber.New()

	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	v1.RegisterRoutes(app, h, tokens)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.SystemLogger.Info("Application ready", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
