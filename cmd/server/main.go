package main

import (
	"os"

	"github.com/NogueiraLn/dscatalog/config"
	"github.com/NogueiraLn/dscatalog/internal/delivery"
	"github.com/NogueiraLn/dscatalog/internal/repository"
	"github.com/NogueiraLn/dscatalog/internal/usecase"
	"github.com/NogueiraLn/dscatalog/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', falling back to info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Prices serialize as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true

	logger.Info("Starting catalog service...")

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connection established.")

	categoryRepo := repository.NewPostgresCategoryRepository(database, logger)
	productRepo := repository.NewPostgresProductRepository(database, logger)
	userRepo := repository.NewPostgresUserRepository(database, logger)
	roleRepo := repository.NewPostgresRoleRepository(database, logger)
	logger.Info("Repositories initialized.")

	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo, logger)
	productUseCase := usecase.NewProductUseCase(productRepo, categoryRepo, logger)
	userUseCase := usecase.NewUserUseCase(userRepo, roleRepo, cfg.BcryptCost, logger)
	roleUseCase := usecase.NewRoleUseCase(roleRepo, logger)
	logger.Info("Use cases initialized.")

	categoryHandler := delivery.NewCategoryHandler(categoryUseCase, logger)
	productHandler := delivery.NewProductHandler(productUseCase, logger)
	userHandler := delivery.NewUserHandler(userUseCase, logger)
	roleHandler := delivery.NewRoleHandler(roleUseCase, logger)
	authHandler := delivery.NewAuthHandler(userUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Request received")
		c.Next()
		logger.WithFields(logrus.Fields{
			"status": c.Writer.Status(),
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Info("Request completed")
	})

	categoryHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router)
	roleHandler.RegisterRoutes(router)
	authHandler.RegisterRoutes(router)
	logger.Info("API routes registered.")

	logger.Infof("Starting server on port %s", cfg.HTTPPort)
	if err := router.Run(cfg.HTTPPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
