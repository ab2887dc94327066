package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-booking/config"
	"travel-booking/database"
	"travel-booking/logger"
	"travel-booking/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	logFile, err := logger.Setup("logs")
	if err != nil {
		logger.Error("Failed to set up file logging", err)
	} else {
		defer logFile.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration", err)
		os.Exit(1)
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		logger.Error("Invalid LOG_LEVEL, keeping info", err)
	}

	store, err := database.Open(cfg)
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := database.Migrate(store.DB); err != nil {
		logger.Error("Failed to migrate the database", err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		BodyLimit:    1 * 1024 * 1024, // 1MB body limit
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: cfg.FrontendURL != "*",
	}))

	routes.SetupRoutes(app, store, cfg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Warning("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Server shutdown failed", err)
		}
	}()

	logger.Success("Server is running on " + cfg.ListenAddr())
	if err := app.Listen(cfg.ListenAddr()); err != nil {
		logger.Error("Server stopped", err)
	}
	logger.Info("Server exited")
}
