package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/evalle012006/sg-sub011/config"
	"github.com/evalle012006/sg-sub011/jobs"
	"github.com/evalle012006/sg-sub011/routes"
	"github.com/evalle012006/sg-sub011/services"
	"github.com/evalle012006/sg-sub011/services/logger"
	"github.com/evalle012006/sg-sub011/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: could not load .env file, falling back to existing environment: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	settings := services.NewSettingsService(services.SettingsServiceOptions{
		DB:     config.DB,
		Redis:  config.RedisClient,
		Logger: logger.NewDefaultLogger(logger.InfoLevel),
	})
	if err := settings.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load status catalog: %v", err)
	}

	triggers := services.NewTriggerService(services.TriggerServiceOptions{
		DB:        config.DB,
		Mailer:    services.NewMailService(),
		Broadcast: notification.NewMelodyService(m),
		Logger:    logger.NewDefaultLogger(logger.InfoLevel),
	})
	jobs.SetNotificationSweeper(triggers)

	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, config.DB, config.RedisClient, m, settings)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
