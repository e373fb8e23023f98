package main

import (
	"context"
	"log"
	"os"

	"healthcard-backend/internal/config"
	"healthcard-backend/internal/routes"
	"healthcard-backend/internal/scheduler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config.ConnectDB()

	// Background sweep: scheduled appointments whose date has passed become
	// completed. Runs for the life of the process.
	sweeper := scheduler.NewSweeper(config.DB, scheduler.DefaultInterval)
	sweeper.Start(context.Background())

	r := gin.Default()
	r.Use(cors.Default())

	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server running on port " + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
