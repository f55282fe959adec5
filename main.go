package main

import (
	"log"
	"os"
	"strings"
	"time"

	"hotelrbs/database"
	"hotelrbs/handlers"
	"hotelrbs/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file (ignored in production where env vars are set directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found — using environment variables")
	}

	// Optional booking audit store
	database.InitDB()

	// Hotel inventory API credentials are mandatory
	if err := services.InitTravzilla(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	// Customer microservice
	services.InitCustomerAPI()

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// Trusted proxies (Railway sits behind a proxy)
	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	// CORS — allow configured frontend origins
	frontendURLs := os.Getenv("FRONTEND_URL")
	allowedOrigins := []string{
		"http://localhost:8083", "http://localhost:3000",
		"http://127.0.0.1:8083", "http://127.0.0.1:3000",
	}
	if frontendURLs != "" {
		for _, u := range strings.Split(frontendURLs, ",") {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers.Register(r.Group("/api"))

	port := os.Getenv("PROXY_SERVER_PORT")
	if port == "" {
		port = "3001"
	}

	log.Printf("🚀 Hotel proxy server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
