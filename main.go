package main

import (
	"log"
	"os"
	"strings"

	"github.com/connosssss/trackr/handlers"
	"github.com/connosssss/trackr/initializers"
	"github.com/connosssss/trackr/middleware"
	"github.com/connosssss/trackr/repository"

	"github.com/gin-gonic/gin"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if len(jwtSecret) < 32 {
		log.Fatal("JWT_SECRET must be set and at least 32 characters")
	}

	db, err := initializers.OpenDatabase(dbURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := initializers.RunMigrations(db, "migrations"); err != nil {
		log.Fatal(err)
	}

	if os.Getenv("GIN_MODE") == "release" || strings.ToLower(os.Getenv("APP_ENV")) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	usersRepo := repository.NewUsersRepository(db)
	sessionsRepo := repository.NewSessionsRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	authHandler := handlers.NewAuthHandler(usersRepo)
	sessionsHandler := handlers.NewSessionsHandler(sessionsRepo)
	statsHandler := handlers.NewStatsHandler(sessionsRepo)
	sheetsHandler := handlers.NewSheetsHandler(sessionsRepo)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLogger())
	r.Use(gin.Recovery())

	// Trusted proxies matter for client IPs behind a reverse proxy.
	if proxies := os.Getenv("TRUSTED_PROXIES"); proxies != "" {
		parts := strings.Split(proxies, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := r.SetTrustedProxies(parts); err != nil {
			log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
		}
	} else {
		_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	}

	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit())

	r.GET("/health", handlers.HealthCheck)

	// Auth endpoints get their own stricter per-IP limit.
	public := r.Group("/", middleware.RateLimitAuth())
	public.POST("/register", authHandler.Register)
	public.POST("/login", func(c *gin.Context) {
		c.Set("jwtSecret", jwtSecret)
		authHandler.Login(c)
	})

	auth := r.Group("/", handlers.AuthMiddleware(jwtSecret))
	{
		auth.POST("/sessions", sessionsHandler.CreateSession)
		auth.GET("/sessions", sessionsHandler.GetSessions)
		auth.PUT("/sessions/:id", sessionsHandler.UpdateSession)
		auth.DELETE("/sessions/:id", sessionsHandler.DeleteSession)

		auth.GET("/sessions/export", sheetsHandler.Export)
		auth.POST("/sessions/import", sheetsHandler.Import)

		auth.GET("/stats/summary", statsHandler.GetSummary)
		auth.GET("/stats/buckets", statsHandler.GetBuckets)
		auth.GET("/stats/pie", statsHandler.GetPie)
		auth.GET("/stats/heatmap", statsHandler.GetHeatmap)
		auth.GET("/period-types", statsHandler.GetPeriodTypes)
		auth.GET("/chart-types", statsHandler.GetChartTypes)

		auth.GET("/settings", settingsHandler.GetSettings)
		auth.PATCH("/settings", settingsHandler.UpdateSettings)
	}

	r.Run(":8080")
}
