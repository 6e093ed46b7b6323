package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkessler/squares-backend/config"
	"github.com/mkessler/squares-backend/controllers"
	"github.com/mkessler/squares-backend/routes"
	"github.com/mkessler/squares-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// setupRouter initializes Gin routes and middleware
func setupRouter() *gin.Engine {
	r := gin.Default()

	// Middleware
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "X-User-ID"},
	}))

	// Setup REST routes
	routes.SetupRoutes(r)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket board endpoint
	r.GET("/ws/games/:id", controllers.GameWebSocket)

	return r
}

func main() {
	settings := config.Load()

	db := config.SetupDatabase(settings.DatabaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional redis bridge for multi-instance fan-out
	var rdb *redis.Client
	if settings.RedisURL != "" {
		opts, err := redis.ParseURL(settings.RedisURL)
		if err != nil {
			log.Fatalf("[FATAL] invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("[FATAL] redis unreachable: %v", err)
		}
	}

	hub := services.NewHub()
	bus := services.NewEventBus(hub, rdb)
	go bus.Run(ctx)

	svc := services.Init(db, bus)

	controllers.Hub = hub
	controllers.ScoreClient = services.NewScoreClient(settings.SportradarAPIKey)
	controllers.CronSecret = settings.CronSecret

	// Live score polling for auto-updating games
	if settings.SportradarAPIKey != "" {
		go svc.RunScorePoller(ctx, controllers.ScoreClient, settings.ScorePollInterval)
	} else {
		log.Println("[INFO] SPORTRADAR_API_KEY not set, score poller disabled")
	}

	r := setupRouter()

	log.Printf("[INFO] listening on :%s", settings.Port)
	if err := r.Run(":" + settings.Port); err != nil {
		log.Fatalf("[FATAL] server exited: %v", err)
	}
}
