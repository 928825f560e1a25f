package app

import (
	"fmt"
	"log"
	"time"

	"github.com/hagwonlab/homework-board/api"
	"github.com/hagwonlab/homework-board/config"
	"github.com/hagwonlab/homework-board/database"
	"github.com/hagwonlab/homework-board/router"
	"github.com/hagwonlab/homework-board/services/cron"
	"github.com/hagwonlab/homework-board/services/placeholder"
	"github.com/hagwonlab/homework-board/utils/cache"
	"github.com/hagwonlab/homework-board/utils/middleware"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		log.Println("Check whether Postgres is running or not")
		return err
	}

	if err := store.Init(); err != nil {
		log.Println("Failed to initialize database tables")
		return err
	}

	// Initialize cron jobs (enabled unless CRON_ENABLED=false)
	var cronManager *cron.CronManager
	if getEnv.CRON_ENABLED != "false" {
		cronManager = cron.NewCronManager(store)
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: failed to start cron jobs: %v", err)
			cronManager = nil
		}
	}

	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Optional Redis cache for outbound todo lookups
	var lookupCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		lookupCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: failed to connect to Redis: %v. Lookup caching disabled.", err)
		}
	}

	lookupClient := placeholder.NewClient(placeholder.Config{
		BaseURL: getEnv.LOOKUP_BASE_URL,
		Cache:   lookupCache,
	})

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach middleware
	allowedOrigins := getEnv.ALLOWED_ORIGINS
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	})

	// Setup routes
	router.SetupRoutes(app, store, lookupClient)

	// Start the server
	return server.Run()
}
