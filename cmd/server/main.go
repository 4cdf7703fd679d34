package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Load .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/aircraft-hangar/internal/config"     // Internal config loader
	"github.com/iliyamo/aircraft-hangar/internal/database"   // MySQL connection helper
	"github.com/iliyamo/aircraft-hangar/internal/handler"    // HTTP handlers
	"github.com/iliyamo/aircraft-hangar/internal/importer"   // CSV import engine
	"github.com/iliyamo/aircraft-hangar/internal/middleware" // Cache and rate limit middleware
	"github.com/iliyamo/aircraft-hangar/internal/queue"      // Background import-event consumer
	"github.com/iliyamo/aircraft-hangar/internal/repository" // Data access layer
	"github.com/iliyamo/aircraft-hangar/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load() // Load .env if present; real env vars win

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName) // Open MySQL pool
	if err != nil {
		log.Fatalf("database: %v", err) // Cannot run without a database
	}
	defer db.Close()

	// Repositories share the single *sql.DB pool.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	aircraft := repository.NewAircraftRepo(db)
	collection := repository.NewCollectionRepo(db)

	// The importer talks to storage through the Store interface so tests can
	// swap in an in-memory fake.
	imp := importer.New(repository.NewImportStore(db))

	authH := handler.NewAuthHandler(cfg, users, tokens)
	hangarH := handler.NewHangarHandler(aircraft, collection)
	importH := handler.NewImportHandler(imp)
	statsH := handler.NewStatsHandler(aircraft, collection)
	publicH := handler.NewPublicHandler(aircraft)

	e := echo.New() // Create Echo instance

	// Redis backs both the response cache and the rate limiter.  The client
	// may be nil when Redis is unavailable; both middlewares degrade to
	// pass-through in that case.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)                                      // Health check
	router.RegisterAuth(e, authH, cfg.JWTSecret)                  // Auth + session endpoints
	router.RegisterHangar(e, hangarH, importH, statsH, cfg.JWTSecret) // Collection, import and stats
	router.RegisterPublic(e, publicH,
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb)) // Public catalog, cached

	// Consume import.completed events in the background and append them to
	// logs/import.log.  The consumer reconnects on broker failures and never
	// takes the server down.
	go func() {
		if err := queue.StartImportConsumer(); err != nil {
			log.Printf("import consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
