package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	"github.com/DmitriiShilkin/creative-hub/internal/cache"
	"github.com/DmitriiShilkin/creative-hub/internal/handlers"
	"github.com/DmitriiShilkin/creative-hub/internal/middleware"
	"github.com/DmitriiShilkin/creative-hub/internal/repository"
	"github.com/DmitriiShilkin/creative-hub/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Creative Hub Backend",
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("ALLOWED_ORIGINS"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize database connection
	db, err := repository.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis cache
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsedDB, err := strconv.Atoi(dbStr); err == nil {
			redisDB = parsedDB
		}
	}

	redisCache := cache.NewRedisCache(redisAddr, redisPassword, redisDB)
	if err := redisCache.Ping(); err != nil {
		log.Printf("WARNING: Redis connection failed: %v. Running without presence tracking.", err)
		redisCache = nil
	} else {
		log.Println("Redis cache connected successfully")
	}

	browsingCache := cache.NewBrowsingCache(redisCache)

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db)
	jobRepo := repository.NewJobRepository(db)
	eventListingRepo := repository.NewEventListingRepository(db)
	jobListingRepo := repository.NewJobListingRepository(db)
	eventViewRepo := repository.NewEventViewRepository(db)
	jobViewRepo := repository.NewJobViewRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	proposalRepo := repository.NewProposalRepository(db)

	// Initialize services
	eventReadService := service.NewEventReadService(db, eventListingRepo, eventViewRepo, browsingCache)
	jobReadService := service.NewJobReadService(db, jobListingRepo, jobViewRepo, browsingCache)
	favoriteService := service.NewFavoriteService(favoriteRepo, eventRepo, jobRepo)
	participationService := service.NewParticipationService(participantRepo, proposalRepo, eventRepo, jobRepo)

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(eventReadService, favoriteService, participationService)
	jobHandler := handlers.NewJobHandler(jobReadService, favoriteService, participationService)

	// All listing routes resolve the viewer when a token is present but stay
	// open to anonymous traffic; checkpoints then key off the client IP.
	api := app.Group("/api", middleware.OriginAllowed(), middleware.ViewerContext())

	viewedLimiter := limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	})

	// Event routes
	events := api.Group("/events")
	events.Get("/", eventHandler.List)
	events.Get("/mine", middleware.AuthRequired(), eventHandler.ListMine)
	events.Post("/viewed", viewedLimiter, eventHandler.MarkViewed)
	events.Get("/:id", eventHandler.Get)
	events.Delete("/:id/browsing", eventHandler.StopBrowsing)
	events.Post("/:id/favorite", middleware.AuthRequired(), eventHandler.Favorite)
	events.Delete("/:id/favorite", middleware.AuthRequired(), eventHandler.Unfavorite)
	events.Post("/:id/join", middleware.AuthRequired(), eventHandler.Join)
	events.Delete("/:id/join", middleware.AuthRequired(), eventHandler.Leave)

	// Job routes
	jobs := api.Group("/jobs")
	jobs.Get("/", jobHandler.List)
	jobs.Get("/mine", middleware.AuthRequired(), jobHandler.ListMine)
	jobs.Post("/viewed", viewedLimiter, jobHandler.MarkViewed)
	jobs.Get("/:id", jobHandler.Get)
	jobs.Delete("/:id/browsing", jobHandler.StopBrowsing)
	jobs.Post("/:id/favorite", middleware.AuthRequired(), jobHandler.Favorite)
	jobs.Delete("/:id/favorite", middleware.AuthRequired(), jobHandler.Unfavorite)
	jobs.Post("/:id/proposals", middleware.AuthRequired(), jobHandler.Propose)
	jobs.Delete("/:id/proposals", middleware.AuthRequired(), jobHandler.Withdraw)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	listenErr := app.Listen(":" + port)
	if redisCache != nil {
		_ = redisCache.Close()
	}
	log.Fatal(listenErr)
}
