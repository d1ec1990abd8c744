package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pingboard/backend/internal/config"
	"github.com/pingboard/backend/internal/database"
	"github.com/pingboard/backend/internal/handler"
	"github.com/pingboard/backend/internal/middleware"
	"github.com/pingboard/backend/internal/repository"
	"github.com/pingboard/backend/internal/service"
	"github.com/pingboard/backend/internal/tokenstore"
	"github.com/pingboard/backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	log.Println("Config loaded successfully")

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	database.Connect(cfg)
	database.Migrate()

	// Initialize Redis (refresh token store + rate limiting)
	redisOpt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	refreshStore := tokenstore.NewRedisStore(redisClient)
	defer refreshStore.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	pingRepo := repository.NewPingRepository(database.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo)
	tokenService := service.NewTokenService(userRepo, refreshStore, cfg.JWTSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)
	pingService := service.NewPingService(pingRepo, userRepo, cfg.PageSize)
	voteService := service.NewVoteService(pingRepo, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, tokenService)
	userHandler := handler.NewUserHandler(authService)
	pingHandler := handler.NewPingHandler(pingService, voteService)

	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
		BlockTime:   cfg.RateLimitBlockTime,
	})

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")

	// Public routes (credential endpoints are rate limited per IP)
	api.POST("/token/", rateLimiter.Middleware(), authHandler.ObtainToken)
	api.POST("/token/refresh/", authHandler.RefreshToken)
	api.POST("/token/revoke/", authHandler.RevokeToken)
	api.POST("/users/register/", rateLimiter.Middleware(), authHandler.Register)

	// Read routes: auth is optional and only fills the viewer's vote flags
	reads := api.Group("")
	reads.Use(middleware.OptionalAuth(cfg.JWTSecret))
	{
		reads.GET("/pings/", pingHandler.List)
		reads.GET("/pings/:id/", pingHandler.Get)
	}

	// Protected routes (require access token)
	protected := api.Group("")
	protected.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		protected.GET("/users/profile/", userHandler.GetProfile)
		protected.PUT("/users/profile/", userHandler.UpdateProfile)
		protected.PATCH("/users/profile/", userHandler.UpdateProfile)
		protected.POST("/users/change-password/", userHandler.ChangePassword)

		protected.POST("/pings/", pingHandler.Create)
		protected.PUT("/pings/:id/", pingHandler.Update)
		protected.PATCH("/pings/:id/", pingHandler.Update)
		protected.DELETE("/pings/:id/", pingHandler.Delete)
		protected.POST("/pings/:id/vote/", pingHandler.Vote)
		protected.GET("/pings/user/", pingHandler.ListMine)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
