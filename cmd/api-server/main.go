package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"showhub/database"
	"showhub/internal/cache"
	"showhub/internal/config"
	"showhub/internal/httpapi/handler"
	"showhub/internal/httpapi/middleware"
	"showhub/internal/httpapi/repository"
	"showhub/internal/httpapi/service"
	"showhub/internal/logger"
	"showhub/internal/tmdb"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not load config:", err)
		os.Exit(1)
	}

	logger.InitFromConfig(cfg)
	log := logger.L()

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Error("connecting to database", "error", err)
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(cfg)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisCache.Ping(pingCtx); err != nil {
		// Rankings recompute on every request without the cache, nothing
		// else depends on it.
		log.Warn("redis unreachable, ranking snapshots disabled", "addr", cfg.RedisAddr, "error", err)
	}
	cancel()

	tmdbClient := tmdb.NewClient(cfg.TMDBAPIURL, cfg.TMDBAPIKey)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	listRepo := repository.NewListRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	ratingService := service.NewRatingService(ratingRepo)
	watchlistService := service.NewWatchlistService(watchlistRepo)
	reviewService := service.NewReviewService(reviewRepo, tmdbClient)
	listService := service.NewListService(listRepo)
	suggestionService := service.NewSuggestionService(suggestionRepo)
	rankingService := service.NewRankingService(ratingRepo, watchlistRepo, tmdbClient, redisCache, cfg.RankingTTL)
	profileService := service.NewProfileService(userRepo, ratingRepo, watchlistRepo, listService)
	notificationService := service.NewNotificationService(watchlistRepo, tmdbClient, service.NewMemoryNotifiedLog())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMW := middleware.AuthMiddleware(authService)
	api := r.Group("/api/v1")

	handler.NewAuthHandler(authService, cfg.AccessTokenTTL).RegisterRoutes(api.Group("/auth"), authMW)
	handler.NewShowHandler(tmdbClient).RegisterRoutes(api.Group("/shows"))
	handler.NewRankingHandler(rankingService).RegisterRoutes(api.Group("/rankings"))

	protected := api.Group("/", authMW)
	handler.NewRatingHandler(ratingService).RegisterRoutes(protected.Group("/ratings"))
	handler.NewWatchlistHandler(watchlistService).RegisterRoutes(protected.Group("/watchlist"))
	handler.NewReviewHandler(reviewService, userRepo).RegisterRoutes(protected.Group("/reviews"))
	handler.NewListHandler(listService, userRepo).RegisterRoutes(protected.Group("/lists"))
	handler.NewSuggestionHandler(suggestionService, userRepo).RegisterRoutes(protected.Group("/suggestions"))
	handler.NewProfileHandler(profileService).RegisterRoutes(protected.Group("/profiles"))
	handler.NewNotificationHandler(notificationService).RegisterRoutes(protected.Group("/notifications"))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	log.Info("server starting", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
