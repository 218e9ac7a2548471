package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"parking-vacancy-backend/config"
	"parking-vacancy-backend/internal/mw"
	"parking-vacancy-backend/internal/query"
)

// NewRouter creates and configures a new Gin router over the read facade.
func NewRouter(cfg *config.ServerConfig, facade *query.Facade) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(facade)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	r.GET("/healthz", handler.GetHealth)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/garages", caching, handler.GetGarages)
		api.GET("/history/:garage_name", caching, handler.GetHistory)
	}

	return r
}
