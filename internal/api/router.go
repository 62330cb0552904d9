package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"ota-report-backend/config"
	"ota-report-backend/internal/crawler"
	"ota-report-backend/internal/mw"
	"ota-report-backend/internal/pms"
	"ota-report-backend/internal/store"
)

// NewRouter creates and configures the Gin router.
func NewRouter(cfg *config.Config, cr *crawler.Crawler, client *pms.Client, users store.UserStore) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(cfg, cr, client, users)

	rateLimiter := mw.RateLimit(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.CacheGET(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/health", handler.Health)
		api.POST("/auth/login", handler.AuthLogin)

		authed := api.Group("")
		authed.Use(mw.RequireAuth(cfg.Auth.JWTSecret))
		{
			authed.POST("/login", handler.UpstreamLogin)
			authed.POST("/login-and-fetch", handler.LoginAndFetch)
			authed.GET("/facilities", caching, handler.Facilities)

			scoped := authed.Group("")
			scoped.Use(mw.RequireFacilityAccess())
			{
				scoped.POST("/login-and-fetch-facility", handler.LoginAndFetchFacility)
				scoped.POST("/list-rooms", handler.ListRooms)
				scoped.POST("/calendar-data", handler.CalendarData)
				scoped.POST("/report-text", handler.ReportText)
			}
		}
	}

	return r
}
