package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"petspa-backend/config"
	"petspa-backend/internal/auth"
	"petspa-backend/internal/booking"
	"petspa-backend/internal/mw"
	"petspa-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store) *gin.Engine {
	r := gin.Default()

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	engine := booking.NewEngine(s)
	handler := NewHandler(s, engine, tokens, cfg.Auth.BcryptCost)

	r.Use(mw.CORS(cfg.Server.AllowedOrigins))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "🐾 Pet Spa API funcionando correctamente"})
	})

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	// Cached public listings. Availability is deliberately uncached.
	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	authenticated := mw.Authenticate(tokens, s)
	adminOnly := mw.AdminOnly()

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/auth/register", handler.Register)
		api.POST("/auth/login", handler.Login)
		api.GET("/auth/profile", authenticated, handler.Profile)

		api.GET("/services", caching, handler.ListServices)
		api.GET("/services/:id", handler.GetService)
		api.POST("/services", authenticated, adminOnly, handler.CreateService)
		api.PUT("/services/:id", authenticated, adminOnly, handler.UpdateService)
		api.DELETE("/services/:id", authenticated, adminOnly, handler.DeleteService)

		appointments := api.Group("/appointments")
		appointments.Use(authenticated)
		{
			appointments.GET("/available/:date", handler.GetAvailability)
			appointments.POST("", handler.CreateAppointment)
			appointments.GET("/my", handler.MyAppointments)
			appointments.GET("/:id", handler.GetAppointment)
			appointments.PUT("/:id", handler.UpdateAppointment)
			appointments.DELETE("/:id", handler.CancelAppointment)
		}

		api.GET("/comments", caching, handler.ListComments)
		api.POST("/comments", authenticated, handler.CreateComment)
		api.PUT("/comments/:id", authenticated, handler.UpdateComment)
		api.DELETE("/comments/:id", authenticated, handler.DeleteComment)

		admin := api.Group("/admin")
		admin.Use(authenticated, adminOnly)
		{
			admin.GET("/stats", handler.GetStats)
			admin.GET("/appointments", handler.ListAllAppointments)
			admin.GET("/comments", handler.ListAllComments)
			admin.GET("/users", handler.ListAllUsers)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Ruta no encontrada"})
	})

	return r
}
