// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"tripveda/internal/agents"
	"tripveda/internal/analytics"
	"tripveda/internal/auth"
	"tripveda/internal/bookings"
	"tripveda/internal/coupons"
	"tripveda/internal/pages"
	"tripveda/internal/shared/config"
	"tripveda/internal/shared/database"
	"tripveda/internal/tours"
	"tripveda/pkg/cache"
	"tripveda/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	log      *logger.Logger
	notifier bookings.Notifier

	cacheService cache.Service
	couponsSvc   coupons.Service
	toursSvc     tours.Service
}

// NewRouter creates a new router instance. The notifier may be nil when
// the notification pipeline is unavailable; bookings then skip emails.
func NewRouter(cfg *config.Config, db *database.DB, log *logger.Logger, notifier bookings.Notifier) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		log:      log,
		notifier: notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.cacheService = cache.NewService(r.db.GetRedisClient())

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Coupons before tours: the pricing quote validates coupon codes.
		r.setupCouponRoutes(api)
		r.setupAgentRoutes(api)
		r.setupTourRoutes(api)
		r.setupBookingRoutes(api)
		r.setupPageRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "tripveda-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "tripveda-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		notifications := "disabled"
		if r.notifier != nil {
			notifications = "enabled"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":        "operational",
			"api_version":   r.config.APIVersion,
			"notifications": notifications,
			"timestamp":     time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

func (r *Router) setupCouponRoutes(rg *gin.RouterGroup) {
	couponRepo := coupons.NewRepository(r.db.GetPostgreSQL())
	couponService := coupons.NewService(couponRepo)
	couponController := coupons.NewController(couponService)

	// Store coupon service for dependency injection
	r.couponsSvc = couponService

	coupons.SetupCouponRoutes(rg, couponController)
}

func (r *Router) setupAgentRoutes(rg *gin.RouterGroup) {
	agentRepo := agents.NewRepository(r.db.GetPostgreSQL())
	agentService := agents.NewService(agentRepo)
	agentController := agents.NewController(agentService)

	agents.SetupAgentRoutes(rg, agentController)
}

func (r *Router) setupTourRoutes(rg *gin.RouterGroup) {
	tourRepo := tours.NewRepository(r.db.GetPostgreSQL())
	tourService := tours.NewService(tourRepo, r.couponsSvc, r.cacheService)
	tourController := tours.NewController(tourService)

	// Store tour service for dependency injection
	r.toursSvc = tourService

	tours.SetupTourRoutes(rg, tourController)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, r.toursSvc, r.notifier, r.log)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

func (r *Router) setupPageRoutes(rg *gin.RouterGroup) {
	pageRepo := pages.NewRepository(r.db.GetPostgreSQL())
	pageService := pages.NewService(pageRepo, r.cacheService)
	pageController := pages.NewController(pageService)

	pages.SetupPageRoutes(rg, pageController)
}

func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo, r.cacheService)
	analyticsController := analytics.NewController(analyticsService)

	analytics.SetupAnalyticsRoutes(rg, analyticsController)
}
