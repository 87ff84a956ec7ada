// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"cinebook/internal/auth"
	"cinebook/internal/bookings"
	"cinebook/internal/movies"
	"cinebook/internal/notifications"
	"cinebook/internal/payments"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/showtimes"
	"cinebook/internal/theaters"
	"cinebook/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	cache    cache.Service
	producer notifications.Producer // nil when Kafka is disabled

	// services shared across route groups
	movieService    movies.Service
	theaterService  theaters.Service
	showtimeService showtimes.Service
	bookingService  bookings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		cache:    cache.NewService(db.GetRedisClient()),
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Catalog before inventory: showtimes depend on movie and theater
		// services, bookings depend on the showtime service.
		r.setupMovieRoutes(api)
		r.setupTheaterRoutes(api)
		r.setupShowtimeRoutes(api)
		r.setupBookingRoutes(api)
		r.setupPaymentRoutes(api)
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
				"service":   "cinebook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinebook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupMovieRoutes configures movie catalog routes
func (r *Router) setupMovieRoutes(rg *gin.RouterGroup) {
	movieRepo := movies.NewRepository(r.db.GetPostgreSQL())
	r.movieService = movies.NewService(movieRepo, r.cache)
	movieController := movies.NewController(r.movieService)

	movies.SetupMovieRoutes(rg, movieController)
}

// setupTheaterRoutes configures theater catalog routes
func (r *Router) setupTheaterRoutes(rg *gin.RouterGroup) {
	theaterRepo := theaters.NewRepository(r.db.GetPostgreSQL())
	r.theaterService = theaters.NewService(theaterRepo, r.cache)
	theaterController := theaters.NewController(r.theaterService)

	theaters.SetupTheaterRoutes(rg, theaterController)
}

// setupShowtimeRoutes configures showtime routes
func (r *Router) setupShowtimeRoutes(rg *gin.RouterGroup) {
	showtimeRepo := showtimes.NewRepository(r.db.GetPostgreSQL())
	r.showtimeService = showtimes.NewService(showtimeRepo, r.movieService, r.theaterService, r.cache)
	showtimeController := showtimes.NewController(r.showtimeService)

	showtimes.SetupShowtimeRoutes(rg, showtimeController)
}

// setupBookingRoutes configures booking ledger routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	r.bookingService = bookings.NewService(bookingRepo, r.showtimeService, r.cache, r.config.Booking.SeatClaimTTL)
	bookingController := bookings.NewController(r.bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupPaymentRoutes configures payment routes
func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	paymentRepo := payments.NewRepository(r.db.GetPostgreSQL())
	gateway := payments.NewSimulatedGateway(r.config.Payment.SuccessRate)
	paymentService := payments.NewService(paymentRepo, r.bookingService, gateway, r.producer, r.config.Payment.Currency)
	paymentController := payments.NewController(paymentService)

	payments.SetupPaymentRoutes(rg, paymentController)
}
