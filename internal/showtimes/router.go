package showtimes

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupShowtimeRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/showtimes/:showtimeId", controller.GetShowtime)       // GET /api/v1/showtimes/:showtimeId
	rg.GET("/movies/:movieId/showtimes", controller.ListShowtimesByMovie) // GET /api/v1/movies/:movieId/showtimes

	adminShowtimes := rg.Group("/admin/showtimes")
	adminShowtimes.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminShowtimes.POST("", controller.AddShowtime) // POST /api/v1/admin/showtimes
	}
}
