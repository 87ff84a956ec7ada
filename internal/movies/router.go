package movies

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupMovieRoutes(rg *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse the catalog
	publicMovies := rg.Group("/movies")
	{
		publicMovies.GET("", controller.ListMovies)                  // GET /api/v1/movies
		publicMovies.GET("/genres", controller.GetAvailableGenres)   // GET /api/v1/movies/genres
		publicMovies.GET("/recent", controller.GetRecentMovies)      // GET /api/v1/movies/recent?limit=6
		publicMovies.GET("/popular", controller.GetPopularMovies)    // GET /api/v1/movies/popular?limit=6
		publicMovies.GET("/genre/:genre", controller.GetMoviesByGenre) // GET /api/v1/movies/genre/:genre
		publicMovies.GET("/:movieId", controller.GetMovie)           // GET /api/v1/movies/:movieId
	}

	// Admin routes - catalog management
	adminMovies := rg.Group("/admin/movies")
	adminMovies.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminMovies.POST("", controller.AddMovie)                 // POST /api/v1/admin/movies
		adminMovies.DELETE("/:movieId", controller.DeactivateMovie) // DELETE /api/v1/admin/movies/:movieId
	}
}
