package theaters

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTheaterRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/theaters", controller.ListTheaters) // GET /api/v1/theaters

	adminTheaters := rg.Group("/admin/theaters")
	adminTheaters.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminTheaters.POST("", controller.AddTheater) // POST /api/v1/admin/theaters
	}
}
