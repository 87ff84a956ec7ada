package payments

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPaymentRoutes configures all payment-related routes
func SetupPaymentRoutes(rg *gin.RouterGroup, controller *Controller) {
	payments := rg.Group("/payments")
	payments.Use(middleware.JWTAuth())
	{
		payments.POST("", controller.CreatePayment) // POST /api/v1/payments
	}

	users := rg.Group("/users")
	users.Use(middleware.JWTAuth())
	{
		users.GET("/payments", controller.GetUserPayments) // GET /api/v1/users/payments
	}
}
