package payments

import (
	"errors"
	"net/http"

	"cinebook/internal/bookings"
	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}

	id, ok := raw.(string)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(id)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return uuid.Nil, false
	}
	return userID, true
}

// CreatePayment handles POST /payments
func (ctrl *Controller) CreatePayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	info, err := ctrl.service.CreatePayment(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, bookings.ErrNotBookingOwner):
			response.RespondJSON(c, "error", http.StatusForbidden, "Booking does not belong to user", nil, nil)
		case errors.Is(err, ErrPaymentFailed):
			response.RespondJSON(c, "error", http.StatusPaymentRequired, "Payment failed. Please try again.", nil, nil)
		case errors.Is(err, ErrBookingNotPayable):
			response.RespondJSON(c, "error", http.StatusConflict, "Booking cannot be paid in its current state", nil, nil)
		case errors.Is(err, ErrReservationLapsed):
			response.RespondJSON(c, "error", http.StatusConflict, "Seat reservation expired. Please book again.", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to process payment", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Payment processed successfully", info, nil)
}

// GetUserPayments handles GET /users/payments
func (ctrl *Controller) GetUserPayments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payments, err := ctrl.service.GetUserPayments(c.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load payments", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Payments retrieved successfully", payments, nil)
}
