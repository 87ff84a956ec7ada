package bookings

import (
	"errors"
	"net/http"

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

// currentUserID pulls the authenticated user's ID out of the gin context
// (set by the JWT middleware) and parses it.
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

// CreateBooking handles POST /bookings
func (ctrl *Controller) CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := ctrl.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		if conflict, ok := AsSeatConflict(err); ok {
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil,
				map[string]interface{}{"conflicting_seats": conflict.Seats})
			return
		}
		switch {
		case errors.Is(err, ErrShowtimeNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		case errors.Is(err, ErrInsufficientSeats):
			response.RespondJSON(c, "error", http.StatusConflict, "Not enough seats available", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create booking", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking created successfully", resp, nil)
}

// GetBookedSeats handles GET /showtimes/:showtimeId/seats
func (ctrl *Controller) GetBookedSeats(c *gin.Context) {
	showtimeID, err := uuid.Parse(c.Param("showtimeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid showtime ID", nil, err.Error())
		return
	}

	resp, err := ctrl.service.GetBookedSeats(c.Request.Context(), showtimeID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load booked seats", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booked seats retrieved successfully", resp, nil)
}

// GetUserBookings handles GET /users/bookings
func (ctrl *Controller) GetUserBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := ctrl.service.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load bookings", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", resp, nil)
}

// CancelBooking handles POST /bookings/:id/cancel
func (ctrl *Controller) CancelBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	if err := ctrl.service.CancelBooking(c.Request.Context(), bookingID, userID); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrNotBookingOwner):
			response.RespondJSON(c, "error", http.StatusForbidden, "Booking does not belong to user", nil, nil)
		case errors.Is(err, ErrAlreadyCancelled):
			response.RespondJSON(c, "error", http.StatusConflict, "Booking is already cancelled", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to cancel booking", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking cancelled successfully", nil, nil)
}
