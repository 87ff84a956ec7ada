package showtimes

import (
	"errors"
	"net/http"

	"cinebook/internal/movies"
	"cinebook/internal/shared/utils/response"
	"cinebook/internal/theaters"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) GetShowtime(c *gin.Context) {
	id, err := uuid.Parse(c.Param("showtimeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid showtime ID", nil, nil)
		return
	}

	showtime, err := ctrl.service.GetShowtime(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrShowtimeNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Showtime not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load showtime", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Showtime retrieved successfully", showtime, nil)
}

func (ctrl *Controller) ListShowtimesByMovie(c *gin.Context) {
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid movie ID", nil, nil)
		return
	}

	results, err := ctrl.service.ListShowtimesByMovie(c.Request.Context(), movieID)
	if err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Movie not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load showtimes", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Showtimes retrieved successfully", results, nil)
}

func (ctrl *Controller) AddShowtime(c *gin.Context) {
	var req CreateShowtimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	showtime, err := ctrl.service.AddShowtime(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, movies.ErrMovieNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Movie not found", nil, nil)
		case errors.Is(err, theaters.ErrTheaterNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Theater not found", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create showtime", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Showtime created successfully", showtime, nil)
}
