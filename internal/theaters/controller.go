package theaters

import (
	"net/http"

	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) ListTheaters(c *gin.Context) {
	theaters, err := ctrl.service.ListTheaters(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load theaters", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Theaters retrieved successfully", theaters, nil)
}

func (ctrl *Controller) AddTheater(c *gin.Context) {
	var req CreateTheaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	theater, err := ctrl.service.AddTheater(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create theater", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Theater created successfully", theater, nil)
}
