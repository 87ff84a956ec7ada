package movies

import (
	"errors"
	"net/http"

	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	ListMovies(c *gin.Context)
	GetMovie(c *gin.Context)
	GetMoviesByGenre(c *gin.Context)
	GetAvailableGenres(c *gin.Context)
	GetRecentMovies(c *gin.Context)
	GetPopularMovies(c *gin.Context)
	AddMovie(c *gin.Context)
	DeactivateMovie(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) ListMovies(c *gin.Context) {
	movies, err := ctrl.service.ListMovies(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load movies", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Movies retrieved successfully", movies, nil)
}

func (ctrl *controller) GetMovie(c *gin.Context) {
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid movie ID", nil, err.Error())
		return
	}

	movie, err := ctrl.service.GetMovie(c.Request.Context(), movieID)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Movie not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load movie", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Movie retrieved successfully", movie, nil)
}

func (ctrl *controller) GetMoviesByGenre(c *gin.Context) {
	genre := c.Param("genre")
	if genre == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Genre is required", nil, nil)
		return
	}

	movies, err := ctrl.service.GetMoviesByGenre(c.Request.Context(), genre)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load movies", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Movies retrieved successfully", movies, nil)
}

func (ctrl *controller) GetAvailableGenres(c *gin.Context) {
	genres, err := ctrl.service.GetAvailableGenres(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load genres", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Genres retrieved successfully", genres, nil)
}

func (ctrl *controller) GetRecentMovies(c *gin.Context) {
	limit, ok := bindLimit(c)
	if !ok {
		return
	}
	movies, err := ctrl.service.GetRecentMovies(c.Request.Context(), limit)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load recent movies", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Recent movies retrieved successfully", movies, nil)
}

func (ctrl *controller) GetPopularMovies(c *gin.Context) {
	limit, ok := bindLimit(c)
	if !ok {
		return
	}
	movies, err := ctrl.service.GetPopularMovies(c.Request.Context(), limit)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load popular movies", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Popular movies retrieved successfully", movies, nil)
}

func (ctrl *controller) AddMovie(c *gin.Context) {
	var req CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	movie, err := ctrl.service.AddMovie(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create movie", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Movie created successfully", movie, nil)
}

func (ctrl *controller) DeactivateMovie(c *gin.Context) {
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid movie ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeactivateMovie(c.Request.Context(), movieID); err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Movie not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to deactivate movie", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Movie deactivated successfully", nil, nil)
}

// bindLimit validates the optional ?limit query. Zero means the service
// applies its default.
func bindLimit(c *gin.Context) (int, bool) {
	var query MovieListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid limit", nil, err.Error())
		return 0, false
	}
	return query.Limit, true
}
