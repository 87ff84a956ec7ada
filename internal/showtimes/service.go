package showtimes

import (
	"context"

	"cinebook/internal/movies"
	"cinebook/internal/shared/constants"
	"cinebook/internal/theaters"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
)

type Service interface {
	GetShowtime(ctx context.Context, id uuid.UUID) (*ShowtimeResponse, error)
	GetShowtimeWithRelations(ctx context.Context, id uuid.UUID) (*Showtime, error)
	ListShowtimesByMovie(ctx context.Context, movieID uuid.UUID) ([]ShowtimeResponse, error)

	// Administrative
	AddShowtime(ctx context.Context, req CreateShowtimeRequest) (*Showtime, error)
}

type service struct {
	repo       Repository
	movieSvc   movies.Service
	theaterSvc theaters.Service
	cache      cache.Service // optional, nil disables caching
}

func NewService(repo Repository, movieSvc movies.Service, theaterSvc theaters.Service, cacheSvc cache.Service) Service {
	return &service{
		repo:       repo,
		movieSvc:   movieSvc,
		theaterSvc: theaterSvc,
		cache:      cacheSvc,
	}
}

// GetShowtime returns a showtime enriched with its movie and theater.
// Cached briefly; the seat counter goes stale the moment a booking lands,
// so the TTL is short and the booking flow invalidates the entry.
func (s *service) GetShowtime(ctx context.Context, id uuid.UUID) (*ShowtimeResponse, error) {
	if s.cache != nil {
		var cached ShowtimeResponse
		err := s.cache.GetOrSet(ctx, constants.ShowtimeKey(id.String()), constants.TTL_SHOWTIME_DETAIL,
			func() (interface{}, error) {
				showtime, err := s.repo.GetByIDWithRelations(ctx, id)
				if err != nil {
					return nil, err
				}
				return showtime.ToResponse(), nil
			}, &cached)
		if err == nil {
			return &cached, nil
		}
		if err == ErrShowtimeNotFound {
			return nil, err
		}
	}

	showtime, err := s.repo.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := showtime.ToResponse()
	return &resp, nil
}

// GetShowtimeWithRelations serves the booking ledger, which needs the raw
// record rather than the response shape. Never cached.
func (s *service) GetShowtimeWithRelations(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	return s.repo.GetByIDWithRelations(ctx, id)
}

func (s *service) ListShowtimesByMovie(ctx context.Context, movieID uuid.UUID) ([]ShowtimeResponse, error) {
	if _, err := s.movieSvc.GetMovie(ctx, movieID); err != nil {
		return nil, err
	}

	results, err := s.repo.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	responses := make([]ShowtimeResponse, 0, len(results))
	for i := range results {
		responses = append(responses, results[i].ToResponse())
	}
	return responses, nil
}

// AddShowtime creates a showtime with its full seat inventory. The initial
// available_seats equals the theater's physical seat count.
func (s *service) AddShowtime(ctx context.Context, req CreateShowtimeRequest) (*Showtime, error) {
	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, movies.ErrMovieNotFound
	}
	theaterID, err := uuid.Parse(req.TheaterID)
	if err != nil {
		return nil, theaters.ErrTheaterNotFound
	}

	if _, err := s.movieSvc.GetMovie(ctx, movieID); err != nil {
		return nil, err
	}
	theater, err := s.theaterSvc.GetTheater(ctx, theaterID)
	if err != nil {
		return nil, err
	}

	showtime := &Showtime{
		MovieID:        movieID,
		TheaterID:      theaterID,
		ShowDate:       req.ShowDate,
		ShowTime:       req.ShowTime,
		Price:          req.Price,
		AvailableSeats: theater.TotalSeats,
	}
	if err := s.repo.Create(ctx, showtime); err != nil {
		return nil, err
	}
	return showtime, nil
}
