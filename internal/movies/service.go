package movies

import (
	"context"
	"time"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
)

const defaultListingLimit = 6

// Service interface defines the contract for movie catalog logic
type Service interface {
	ListMovies(ctx context.Context) ([]Movie, error)
	GetMoviesByGenre(ctx context.Context, genre string) ([]Movie, error)
	GetAvailableGenres(ctx context.Context) ([]string, error)
	GetRecentMovies(ctx context.Context, limit int) ([]Movie, error)
	GetPopularMovies(ctx context.Context, limit int) ([]Movie, error)
	GetMovie(ctx context.Context, id uuid.UUID) (*Movie, error)

	// Administrative
	AddMovie(ctx context.Context, req CreateMovieRequest) (*Movie, error)
	DeactivateMovie(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	cache cache.Service // optional, nil disables caching
}

func NewService(repo Repository, cacheSvc cache.Service) Service {
	return &service{repo: repo, cache: cacheSvc}
}

func (s *service) ListMovies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	err := s.cached(ctx, constants.CACHE_KEY_MOVIES_LIST, constants.TTL_CATALOG_MEDIUM, &movies,
		func() (interface{}, error) { return s.repo.ListActive(ctx) })
	return movies, err
}

func (s *service) GetMoviesByGenre(ctx context.Context, genre string) ([]Movie, error) {
	var movies []Movie
	err := s.cached(ctx, constants.MovieGenreKey(genre), constants.TTL_CATALOG_MEDIUM, &movies,
		func() (interface{}, error) { return s.repo.ListActiveByGenre(ctx, genre) })
	return movies, err
}

func (s *service) GetAvailableGenres(ctx context.Context) ([]string, error) {
	var genres []string
	err := s.cached(ctx, constants.CACHE_KEY_MOVIES_GENRES, constants.TTL_CATALOG_MEDIUM, &genres,
		func() (interface{}, error) { return s.repo.DistinctGenres(ctx) })
	return genres, err
}

// Popularity and recency listings shift with every new showtime, so they
// take the short TTL.

func (s *service) GetRecentMovies(ctx context.Context, limit int) ([]Movie, error) {
	if limit <= 0 {
		limit = defaultListingLimit
	}
	var movies []Movie
	key := constants.MovieLimitKey(constants.CACHE_KEY_MOVIES_RECENT, limit)
	err := s.cached(ctx, key, constants.TTL_CATALOG_SHORT, &movies,
		func() (interface{}, error) { return s.repo.ListRecent(ctx, limit) })
	return movies, err
}

func (s *service) GetPopularMovies(ctx context.Context, limit int) ([]Movie, error) {
	if limit <= 0 {
		limit = defaultListingLimit
	}
	var movies []Movie
	key := constants.MovieLimitKey(constants.CACHE_KEY_MOVIES_POPULAR, limit)
	err := s.cached(ctx, key, constants.TTL_CATALOG_SHORT, &movies,
		func() (interface{}, error) { return s.repo.ListPopular(ctx, limit) })
	return movies, err
}

func (s *service) GetMovie(ctx context.Context, id uuid.UUID) (*Movie, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) AddMovie(ctx context.Context, req CreateMovieRequest) (*Movie, error) {
	movie := &Movie{
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		Duration:    req.Duration,
		Rating:      req.Rating,
		PosterURL:   req.PosterURL,
		ReleaseDate: req.ReleaseDate,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	return movie, nil
}

func (s *service) DeactivateMovie(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.invalidateListings(ctx)
	return nil
}

// cached runs the fetcher through the cache when one is configured
func (s *service) cached(ctx context.Context, key string, ttl time.Duration, dest interface{}, fetcher func() (interface{}, error)) error {
	if s.cache == nil {
		value, err := fetcher()
		if err != nil {
			return err
		}
		return assign(value, dest)
	}
	return s.cache.GetOrSet(ctx, key, ttl, fetcher, dest)
}

func (s *service) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeletePattern(ctx, constants.MoviesPattern)
}

func assign(value interface{}, dest interface{}) error {
	switch d := dest.(type) {
	case *[]Movie:
		*d = value.([]Movie)
	case *[]string:
		*d = value.([]string)
	}
	return nil
}
