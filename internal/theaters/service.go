package theaters

import (
	"context"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
)

type Service interface {
	ListTheaters(ctx context.Context) ([]Theater, error)
	GetTheater(ctx context.Context, id uuid.UUID) (*Theater, error)
	AddTheater(ctx context.Context, req CreateTheaterRequest) (*Theater, error)
}

type service struct {
	repo  Repository
	cache cache.Service // optional
}

func NewService(repo Repository, cacheSvc cache.Service) Service {
	return &service{repo: repo, cache: cacheSvc}
}

func (s *service) ListTheaters(ctx context.Context) ([]Theater, error) {
	if s.cache != nil {
		var theaters []Theater
		err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_THEATERS_LIST, constants.TTL_CATALOG_LONG,
			func() (interface{}, error) { return s.repo.List(ctx) }, &theaters)
		if err == nil {
			return theaters, nil
		}
	}
	return s.repo.List(ctx)
}

func (s *service) GetTheater(ctx context.Context, id uuid.UUID) (*Theater, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) AddTheater(ctx context.Context, req CreateTheaterRequest) (*Theater, error) {
	theater := &Theater{
		Name:       req.Name,
		Location:   req.Location,
		TotalSeats: req.TotalSeats,
	}
	if err := s.repo.Create(ctx, theater); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, constants.CACHE_KEY_THEATERS_LIST)
	}
	return theater, nil
}
