package showtimes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrShowtimeNotFound = errors.New("showtime not found")

type Repository interface {
	Create(ctx context.Context, showtime *Showtime) error
	GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Showtime, error)
	ListByMovie(ctx context.Context, movieID uuid.UUID) ([]Showtime, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, showtime *Showtime) error {
	return r.db.WithContext(ctx).Create(showtime).Error
}

func (r *repository) GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	var showtime Showtime
	err := r.db.WithContext(ctx).
		Preload("Movie").
		Preload("Theater").
		Where("id = ?", id).
		First(&showtime).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &showtime, nil
}

func (r *repository) ListByMovie(ctx context.Context, movieID uuid.UUID) ([]Showtime, error) {
	var results []Showtime
	err := r.db.WithContext(ctx).
		Preload("Theater").
		Where("movie_id = ?", movieID).
		Order("show_date ASC, show_time ASC").
		Find(&results).Error
	return results, err
}
