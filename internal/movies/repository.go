package movies

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrMovieNotFound = errors.New("movie not found")

type Repository interface {
	Create(ctx context.Context, movie *Movie) error
	GetByID(ctx context.Context, id uuid.UUID) (*Movie, error)
	ListActive(ctx context.Context) ([]Movie, error)
	ListActiveByGenre(ctx context.Context, genre string) ([]Movie, error)
	DistinctGenres(ctx context.Context) ([]string, error)
	ListRecent(ctx context.Context, limit int) ([]Movie, error)
	ListPopular(ctx context.Context, limit int) ([]Movie, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, movie *Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	var movie Movie
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&movies).Error
	return movies, err
}

func (r *repository) ListActiveByGenre(ctx context.Context, genre string) ([]Movie, error) {
	var movies []Movie
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND genre = ?", true, genre).
		Order("created_at ASC").
		Find(&movies).Error
	return movies, err
}

func (r *repository) DistinctGenres(ctx context.Context) ([]string, error) {
	var genres []string
	err := r.db.WithContext(ctx).
		Model(&Movie{}).
		Distinct("genre").
		Where("is_active = ?", true).
		Order("genre ASC").
		Pluck("genre", &genres).Error
	return genres, err
}

func (r *repository) ListRecent(ctx context.Context, limit int) ([]Movie, error) {
	var movies []Movie
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&movies).Error
	return movies, err
}

// ListPopular ranks active movies by how many showtimes each one has, most
// first. Ties keep storage order.
func (r *repository) ListPopular(ctx context.Context, limit int) ([]Movie, error) {
	var movies []Movie
	err := r.db.WithContext(ctx).
		Model(&Movie{}).
		Select("movies.*, COUNT(showtimes.id) AS showtime_count").
		Joins("LEFT JOIN showtimes ON showtimes.movie_id = movies.id").
		Where("movies.is_active = ?", true).
		Group("movies.id").
		Order("showtime_count DESC, movies.created_at ASC").
		Limit(limit).
		Find(&movies).Error
	return movies, err
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&Movie{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMovieNotFound
	}
	return nil
}
