package theaters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTheaterNotFound = errors.New("theater not found")

type Repository interface {
	Create(ctx context.Context, theater *Theater) error
	GetByID(ctx context.Context, id uuid.UUID) (*Theater, error)
	List(ctx context.Context) ([]Theater, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, theater *Theater) error {
	return r.db.WithContext(ctx).Create(theater).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Theater, error) {
	var theater Theater
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&theater).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTheaterNotFound
		}
		return nil, err
	}
	return &theater, nil
}

func (r *repository) List(ctx context.Context) ([]Theater, error) {
	var theaters []Theater
	err := r.db.WithContext(ctx).Order("name ASC").Find(&theaters).Error
	return theaters, err
}
