package movies

import (
	"time"

	"github.com/google/uuid"
)

// Movie is static catalog data. Movies are never deleted, only deactivated.
type Movie struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	Genre       string    `json:"genre" gorm:"not null;size:100;index"`
	Duration    int       `json:"duration" gorm:"not null;check:duration > 0"` // minutes
	Rating      string    `json:"rating" gorm:"size:20"`
	PosterURL   string    `json:"poster_url" gorm:"size:500"`
	ReleaseDate string    `json:"release_date" gorm:"size:10"` // YYYY-MM-DD
	IsActive    bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Movie) TableName() string {
	return "movies"
}

type CreateMovieRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
	Genre       string `json:"genre" binding:"required,min=2,max=100"`
	Duration    int    `json:"duration" binding:"required,min=1,max=600"`
	Rating      string `json:"rating" binding:"max=20"`
	PosterURL   string `json:"poster_url" binding:"omitempty,url"`
	ReleaseDate string `json:"release_date" binding:"required,datetime=2006-01-02"`
}

type MovieListQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}
