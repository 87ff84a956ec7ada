package showtimes

import (
	"time"

	"cinebook/internal/movies"
	"cinebook/internal/theaters"

	"github.com/google/uuid"
)

// Showtime is the per-(movie,theater,date,time) inventory record.
// AvailableSeats starts at the theater's total seat count and is only
// mutated by the booking ledger, inside the booking transaction.
type Showtime struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	MovieID        uuid.UUID `json:"movie_id" gorm:"type:uuid;index;not null"`
	TheaterID      uuid.UUID `json:"theater_id" gorm:"type:uuid;index;not null"`
	ShowDate       string    `json:"show_date" gorm:"not null;size:10;index"` // YYYY-MM-DD
	ShowTime       string    `json:"show_time" gorm:"not null;size:5"`        // HH:MM
	Price          float64   `json:"price" gorm:"not null;check:price >= 0"`
	AvailableSeats int       `json:"available_seats" gorm:"not null;check:available_seats >= 0"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Movie   *movies.Movie     `json:"movie,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:RESTRICT;"`
	Theater *theaters.Theater `json:"theater,omitempty" gorm:"foreignKey:TheaterID;constraint:OnDelete:RESTRICT;"`
}

func (Showtime) TableName() string {
	return "showtimes"
}

type CreateShowtimeRequest struct {
	MovieID   string  `json:"movie_id" binding:"required,uuid"`
	TheaterID string  `json:"theater_id" binding:"required,uuid"`
	ShowDate  string  `json:"show_date" binding:"required,datetime=2006-01-02"`
	ShowTime  string  `json:"show_time" binding:"required,datetime=15:04"`
	Price     float64 `json:"price" binding:"required,min=0"`
}

// ShowtimeResponse is a showtime enriched with its movie and theater
type ShowtimeResponse struct {
	ID             string            `json:"id"`
	ShowDate       string            `json:"show_date"`
	ShowTime       string            `json:"show_time"`
	Price          float64           `json:"price"`
	AvailableSeats int               `json:"available_seats"`
	Movie          *movies.Movie     `json:"movie"`
	Theater        *theaters.Theater `json:"theater"`
}

func (s *Showtime) ToResponse() ShowtimeResponse {
	return ShowtimeResponse{
		ID:             s.ID.String(),
		ShowDate:       s.ShowDate,
		ShowTime:       s.ShowTime,
		Price:          s.Price,
		AvailableSeats: s.AvailableSeats,
		Movie:          s.Movie,
		Theater:        s.Theater,
	}
}
