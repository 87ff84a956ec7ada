package theaters

import (
	"time"

	"github.com/google/uuid"
)

// Theater is immutable reference data seeded administratively.
type Theater struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name       string    `json:"name" gorm:"not null;size:255"`
	Location   string    `json:"location" gorm:"not null;size:500"`
	TotalSeats int       `json:"total_seats" gorm:"not null;check:total_seats > 0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Theater) TableName() string {
	return "theaters"
}

type CreateTheaterRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=255"`
	Location   string `json:"location" binding:"required,min=2,max=500"`
	TotalSeats int    `json:"total_seats" binding:"required,min=1,max=100000"`
}
