package bookings

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SeatList stores an ordered set of seat identifiers ("A1", "B12") as jsonb.
type SeatList []string

func (s SeatList) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SeatList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into SeatList", value)
	}
}

// Booking is one ledger entry: a user's reservation of seats for a showtime.
type Booking struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	ShowtimeID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"showtime_id"`
	SeatNumbers SeatList   `gorm:"type:jsonb;not null" json:"seat_numbers"`
	TotalAmount float64    `gorm:"not null" json:"total_amount"`
	Status      Status     `gorm:"type:varchar(20);check:status IN ('PENDING', 'CONFIRMED', 'CANCELLED');default:'PENDING'" json:"status"`
	BookingDate string     `gorm:"size:10;not null" json:"booking_date"` // YYYY-MM-DD
	PaymentID   *uuid.UUID `gorm:"type:uuid" json:"payment_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	// Relationships
	SeatClaims []SeatClaim `json:"-" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

func (Booking) TableName() string {
	return "bookings"
}

// SeatClaim is a transactionally-scoped reservation marker for one seat of
// one showtime. The unique (showtime_id, seat_number) pair makes the claim
// insert itself the serialization point for double-booking: two transactions
// cannot both claim the same seat. Pending claims lapse at ExpiresAt.
type SeatClaim struct {
	ID         uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	// The partial unique index over live (showtime_id, seat_number) pairs is
	// created in database.Migrate; AutoMigrate cannot express the predicate.
	ShowtimeID uuid.UUID   `gorm:"type:uuid;not null;index" json:"showtime_id"`
	SeatNumber string      `gorm:"size:10;not null" json:"seat_number"`
	BookingID  uuid.UUID   `gorm:"type:uuid;index;not null" json:"booking_id"`
	Status     ClaimStatus `gorm:"type:varchar(20);check:status IN ('PENDING', 'CONFIRMED', 'RELEASED');default:'PENDING'" json:"status"`
	ExpiresAt  time.Time   `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (SeatClaim) TableName() string {
	return "seat_claims"
}

// Active reports whether this claim still blocks the seat at the given time.
// Confirmed claims never lapse; pending claims lapse at ExpiresAt.
func (c *SeatClaim) Active(now time.Time) bool {
	switch c.Status {
	case ClaimConfirmed:
		return true
	case ClaimPending:
		return now.Before(c.ExpiresAt)
	default:
		return false
	}
}

// Helper methods for booking management

func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

func (b *Booking) Cancel() {
	b.Status = StatusCancelled
	now := time.Now()
	b.CancelledAt = &now
	b.UpdatedAt = now
}

// Confirm attaches the completed payment and flips the status
func (b *Booking) Confirm(paymentID uuid.UUID) {
	b.Status = StatusConfirmed
	b.PaymentID = &paymentID
	b.UpdatedAt = time.Now()
}
