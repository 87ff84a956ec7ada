package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/showtimes"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Core booking operations
	CreateBookingWithSeatCheck(ctx context.Context, booking *Booking, claimTTL time.Duration) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID) error

	// Seat-map reads
	GetTakenSeats(ctx context.Context, showtimeID uuid.UUID) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateBookingWithSeatCheck inserts a booking and its seat claims and
// decrements the showtime's seat counter, all in one transaction. The
// showtime row is locked for the duration so the conflict check, the claim
// inserts and the counter update are serialized per showtime. The unique
// index on (showtime_id, seat_number) backstops the check against anything
// that slips past the lock.
func (r *repository) CreateBookingWithSeatCheck(ctx context.Context, booking *Booking, claimTTL time.Duration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// 1. Lock the showtime row
		var showtime struct {
			ID             uuid.UUID `gorm:"column:id"`
			Price          float64   `gorm:"column:price"`
			AvailableSeats int       `gorm:"column:available_seats"`
		}
		err := tx.Table("showtimes").
			Select("id, price, available_seats").
			Where("id = ?", booking.ShowtimeID).
			Set("gorm:query_option", "FOR UPDATE").
			First(&showtime).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShowtimeNotFound
			}
			return fmt.Errorf("failed to lock showtime: %w", err)
		}

		// 2. Release pending claims whose TTL lapsed unpaid, crediting the
		// freed seats back to the counter so abandoned bookings cannot
		// starve the floor check.
		res := tx.Model(&SeatClaim{}).
			Where("showtime_id = ? AND status = ? AND expires_at <= ?",
				booking.ShowtimeID, ClaimPending, now).
			Updates(map[string]interface{}{
				"status":     ClaimReleased,
				"updated_at": now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to release lapsed claims: %w", res.Error)
		}
		showtime.AvailableSeats += int(res.RowsAffected)

		// 3. Conflict check against every still-active claim, confirmed or
		// pending. Checking pending claims too closes the window where two
		// unpaid bookings could take the same seat.
		var takenSeats []string
		err = tx.Model(&SeatClaim{}).
			Where("showtime_id = ?", booking.ShowtimeID).
			Where("status = ? OR (status = ? AND expires_at > ?)",
				ClaimConfirmed, ClaimPending, now).
			Pluck("seat_number", &takenSeats).Error
		if err != nil {
			return fmt.Errorf("failed to read seat claims: %w", err)
		}

		if conflicts := ConflictingSeats(booking.SeatNumbers, takenSeats); len(conflicts) > 0 {
			return &SeatConflictError{Seats: conflicts}
		}

		// 4. Inventory floor check
		if showtime.AvailableSeats < len(booking.SeatNumbers) {
			return ErrInsufficientSeats
		}

		// 5. Create the booking, pricing it from the locked row
		booking.TotalAmount = float64(len(booking.SeatNumbers)) * showtime.Price
		booking.Status = StatusPending
		if booking.BookingDate == "" {
			booking.BookingDate = now.Format("2006-01-02")
		}
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		// 6. Claim the seats
		claims := make([]SeatClaim, 0, len(booking.SeatNumbers))
		for _, seat := range booking.SeatNumbers {
			claims = append(claims, SeatClaim{
				ShowtimeID: booking.ShowtimeID,
				SeatNumber: seat,
				BookingID:  booking.ID,
				Status:     ClaimPending,
				ExpiresAt:  now.Add(claimTTL),
			})
		}
		if err := tx.Create(&claims).Error; err != nil {
			return fmt.Errorf("failed to claim seats: %w", err)
		}

		// 7. Decrement the seat counter
		err = tx.Model(&showtimes.Showtime{}).
			Where("id = ?", booking.ShowtimeID).
			Update("available_seats", showtime.AvailableSeats-len(booking.SeatNumbers)).Error
		if err != nil {
			return fmt.Errorf("failed to update available seats: %w", err)
		}

		return nil
	})
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// CancelBooking flips the booking to CANCELLED, releases its seat claims and
// restocks the showtime's seat counter in one transaction.
func (r *repository) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var booking Booking
		err := tx.
			Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", bookingID).
			First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if booking.IsCancelled() {
			return ErrAlreadyCancelled
		}

		err = tx.Model(&Booking{}).
			Where("id = ?", bookingID).
			Updates(map[string]interface{}{
				"status":       StatusCancelled,
				"cancelled_at": now,
				"updated_at":   now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		res := tx.Model(&SeatClaim{}).
			Where("booking_id = ? AND status <> ?", bookingID, ClaimReleased).
			Updates(map[string]interface{}{
				"status":     ClaimReleased,
				"updated_at": now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to release seat claims: %w", res.Error)
		}

		// Restock only the claims this cancel released. Claims the lazy
		// sweep already released were credited back there, so counting them
		// again would overstate the inventory.
		if res.RowsAffected > 0 {
			err = tx.Model(&showtimes.Showtime{}).
				Where("id = ?", booking.ShowtimeID).
				Update("available_seats", gorm.Expr("available_seats + ?", res.RowsAffected)).Error
			if err != nil {
				return fmt.Errorf("failed to restock seats: %w", err)
			}
		}

		return nil
	})
}

func (r *repository) GetTakenSeats(ctx context.Context, showtimeID uuid.UUID) ([]string, error) {
	now := time.Now()
	var seats []string
	err := r.db.WithContext(ctx).
		Model(&SeatClaim{}).
		Where("showtime_id = ?", showtimeID).
		Where("status = ? OR (status = ? AND expires_at > ?)",
			ClaimConfirmed, ClaimPending, now).
		Order("seat_number").
		Pluck("seat_number", &seats).Error
	return seats, err
}

// ConflictingSeats returns the requested seats that are already present in
// taken, preserving the request order.
func ConflictingSeats(requested, taken []string) []string {
	takenSet := make(map[string]struct{}, len(taken))
	for _, seat := range taken {
		takenSet[seat] = struct{}{}
	}

	var conflicts []string
	for _, seat := range requested {
		if _, ok := takenSet[seat]; ok {
			conflicts = append(conflicts, seat)
		}
	}
	return conflicts
}
