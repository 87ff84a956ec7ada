package database

import (
	"cinebook/internal/auth"
	"cinebook/internal/bookings"
	"cinebook/internal/movies"
	"cinebook/internal/payments"
	"cinebook/internal/showtimes"
	"cinebook/internal/theaters"
	"cinebook/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4() defaults need the extension before any table exists
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&users.User{},
		&movies.Movie{},
		&theaters.Theater{},
		&showtimes.Showtime{},
		&bookings.Booking{},
		&bookings.SeatClaim{},
		&payments.Payment{},
		&auth.PasswordReset{},
	); err != nil {
		return err
	}

	return migrateConstraints(db)
}

// migrateConstraints adds the concurrency-critical constraints AutoMigrate
// cannot express. The partial unique index is the final arbiter against
// double-booking: PENDING and CONFIRMED claims occupy the seat, RELEASED
// ones do not.
func migrateConstraints(db *gorm.DB) error {
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_seat_claims_live_seat
		ON seat_claims (showtime_id, seat_number)
		WHERE status <> 'RELEASED';
	`).Error
	if err != nil {
		return err
	}

	// Seat-map reads scan claims per showtime
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_seat_claims_showtime_status
		ON seat_claims (showtime_id, status);
	`).Error
	if err != nil {
		return err
	}

	// User booking history is always fetched newest first
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_created
		ON bookings (user_id, created_at DESC);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
