package bookings

import (
	"time"

	"cinebook/internal/movies"
	"cinebook/internal/showtimes"
	"cinebook/internal/theaters"
)

// CreateBookingResponse carries the identifier of the new pending booking
type CreateBookingResponse struct {
	BookingID   string   `json:"booking_id"`
	Status      string   `json:"status"`
	SeatNumbers []string `json:"seat_numbers"`
	TotalAmount float64  `json:"total_amount"`
	BookingDate string   `json:"booking_date"`
}

// BookedSeatsResponse is the seat-map view for a showtime
type BookedSeatsResponse struct {
	ShowtimeID  string   `json:"showtime_id"`
	BookedSeats []string `json:"booked_seats"`
}

// UserBookingResponse is a booking enriched with showtime, movie and theater
type UserBookingResponse struct {
	ID          string              `json:"id"`
	SeatNumbers []string            `json:"seat_numbers"`
	TotalAmount float64             `json:"total_amount"`
	Status      string              `json:"status"`
	BookingDate string              `json:"booking_date"`
	PaymentID   *string             `json:"payment_id,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	Showtime    *showtimes.Showtime `json:"showtime"`
	Movie       *movies.Movie       `json:"movie"`
	Theater     *theaters.Theater   `json:"theater"`
}
