package bookings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrShowtimeNotFound  = errors.New("showtime not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrNotBookingOwner   = errors.New("booking does not belong to user")
	ErrInsufficientSeats = errors.New("not enough seats available")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
)

// SeatConflictError reports which requested seats overlap existing claims.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats %s are already booked", strings.Join(e.Seats, ", "))
}

// AsSeatConflict unwraps err into a SeatConflictError if it is one
func AsSeatConflict(err error) (*SeatConflictError, bool) {
	var conflict *SeatConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}
