package bookings

// CreateBookingRequest is the payload for creating a booking
type CreateBookingRequest struct {
	ShowtimeID  string   `json:"showtime_id" binding:"required,uuid"`
	SeatNumbers []string `json:"seat_numbers" binding:"required,min=1,max=10,dive,seatid"`
}
