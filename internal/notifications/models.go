package notifications

import "time"

// EventType identifies what happened to a booking
type EventType string

const (
	EventBookingCreated   EventType = "BOOKING_CREATED"
	EventBookingConfirmed EventType = "BOOKING_CONFIRMED"
	EventBookingCancelled EventType = "BOOKING_CANCELLED"
)

// BookingEvent is the message published to Kafka when a booking changes
// state. Consumers (email, SMS) are external to this service.
type BookingEvent struct {
	Type       EventType `json:"type"`
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	ShowtimeID string    `json:"showtime_id,omitempty"`
	Seats      []string  `json:"seats,omitempty"`
	Amount     float64   `json:"amount,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
