package bookings

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// CanBeCancelled checks if a booking with this status can be cancelled
func (s Status) CanBeCancelled() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ClaimStatus is the lifecycle of a seat claim. Claims are created PENDING
// together with the booking, promoted to CONFIRMED on payment, and RELEASED
// on cancellation or after their TTL lapses unpaid.
type ClaimStatus string

const (
	ClaimPending   ClaimStatus = "PENDING"
	ClaimConfirmed ClaimStatus = "CONFIRMED"
	ClaimReleased  ClaimStatus = "RELEASED"
)
