package bookings

import (
	"context"
	"fmt"
	"time"

	"cinebook/internal/shared/constants"
	"cinebook/internal/showtimes"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
)

// ShowtimeReader is the slice of the showtime service the booking ledger
// needs (interface here to avoid a dependency cycle).
type ShowtimeReader interface {
	GetShowtimeWithRelations(ctx context.Context, id uuid.UUID) (*showtimes.Showtime, error)
}

// Service interface defines the contract for booking business logic
type Service interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*CreateBookingResponse, error)
	GetBookedSeats(ctx context.Context, showtimeID uuid.UUID) (*BookedSeatsResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]UserBookingResponse, error)
	CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error

	// GetOwnedBooking is used by the payment processor to load and
	// ownership-check a booking.
	GetOwnedBooking(ctx context.Context, bookingID, userID uuid.UUID) (*Booking, error)
}

type service struct {
	repo         Repository
	showtimeSvc  ShowtimeReader
	cache        cache.Service // optional, nil disables caching
	seatClaimTTL time.Duration
	log          *logger.Logger
}

// NewService creates a new booking service instance
func NewService(repo Repository, showtimeSvc ShowtimeReader, cacheSvc cache.Service, seatClaimTTL time.Duration) Service {
	return &service{
		repo:         repo,
		showtimeSvc:  showtimeSvc,
		cache:        cacheSvc,
		seatClaimTTL: seatClaimTTL,
		log:          logger.GetDefault(),
	}
}

// CreateBooking reserves seats for a showtime. The conflict check, the
// booking insert, the seat claims and the inventory decrement all commit as
// one unit; on any failure nothing is written.
func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*CreateBookingResponse, error) {
	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID: %w", err)
	}

	seats := dedupeSeats(req.SeatNumbers)
	if len(seats) == 0 {
		return nil, fmt.Errorf("no seats requested")
	}

	// Existence check up front so the caller gets NotFound rather than a
	// transaction error.
	if _, err := s.showtimeSvc.GetShowtimeWithRelations(ctx, showtimeID); err != nil {
		return nil, ErrShowtimeNotFound
	}

	booking := &Booking{
		UserID:      userID,
		ShowtimeID:  showtimeID,
		SeatNumbers: seats,
	}

	if err := s.repo.CreateBookingWithSeatCheck(ctx, booking, s.seatClaimTTL); err != nil {
		if conflict, ok := AsSeatConflict(err); ok {
			s.log.LogSeatConflict(ctx, showtimeID.String(), userID.String(), conflict.Seats)
		}
		return nil, err
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), showtimeID.String(), userID.String(), len(seats))
	s.invalidateShowtimeCaches(ctx, showtimeID)

	return &CreateBookingResponse{
		BookingID:   booking.ID.String(),
		Status:      booking.Status.String(),
		SeatNumbers: booking.SeatNumbers,
		TotalAmount: booking.TotalAmount,
		BookingDate: booking.BookingDate,
	}, nil
}

// GetBookedSeats returns the flattened set of seats already taken for a
// showtime: confirmed claims plus pending claims that have not lapsed.
func (s *service) GetBookedSeats(ctx context.Context, showtimeID uuid.UUID) (*BookedSeatsResponse, error) {
	var seats []string

	fetch := func() ([]string, error) {
		return s.repo.GetTakenSeats(ctx, showtimeID)
	}

	if s.cache != nil {
		err := s.cache.GetOrSet(ctx, constants.SeatMapKey(showtimeID.String()), constants.TTL_SEATMAP,
			func() (interface{}, error) { return fetch() }, &seats)
		if err == nil {
			return &BookedSeatsResponse{ShowtimeID: showtimeID.String(), BookedSeats: nonNil(seats)}, nil
		}
		// fall through to the database on cache trouble
	}

	seats, err := fetch()
	if err != nil {
		return nil, err
	}
	return &BookedSeatsResponse{ShowtimeID: showtimeID.String(), BookedSeats: nonNil(seats)}, nil
}

// GetUserBookings returns the caller's bookings enriched with showtime,
// movie and theater. Bookings whose showtime no longer resolves are dropped.
func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]UserBookingResponse, error) {
	rows, err := s.repo.GetUserBookings(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]UserBookingResponse, 0, len(rows))
	for _, b := range rows {
		showtime, err := s.showtimeSvc.GetShowtimeWithRelations(ctx, b.ShowtimeID)
		if err != nil || showtime == nil {
			continue
		}

		var paymentID *string
		if b.PaymentID != nil {
			id := b.PaymentID.String()
			paymentID = &id
		}

		result = append(result, UserBookingResponse{
			ID:          b.ID.String(),
			SeatNumbers: b.SeatNumbers,
			TotalAmount: b.TotalAmount,
			Status:      b.Status.String(),
			BookingDate: b.BookingDate,
			PaymentID:   paymentID,
			CreatedAt:   b.CreatedAt,
			Showtime:    showtime,
			Movie:       showtime.Movie,
			Theater:     showtime.Theater,
		})
	}
	return result, nil
}

// CancelBooking cancels the caller's booking, releasing its seat claims and
// restocking the showtime inventory.
func (s *service) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error {
	booking, err := s.GetOwnedBooking(ctx, bookingID, userID)
	if err != nil {
		return err
	}

	if err := s.repo.CancelBooking(ctx, booking.ID); err != nil {
		return err
	}

	s.log.LogBookingCancelled(ctx, bookingID.String(), userID.String())
	s.invalidateShowtimeCaches(ctx, booking.ShowtimeID)
	return nil
}

func (s *service) GetOwnedBooking(ctx context.Context, bookingID, userID uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	return booking, nil
}

func (s *service) invalidateShowtimeCaches(ctx context.Context, showtimeID uuid.UUID) {
	if s.cache == nil {
		return
	}
	// Seat map and showtime detail both reflect seat inventory
	_ = s.cache.Delete(ctx, constants.SeatMapKey(showtimeID.String()))
	_ = s.cache.Delete(ctx, constants.ShowtimeKey(showtimeID.String()))
}

// dedupeSeats drops repeated seat identifiers, preserving request order
func dedupeSeats(seats []string) SeatList {
	seen := make(map[string]struct{}, len(seats))
	out := make(SeatList, 0, len(seats))
	for _, seat := range seats {
		if _, ok := seen[seat]; ok {
			continue
		}
		seen[seat] = struct{}{}
		out = append(out, seat)
	}
	return out
}

func nonNil(seats []string) []string {
	if seats == nil {
		return []string{}
	}
	return seats
}
