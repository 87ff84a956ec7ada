package payments

import (
	"context"
	"errors"
	"fmt"

	"cinebook/internal/bookings"
	"cinebook/internal/notifications"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrBookingNotPayable = errors.New("booking cannot be paid in its current state")

	// ErrReservationLapsed means the booking's pending seat claims expired
	// and were released before payment, so the seats may belong to someone
	// else now.
	ErrReservationLapsed = errors.New("seat reservation lapsed before payment")
)

// BookingReader is the slice of the booking service the payment processor
// needs (ownership-checked lookup).
type BookingReader interface {
	GetOwnedBooking(ctx context.Context, bookingID, userID uuid.UUID) (*bookings.Booking, error)
}

// Service interface defines the contract for payment business logic
type Service interface {
	CreatePayment(ctx context.Context, userID uuid.UUID, req CreatePaymentRequest) (*PaymentInfo, error)
	GetUserPayments(ctx context.Context, userID uuid.UUID) ([]UserPaymentResponse, error)
}

type service struct {
	repo       Repository
	bookingSvc BookingReader
	gateway    Gateway
	producer   notifications.Producer // optional, nil disables publishing
	currency   string
	log        *logger.Logger
}

// NewService creates a new payment service instance
func NewService(repo Repository, bookingSvc BookingReader, gateway Gateway, producer notifications.Producer, currency string) Service {
	return &service{
		repo:       repo,
		bookingSvc: bookingSvc,
		gateway:    gateway,
		producer:   producer,
		currency:   currency,
		log:        logger.GetDefault(),
	}
}

// CreatePayment charges the booking's total through the gateway. A decline
// mutates nothing. On success the payment insert, the booking confirmation
// and the seat-claim promotion commit as one unit.
func (s *service) CreatePayment(ctx context.Context, userID uuid.UUID, req CreatePaymentRequest) (*PaymentInfo, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID: %w", err)
	}

	booking, err := s.bookingSvc.GetOwnedBooking(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	if !booking.IsPending() {
		return nil, ErrBookingNotPayable
	}

	instrument := Instrument{
		CardNumber:     req.CardNumber,
		ExpiryDate:     req.ExpiryDate,
		CVV:            req.CVV,
		CardholderName: req.CardholderName,
	}

	result, err := s.gateway.Charge(ctx, booking.TotalAmount, req.PaymentMethod, instrument)
	if err != nil {
		if errors.Is(err, ErrPaymentFailed) {
			s.log.LogPaymentDeclined(ctx, bookingID.String(), userID.String())
		}
		return nil, err
	}

	payment := &Payment{
		BookingID:     booking.ID,
		UserID:        userID,
		Amount:        booking.TotalAmount,
		Currency:      s.currency,
		Status:        StatusCompleted,
		PaymentMethod: req.PaymentMethod,
		TransactionID: result.TransactionID,
		ProcessedAt:   &result.ProcessedAt,
	}

	if err := s.repo.CreateAndConfirmBooking(ctx, payment); err != nil {
		return nil, err
	}

	s.log.LogPaymentProcessed(ctx, payment.ID.String(), booking.ID.String(), userID.String(), payment.Amount)
	s.publishConfirmed(ctx, booking, payment)

	info := payment.ToPaymentInfo()
	return &info, nil
}

func (s *service) GetUserPayments(ctx context.Context, userID uuid.UUID) ([]UserPaymentResponse, error) {
	rows, err := s.repo.GetUserPayments(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]UserPaymentResponse, 0, len(rows))
	for _, p := range rows {
		result = append(result, UserPaymentResponse{
			PaymentInfo: p.ToPaymentInfo(),
			Booking:     p.Booking,
		})
	}
	return result, nil
}

// publishConfirmed emits a booking-confirmed event. Publishing is best
// effort: the payment already committed, so a broker error only logs.
func (s *service) publishConfirmed(ctx context.Context, booking *bookings.Booking, payment *Payment) {
	if s.producer == nil {
		return
	}

	event := &notifications.BookingEvent{
		Type:       notifications.EventBookingConfirmed,
		BookingID:  booking.ID.String(),
		UserID:     booking.UserID.String(),
		ShowtimeID: booking.ShowtimeID.String(),
		Seats:      booking.SeatNumbers,
		Amount:     payment.Amount,
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		s.log.WithError(err).Warn("failed to publish booking-confirmed event")
	}
}
