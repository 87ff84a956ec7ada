package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/bookings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// CreateAndConfirmBooking writes the payment, confirms the booking and
	// promotes its seat claims, all in one transaction. It fails with
	// ErrReservationLapsed when any of the booking's claims were already
	// released, leaving the booking untouched.
	CreateAndConfirmBooking(ctx context.Context, payment *Payment) error

	GetUserPayments(ctx context.Context, userID uuid.UUID) ([]Payment, error)
	GetPaymentsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]Payment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateAndConfirmBooking(ctx context.Context, payment *Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// Re-check the booking under lock; the pre-charge status check ran
		// outside this transaction.
		var booking bookings.Booking
		err := tx.
			Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", payment.BookingID).
			First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return bookings.ErrBookingNotFound
			}
			return fmt.Errorf("failed to lock booking: %w", err)
		}
		if !booking.IsPending() {
			return ErrBookingNotPayable
		}

		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		// Promote the claims before the booking flips. Confirmed claims
		// never lapse.
		res := tx.Model(&bookings.SeatClaim{}).
			Where("booking_id = ? AND status = ?", payment.BookingID, bookings.ClaimPending).
			Updates(map[string]interface{}{
				"status":     bookings.ClaimConfirmed,
				"updated_at": now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to confirm seat claims: %w", res.Error)
		}

		// A shortfall means some claims were swept to RELEASED after the
		// TTL lapsed, so another booking may hold those seats now.
		// Confirming anyway would double-book them.
		if int(res.RowsAffected) != len(booking.SeatNumbers) {
			return ErrReservationLapsed
		}

		err = tx.Model(&bookings.Booking{}).
			Where("id = ?", payment.BookingID).
			Updates(map[string]interface{}{
				"status":     bookings.StatusConfirmed,
				"payment_id": payment.ID,
				"updated_at": now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to confirm booking: %w", err)
		}

		return nil
	})
}

func (r *repository) GetUserPayments(ctx context.Context, userID uuid.UUID) ([]Payment, error) {
	var payments []Payment
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *repository) GetPaymentsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]Payment, error) {
	var payments []Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}
