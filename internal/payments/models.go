package payments

import (
	"time"

	"cinebook/internal/bookings"

	"github.com/google/uuid"
)

// Payment records one successful charge against a booking. Declined charges
// write nothing.
type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"booking_id"`
	UserID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	Amount        float64    `gorm:"not null" json:"amount"`
	Currency      string     `gorm:"type:varchar(3);default:'INR'" json:"currency"`
	Status        string     `gorm:"type:varchar(20);check:status IN ('PENDING', 'COMPLETED', 'FAILED', 'REFUNDED');default:'PENDING'" json:"status"`
	PaymentMethod string     `gorm:"type:varchar(50)" json:"payment_method"`
	TransactionID string     `gorm:"unique" json:"transaction_id"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relationships
	Booking *bookings.Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

func (Payment) TableName() string {
	return "payments"
}

const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
	StatusRefunded  = "REFUNDED"
)

func (p *Payment) IsCompleted() bool {
	return p.Status == StatusCompleted
}

// CreatePaymentRequest is the payload for paying a booking
type CreatePaymentRequest struct {
	BookingID     string `json:"booking_id" binding:"required,uuid"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=credit_card debit_card paypal apple_pay upi"`

	CardNumber     string `json:"card_number,omitempty"`
	ExpiryDate     string `json:"expiry_date,omitempty"`
	CVV            string `json:"cvv,omitempty"`
	CardholderName string `json:"cardholder_name,omitempty"`
}

// PaymentInfo represents payment information in responses
type PaymentInfo struct {
	ID            string     `json:"id"`
	BookingID     string     `json:"booking_id"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method"`
	TransactionID string     `json:"transaction_id"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}

func (p *Payment) ToPaymentInfo() PaymentInfo {
	return PaymentInfo{
		ID:            p.ID.String(),
		BookingID:     p.BookingID.String(),
		Amount:        p.Amount,
		Currency:      p.Currency,
		Status:        p.Status,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		ProcessedAt:   p.ProcessedAt,
	}
}

// UserPaymentResponse is a payment with its booking attached
type UserPaymentResponse struct {
	PaymentInfo
	Booking *bookings.Booking `json:"booking,omitempty"`
}
