package payments

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrPaymentFailed is returned when the gateway declines a charge. No state
// is mutated on a decline; the caller may retry with a fresh attempt.
var ErrPaymentFailed = errors.New("payment failed, please try again")

// Instrument carries the (optional) payment instrument details. The
// simulated gateway ignores them; a real integration would not.
type Instrument struct {
	CardNumber     string `json:"card_number,omitempty"`
	ExpiryDate     string `json:"expiry_date,omitempty"`
	CVV            string `json:"cvv,omitempty"`
	CardholderName string `json:"cardholder_name,omitempty"`
}

// ChargeResult is the gateway's record of a successful charge
type ChargeResult struct {
	TransactionID string
	ProcessedAt   time.Time
}

// Gateway abstracts the external payment processor so a real implementation
// can be substituted without touching booking logic.
type Gateway interface {
	Charge(ctx context.Context, amount float64, method string, instrument Instrument) (*ChargeResult, error)
}

// SimulatedGateway approves charges with a fixed probability. Each call is
// an independent draw.
type SimulatedGateway struct {
	successRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulatedGateway(successRate float64) *SimulatedGateway {
	if successRate < 0 || successRate > 1 {
		successRate = 0.9
	}
	return &SimulatedGateway{
		successRate: successRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *SimulatedGateway) Charge(ctx context.Context, amount float64, method string, instrument Instrument) (*ChargeResult, error) {
	g.mu.Lock()
	draw := g.rng.Float64()
	g.mu.Unlock()

	if draw >= g.successRate {
		return nil, ErrPaymentFailed
	}

	return &ChargeResult{
		TransactionID: generateTransactionID(),
		ProcessedAt:   time.Now(),
	}, nil
}

// generateTransactionID generates a mock transaction ID
func generateTransactionID() string {
	timestamp := time.Now().Unix()
	shortUUID := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("TXN_%d_%s", timestamp, strings.ToUpper(shortUUID))
}
