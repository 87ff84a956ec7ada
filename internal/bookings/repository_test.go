package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConflictingSeats(t *testing.T) {
	tests := []struct {
		name      string
		requested []string
		taken     []string
		expected  []string
	}{
		{
			name:      "no overlap",
			requested: []string{"A1", "A2"},
			taken:     []string{"B1", "B2"},
			expected:  nil,
		},
		{
			name:      "partial overlap keeps request order",
			requested: []string{"A2", "A3", "A1"},
			taken:     []string{"A1", "A2"},
			expected:  []string{"A2", "A1"},
		},
		{
			name:      "full overlap",
			requested: []string{"C5"},
			taken:     []string{"C5"},
			expected:  []string{"C5"},
		},
		{
			name:      "nothing taken",
			requested: []string{"A1"},
			taken:     nil,
			expected:  nil,
		},
		{
			name:      "nothing requested",
			requested: nil,
			taken:     []string{"A1"},
			expected:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConflictingSeats(tt.requested, tt.taken))
		})
	}
}

func TestSeatClaimActive(t *testing.T) {
	now := time.Now()

	pending := &SeatClaim{Status: ClaimPending, ExpiresAt: now.Add(time.Minute)}
	assert.True(t, pending.Active(now))
	assert.False(t, pending.Active(now.Add(2*time.Minute)), "pending claim lapses at expiry")

	confirmed := &SeatClaim{Status: ClaimConfirmed, ExpiresAt: now.Add(-time.Hour)}
	assert.True(t, confirmed.Active(now), "confirmed claims never lapse")

	released := &SeatClaim{Status: ClaimReleased, ExpiresAt: now.Add(time.Hour)}
	assert.False(t, released.Active(now))
}
