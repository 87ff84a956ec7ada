package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinebook/internal/showtimes"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedger mirrors the transactional ledger semantics in memory: one claim
// set per showtime plus a seat counter, with the same conflict and floor
// checks the SQL transaction performs.
type fakeLedger struct {
	showtimes map[uuid.UUID]*fakeInventory
	bookings  map[uuid.UUID]*Booking
	claims    []SeatClaim
	now       time.Time
}

type fakeInventory struct {
	price          float64
	availableSeats int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		showtimes: make(map[uuid.UUID]*fakeInventory),
		bookings:  make(map[uuid.UUID]*Booking),
		now:       time.Now(),
	}
}

func (f *fakeLedger) addShowtime(id uuid.UUID, price float64, seats int) {
	f.showtimes[id] = &fakeInventory{price: price, availableSeats: seats}
}

func (f *fakeLedger) activeSeats(showtimeID uuid.UUID) []string {
	var taken []string
	for i := range f.claims {
		c := &f.claims[i]
		if c.ShowtimeID == showtimeID && c.Active(f.now) {
			taken = append(taken, c.SeatNumber)
		}
	}
	return taken
}

// sweepLapsedClaims mirrors the transactional release of expired pending
// claims: each one flips to RELEASED and its seat is credited back.
func (f *fakeLedger) sweepLapsedClaims(showtimeID uuid.UUID) {
	for i := range f.claims {
		c := &f.claims[i]
		if c.ShowtimeID == showtimeID && c.Status == ClaimPending && !c.ExpiresAt.After(f.now) {
			c.Status = ClaimReleased
			f.showtimes[showtimeID].availableSeats++
		}
	}
}

func (f *fakeLedger) CreateBookingWithSeatCheck(ctx context.Context, booking *Booking, claimTTL time.Duration) error {
	inv, ok := f.showtimes[booking.ShowtimeID]
	if !ok {
		return ErrShowtimeNotFound
	}

	f.sweepLapsedClaims(booking.ShowtimeID)

	if conflicts := ConflictingSeats(booking.SeatNumbers, f.activeSeats(booking.ShowtimeID)); len(conflicts) > 0 {
		return &SeatConflictError{Seats: conflicts}
	}

	if inv.availableSeats < len(booking.SeatNumbers) {
		return ErrInsufficientSeats
	}

	booking.ID = uuid.New()
	booking.TotalAmount = float64(len(booking.SeatNumbers)) * inv.price
	booking.Status = StatusPending
	booking.BookingDate = f.now.Format("2006-01-02")
	f.bookings[booking.ID] = booking

	for _, seat := range booking.SeatNumbers {
		f.claims = append(f.claims, SeatClaim{
			ID:         uuid.New(),
			ShowtimeID: booking.ShowtimeID,
			SeatNumber: seat,
			BookingID:  booking.ID,
			Status:     ClaimPending,
			ExpiresAt:  f.now.Add(claimTTL),
		})
	}
	inv.availableSeats -= len(booking.SeatNumbers)
	return nil
}

func (f *fakeLedger) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeLedger) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var out []Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeLedger) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	b, ok := f.bookings[bookingID]
	if !ok {
		return ErrBookingNotFound
	}
	if b.IsCancelled() {
		return ErrAlreadyCancelled
	}
	b.Status = StatusCancelled
	released := 0
	for i := range f.claims {
		if f.claims[i].BookingID == bookingID && f.claims[i].Status != ClaimReleased {
			f.claims[i].Status = ClaimReleased
			released++
		}
	}
	f.showtimes[b.ShowtimeID].availableSeats += released
	return nil
}

func (f *fakeLedger) GetTakenSeats(ctx context.Context, showtimeID uuid.UUID) ([]string, error) {
	return f.activeSeats(showtimeID), nil
}

// fakeShowtimeReader resolves showtimes from a fixed map.
type fakeShowtimeReader struct {
	byID map[uuid.UUID]*showtimes.Showtime
}

func (f *fakeShowtimeReader) GetShowtimeWithRelations(ctx context.Context, id uuid.UUID) (*showtimes.Showtime, error) {
	st, ok := f.byID[id]
	if !ok {
		return nil, errors.New("showtime not found")
	}
	return st, nil
}

func newBookingFixture(t *testing.T, price float64, seats int) (Service, *fakeLedger, uuid.UUID) {
	t.Helper()

	ledger := newFakeLedger()
	showtimeID := uuid.New()
	ledger.addShowtime(showtimeID, price, seats)

	reader := &fakeShowtimeReader{byID: map[uuid.UUID]*showtimes.Showtime{
		showtimeID: {ID: showtimeID, Price: price, AvailableSeats: seats},
	}}

	svc := NewService(ledger, reader, nil, 10*time.Minute)
	return svc, ledger, showtimeID
}

func TestCreateBookingPricesFromShowtime(t *testing.T) {
	svc, ledger, showtimeID := newBookingFixture(t, 199, 100)
	userID := uuid.New()

	resp, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		ShowtimeID:  showtimeID.String(),
		SeatNumbers: []string{"A1", "A2"},
	})
	require.NoError(t, err)

	assert.Equal(t, 398.0, resp.TotalAmount)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, []string{"A1", "A2"}, []string(resp.SeatNumbers))
	assert.Equal(t, 98, ledger.showtimes[showtimeID].availableSeats)
}

func TestCreateBookingRejectsOverlappingSeats(t *testing.T) {
	svc, _, showtimeID := newBookingFixture(t, 250, 50)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowtimeID:  showtimeID.String(),
		SeatNumbers: []string{"A1", "A2"},
	})
	require.NoError(t, err)

	// Second user asks for A2 and A3; only A2 collides.
	_, err = svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowtimeID:  showtimeID.String(),
		SeatNumbers: []string{"A2", "A3"},
	})
	conflict, ok := AsSeatConflict(err)
	require.True(t, ok, "expected a seat conflict, got %v", err)
	assert.Equal(t, []string{"A2"}, conflict.Seats)

	// A3 alone is still free.
	_, err = svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowtimeID:  showtimeID.String(),
		SeatNumbers: []string{"A3"},
	})
	assert.NoError(t, err)
}

func TestCreateBookingDeduplicatesSeats(t *testing.T) {
	svc, ledger, showtimeID := newBookingFixture(t, 100, 10)

	resp, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowtimeID:  showtimeID.String(),
		SeatNumbers: []string{"B1", "B1", "B2"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"B1", "B2"}, []string(resp.SeatNumbers))
	assert.Equal(t, 200.0, resp.TotalAmount)
	assert.Equal(t, 8, ledger.showtimes[showtimeID].availableSeats)
}

func TestCreateBookingEnforcesInventoryFloor(t *testing.T) {
	svc, ledger, showtimeID := newBookingFixture(t, 150, 2)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowtimeID:  showtimeID.String(),
		SeatNumbers: []string{"C1", "C2", "C3"},
	})
	assert.ErrorIs(t, err, ErrInsufficientSeats)
	assert.Equal(t, 2, ledger.showtimes[showtimeID].availableSeats, "failed booking must not touch inventory")
}

func TestCreateBookingUnknownShowtime(t *testing.T) {
	svc, _, _ := newBookingFixture(t, 100, 10)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowtimeID:  uuid.New().String(),
		SeatNumbers: []string{"A1"},
	})
	assert.ErrorIs(t, err, ErrShowtimeNotFound)
}

func TestExpiredClaimFreesSeat(t *testing.T) {
	svc, ledger, showtimeID := newBookingFixture(t, 100, 10)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowtimeID:  showtimeID.String(),
		SeatNumbers: []string{"D4"},
	})
	require.NoError(t, err)

	// Push the clock past the claim TTL: the unpaid claim lapses.
	ledger.now = ledger.now.Add(11 * time.Minute)

	_, err = svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowtimeID:  showtimeID.String(),
		SeatNumbers: []string{"D4"},
	})
	assert.NoError(t, err, "lapsed pending claim should not block the seat")
}

func TestExpiredClaimRestocksCounter(t *testing.T) {
	svc, ledger, showtimeID := newBookingFixture(t, 100, 2)

	// Two abandoned bookings drain the showtime completely.
	for _, seat := range []string{"A1", "A2"} {
		_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
			ShowtimeID:  showtimeID.String(),
			SeatNumbers: []string{seat},
		})
		require.NoError(t, err)
	}
	require.Equal(t, 0, ledger.showtimes[showtimeID].availableSeats)

	ledger.now = ledger.now.Add(11 * time.Minute)

	// Both claims lapsed, so a full-house booking must pass the floor check
	// again.
	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowtimeID:  showtimeID.String(),
		SeatNumbers: []string{"A1", "A2"},
	})
	require.NoError(t, err, "lapsed claims must credit their seats back to the counter")
	assert.Equal(t, 0, ledger.showtimes[showtimeID].availableSeats)
}

func TestCancelAfterSweepDoesNotDoubleCredit(t *testing.T) {
	svc, ledger, showtimeID := newBookingFixture(t, 100, 4)
	userID := uuid.New()

	resp, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		ShowtimeID:  showtimeID.String(),
		SeatNumbers: []string{"A1", "A2"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, ledger.showtimes[showtimeID].availableSeats)

	// Another user's booking sweeps the lapsed claims and restocks.
	ledger.now = ledger.now.Add(11 * time.Minute)
	_, err = svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowtimeID:  showtimeID.String(),
		SeatNumbers: []string{"B1"},
	})
	require.NoError(t, err)
	require.Equal(t, 3, ledger.showtimes[showtimeID].availableSeats)

	// Cancelling the lapsed booking finds its claims already released, so
	// the counter must not be credited a second time.
	bookingID := uuid.MustParse(resp.BookingID)
	require.NoError(t, svc.CancelBooking(context.Background(), bookingID, userID))
	assert.Equal(t, 3, ledger.showtimes[showtimeID].availableSeats,
		"already-swept claims must not be restocked again")
}

func TestGetBookedSeatsReflectsActiveClaims(t *testing.T) {
	svc, _, showtimeID := newBookingFixture(t, 100, 10)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowtimeID:  showtimeID.String(),
		SeatNumbers: []string{"A1", "B2"},
	})
	require.NoError(t, err)

	resp, err := svc.GetBookedSeats(context.Background(), showtimeID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A1", "B2"}, resp.BookedSeats)
}

func TestGetBookedSeatsEmptyShowtime(t *testing.T) {
	svc, ledger, _ := newBookingFixture(t, 100, 10)

	other := uuid.New()
	ledger.addShowtime(other, 100, 10)

	resp, err := svc.GetBookedSeats(context.Background(), other)
	require.NoError(t, err)
	assert.NotNil(t, resp.BookedSeats)
	assert.Empty(t, resp.BookedSeats)
}

func TestCancelBookingRestocksSeats(t *testing.T) {
	svc, ledger, showtimeID := newBookingFixture(t, 100, 10)
	userID := uuid.New()

	resp, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		ShowtimeID:  showtimeID.String(),
		SeatNumbers: []string{"E1", "E2"},
	})
	require.NoError(t, err)
	require.Equal(t, 8, ledger.showtimes[showtimeID].availableSeats)

	bookingID := uuid.MustParse(resp.BookingID)
	require.NoError(t, svc.CancelBooking(context.Background(), bookingID, userID))

	assert.Equal(t, 10, ledger.showtimes[showtimeID].availableSeats)

	// The seats are bookable again.
	_, err = svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowtimeID:  showtimeID.String(),
		SeatNumbers: []string{"E1", "E2"},
	})
	assert.NoError(t, err)
}

func TestCancelBookingOwnershipAndRepeat(t *testing.T) {
	svc, _, showtimeID := newBookingFixture(t, 100, 10)
	owner := uuid.New()

	resp, err := svc.CreateBooking(context.Background(), owner, CreateBookingRequest{
		ShowtimeID:  showtimeID.String(),
		SeatNumbers: []string{"F1"},
	})
	require.NoError(t, err)
	bookingID := uuid.MustParse(resp.BookingID)

	err = svc.CancelBooking(context.Background(), bookingID, uuid.New())
	assert.ErrorIs(t, err, ErrNotBookingOwner)

	require.NoError(t, svc.CancelBooking(context.Background(), bookingID, owner))
	err = svc.CancelBooking(context.Background(), bookingID, owner)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestGetUserBookingsDropsUnresolvableShowtimes(t *testing.T) {
	ledger := newFakeLedger()
	liveShowtime := uuid.New()
	deadShowtime := uuid.New()
	ledger.addShowtime(liveShowtime, 100, 10)
	ledger.addShowtime(deadShowtime, 100, 10)

	// The reader only resolves the live showtime.
	reader := &fakeShowtimeReader{byID: map[uuid.UUID]*showtimes.Showtime{
		liveShowtime: {ID: liveShowtime, Price: 100, AvailableSeats: 10},
	}}
	svc := NewService(ledger, reader, nil, 10*time.Minute)

	userID := uuid.New()
	for _, stID := range []uuid.UUID{liveShowtime, deadShowtime} {
		_, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
			ShowtimeID:  stID.String(),
			SeatNumbers: []string{"A1"},
		})
		if stID == liveShowtime {
			require.NoError(t, err)
		}
	}

	// Create the dead-showtime booking directly: the service pre-check would
	// reject it, but older rows can reference since-removed showtimes.
	dead := &Booking{UserID: userID, ShowtimeID: deadShowtime, SeatNumbers: SeatList{"B1"}}
	require.NoError(t, ledger.CreateBookingWithSeatCheck(context.Background(), dead, 10*time.Minute))

	result, err := svc.GetUserBookings(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, liveShowtime, result[0].Showtime.ID)
}

func TestDedupeSeatsPreservesOrder(t *testing.T) {
	out := dedupeSeats([]string{"C3", "A1", "C3", "B2", "A1"})
	assert.Equal(t, SeatList{"C3", "A1", "B2"}, out)
}
