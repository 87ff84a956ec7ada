package showtimes

import (
	"context"
	"testing"

	"cinebook/internal/movies"
	"cinebook/internal/theaters"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShowtimeStore struct {
	rows map[uuid.UUID]*Showtime
}

func (f *fakeShowtimeStore) Create(ctx context.Context, showtime *Showtime) error {
	showtime.ID = uuid.New()
	f.rows[showtime.ID] = showtime
	return nil
}

func (f *fakeShowtimeStore) GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	st, ok := f.rows[id]
	if !ok {
		return nil, ErrShowtimeNotFound
	}
	return st, nil
}

func (f *fakeShowtimeStore) ListByMovie(ctx context.Context, movieID uuid.UUID) ([]Showtime, error) {
	var out []Showtime
	for _, st := range f.rows {
		if st.MovieID == movieID {
			out = append(out, *st)
		}
	}
	return out, nil
}

// fakeMovieService resolves a single known movie.
type fakeMovieService struct {
	movies.Service
	movie *movies.Movie
}

func (f *fakeMovieService) GetMovie(ctx context.Context, id uuid.UUID) (*movies.Movie, error) {
	if f.movie != nil && f.movie.ID == id {
		return f.movie, nil
	}
	return nil, movies.ErrMovieNotFound
}

// fakeTheaterService resolves a single known theater.
type fakeTheaterService struct {
	theaters.Service
	theater *theaters.Theater
}

func (f *fakeTheaterService) GetTheater(ctx context.Context, id uuid.UUID) (*theaters.Theater, error) {
	if f.theater != nil && f.theater.ID == id {
		return f.theater, nil
	}
	return nil, theaters.ErrTheaterNotFound
}

func newShowtimeFixture(t *testing.T) (Service, *fakeShowtimeStore, *movies.Movie, *theaters.Theater) {
	t.Helper()

	movie := &movies.Movie{ID: uuid.New(), Title: "Fast Chase", Genre: "Action", Duration: 128, IsActive: true}
	theater := &theaters.Theater{ID: uuid.New(), Name: "PVR Cinemas", Location: "New Delhi", TotalSeats: 150}

	store := &fakeShowtimeStore{rows: make(map[uuid.UUID]*Showtime)}
	svc := NewService(store, &fakeMovieService{movie: movie}, &fakeTheaterService{theater: theater}, nil)

	return svc, store, movie, theater
}

func TestAddShowtimeSeedsFullInventory(t *testing.T) {
	svc, _, movie, theater := newShowtimeFixture(t)

	created, err := svc.AddShowtime(context.Background(), CreateShowtimeRequest{
		MovieID:   movie.ID.String(),
		TheaterID: theater.ID.String(),
		ShowDate:  "2024-03-15",
		ShowTime:  "20:30",
		Price:     299,
	})
	require.NoError(t, err)

	assert.Equal(t, theater.TotalSeats, created.AvailableSeats, "inventory starts at the theater's capacity")
	assert.Equal(t, 299.0, created.Price)
	assert.Equal(t, "2024-03-15", created.ShowDate)
}

func TestAddShowtimeRejectsUnknownReferences(t *testing.T) {
	svc, _, movie, theater := newShowtimeFixture(t)

	_, err := svc.AddShowtime(context.Background(), CreateShowtimeRequest{
		MovieID:   uuid.New().String(),
		TheaterID: theater.ID.String(),
		ShowDate:  "2024-03-15",
		ShowTime:  "20:30",
		Price:     299,
	})
	assert.ErrorIs(t, err, movies.ErrMovieNotFound)

	_, err = svc.AddShowtime(context.Background(), CreateShowtimeRequest{
		MovieID:   movie.ID.String(),
		TheaterID: uuid.New().String(),
		ShowDate:  "2024-03-15",
		ShowTime:  "20:30",
		Price:     299,
	})
	assert.ErrorIs(t, err, theaters.ErrTheaterNotFound)
}

func TestGetShowtimeEnrichesRelations(t *testing.T) {
	svc, store, movie, theater := newShowtimeFixture(t)

	created, err := svc.AddShowtime(context.Background(), CreateShowtimeRequest{
		MovieID:   movie.ID.String(),
		TheaterID: theater.ID.String(),
		ShowDate:  "2024-03-16",
		ShowTime:  "17:00",
		Price:     249,
	})
	require.NoError(t, err)

	// The repository would hydrate relations via Preload; the fake attaches
	// them directly.
	store.rows[created.ID].Movie = movie
	store.rows[created.ID].Theater = theater

	resp, err := svc.GetShowtime(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.Movie)
	require.NotNil(t, resp.Theater)
	assert.Equal(t, "Fast Chase", resp.Movie.Title)
	assert.Equal(t, "PVR Cinemas", resp.Theater.Name)
	assert.Equal(t, theater.TotalSeats, resp.AvailableSeats)
}

func TestGetShowtimeNotFound(t *testing.T) {
	svc, _, _, _ := newShowtimeFixture(t)

	_, err := svc.GetShowtime(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrShowtimeNotFound)
}

func TestListShowtimesByMovie(t *testing.T) {
	svc, _, movie, theater := newShowtimeFixture(t)

	for _, tm := range []string{"10:00", "13:30"} {
		_, err := svc.AddShowtime(context.Background(), CreateShowtimeRequest{
			MovieID:   movie.ID.String(),
			TheaterID: theater.ID.String(),
			ShowDate:  "2024-03-17",
			ShowTime:  tm,
			Price:     199,
		})
		require.NoError(t, err)
	}

	list, err := svc.ListShowtimesByMovie(context.Background(), movie.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.ListShowtimesByMovie(context.Background(), uuid.New())
	assert.ErrorIs(t, err, movies.ErrMovieNotFound)
}
