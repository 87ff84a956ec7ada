package movies

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog serves the catalog from memory, mirroring the repository's
// filtering and ordering rules.
type fakeCatalog struct {
	movies         []Movie
	popularityRank map[uuid.UUID]int // showtime count per movie
}

func (f *fakeCatalog) Create(ctx context.Context, movie *Movie) error {
	movie.ID = uuid.New()
	f.movies = append(f.movies, *movie)
	return nil
}

func (f *fakeCatalog) GetByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	for i := range f.movies {
		if f.movies[i].ID == id {
			return &f.movies[i], nil
		}
	}
	return nil, ErrMovieNotFound
}

func (f *fakeCatalog) ListActive(ctx context.Context) ([]Movie, error) {
	var out []Movie
	for _, m := range f.movies {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListActiveByGenre(ctx context.Context, genre string) ([]Movie, error) {
	var out []Movie
	for _, m := range f.movies {
		if m.IsActive && m.Genre == genre {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeCatalog) DistinctGenres(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range f.movies {
		if !m.IsActive {
			continue
		}
		if _, ok := seen[m.Genre]; ok {
			continue
		}
		seen[m.Genre] = struct{}{}
		out = append(out, m.Genre)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeCatalog) ListRecent(ctx context.Context, limit int) ([]Movie, error) {
	active, _ := f.ListActive(ctx)
	// Insertion order stands in for created_at; newest last, so reverse.
	for i, j := 0, len(active)-1; i < j; i, j = i+1, j-1 {
		active[i], active[j] = active[j], active[i]
	}
	if len(active) > limit {
		active = active[:limit]
	}
	return active, nil
}

func (f *fakeCatalog) ListPopular(ctx context.Context, limit int) ([]Movie, error) {
	active, _ := f.ListActive(ctx)
	sort.SliceStable(active, func(i, j int) bool {
		return f.popularityRank[active[i].ID] > f.popularityRank[active[j].ID]
	})
	if len(active) > limit {
		active = active[:limit]
	}
	return active, nil
}

func (f *fakeCatalog) Deactivate(ctx context.Context, id uuid.UUID) error {
	for i := range f.movies {
		if f.movies[i].ID == id {
			f.movies[i].IsActive = false
			return nil
		}
	}
	return ErrMovieNotFound
}

func seedCatalog(t *testing.T) (Service, *fakeCatalog) {
	t.Helper()

	catalog := &fakeCatalog{popularityRank: make(map[uuid.UUID]int)}
	svc := NewService(catalog, nil)

	seed := []struct {
		title     string
		genre     string
		active    bool
		showtimes int
	}{
		{"Fast Chase", "Action", true, 3},
		{"Steel Thunder", "Action", true, 1},
		{"Lost Kingdom", "Adventure", true, 5},
		{"Haunted Manor", "Horror", true, 0},
		{"Retired Flick", "Drama", false, 9},
	}

	for _, s := range seed {
		movie := &Movie{Title: s.title, Genre: s.genre, Duration: 120, IsActive: s.active, ReleaseDate: "2024-01-01"}
		require.NoError(t, catalog.Create(context.Background(), movie))
		catalog.popularityRank[movie.ID] = s.showtimes
	}

	return svc, catalog
}

func TestListMoviesOnlyActive(t *testing.T) {
	svc, _ := seedCatalog(t)

	list, err := svc.ListMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 4)
	for _, m := range list {
		assert.True(t, m.IsActive)
		assert.NotEqual(t, "Retired Flick", m.Title)
	}
}

func TestGetMoviesByGenre(t *testing.T) {
	svc, _ := seedCatalog(t)

	action, err := svc.GetMoviesByGenre(context.Background(), "Action")
	require.NoError(t, err)
	assert.Len(t, action, 2)

	// The deactivated movie's genre yields nothing.
	drama, err := svc.GetMoviesByGenre(context.Background(), "Drama")
	require.NoError(t, err)
	assert.Empty(t, drama)
}

func TestGetAvailableGenresSortedAndDeduped(t *testing.T) {
	svc, _ := seedCatalog(t)

	genres, err := svc.GetAvailableGenres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Adventure", "Horror"}, genres)
}

func TestGetPopularMoviesOrdersByShowtimeCount(t *testing.T) {
	svc, _ := seedCatalog(t)

	popular, err := svc.GetPopularMovies(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, "Lost Kingdom", popular[0].Title)
	assert.Equal(t, "Fast Chase", popular[1].Title)
}

func TestGetRecentMoviesDefaultsLimit(t *testing.T) {
	svc, _ := seedCatalog(t)

	// Limit 0 falls back to the default listing size.
	recent, err := svc.GetRecentMovies(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, recent, 4, "all four active movies fit inside the default limit")

	// Newest first.
	assert.Equal(t, "Haunted Manor", recent[0].Title)

	one, err := svc.GetRecentMovies(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Haunted Manor", one[0].Title)
}

func TestDeactivateMovieHidesItFromListings(t *testing.T) {
	svc, catalog := seedCatalog(t)

	var target uuid.UUID
	for _, m := range catalog.movies {
		if m.Title == "Haunted Manor" {
			target = m.ID
		}
	}

	require.NoError(t, svc.DeactivateMovie(context.Background(), target))

	list, err := svc.ListMovies(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)

	genres, err := svc.GetAvailableGenres(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, genres, "Horror")

	// The record itself survives; movies are never deleted.
	m, err := svc.GetMovie(context.Background(), target)
	require.NoError(t, err)
	assert.False(t, m.IsActive)
}

func TestAddMovieActivatesByDefault(t *testing.T) {
	svc, _ := seedCatalog(t)

	created, err := svc.AddMovie(context.Background(), CreateMovieRequest{
		Title: "New Release", Genre: "Sci-Fi", Duration: 140, ReleaseDate: "2024-03-01",
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	list, err := svc.ListMovies(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 5)
}
