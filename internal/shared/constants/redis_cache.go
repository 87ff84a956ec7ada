package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values for the CineBook application.
// Pattern: cinebook:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

// Static catalog data (changes rarely)
const (
	TTL_CATALOG_LONG   = 6 * time.Hour    // theater listings
	TTL_CATALOG_MEDIUM = 1 * time.Hour    // movie listings, genres
	TTL_CATALOG_SHORT  = 15 * time.Minute // popular / recent movies
)

// Dynamic booking data (changes with every booking)
const (
	TTL_SHOWTIME_DETAIL = 2 * time.Minute
	TTL_SEATMAP         = 30 * time.Second // live booked-seat sets
)

// ================== KEY PREFIXES ==================

const CACHE_PREFIX = "cinebook"

const (
	CACHE_KEY_MOVIES_LIST    = CACHE_PREFIX + ":movies:list"
	CACHE_KEY_MOVIES_GENRES  = CACHE_PREFIX + ":movies:genres"
	CACHE_KEY_MOVIES_POPULAR = CACHE_PREFIX + ":movies:popular"
	CACHE_KEY_MOVIES_RECENT  = CACHE_PREFIX + ":movies:recent"
	CACHE_KEY_THEATERS_LIST  = CACHE_PREFIX + ":theaters:list"
)

// MovieGenreKey returns the cache key for a per-genre movie listing
func MovieGenreKey(genre string) string {
	return fmt.Sprintf("%s:movies:genre:%s", CACHE_PREFIX, genre)
}

// MovieLimitKey returns the cache key for a limited listing (popular/recent)
func MovieLimitKey(base string, limit int) string {
	return fmt.Sprintf("%s:limit:%d", base, limit)
}

// ShowtimeKey returns the cache key for an enriched showtime
func ShowtimeKey(showtimeID string) string {
	return fmt.Sprintf("%s:showtimes:detail:%s", CACHE_PREFIX, showtimeID)
}

// SeatMapKey returns the cache key for a showtime's taken-seat set
func SeatMapKey(showtimeID string) string {
	return fmt.Sprintf("%s:showtimes:seatmap:%s", CACHE_PREFIX, showtimeID)
}

// MoviesPattern matches every movie-listing cache entry
const MoviesPattern = CACHE_PREFIX + ":movies:*"
