package main

import (
	"fmt"
	"log"
	"time"

	"cinebook/internal/movies"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/showtimes"
	"cinebook/internal/theaters"
	"cinebook/internal/users"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting CineBook Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"password_resets",
		"payments",
		"seat_claims",
		"bookings",
		"showtimes",
		"theaters",
		"movies",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds users, the movie catalog, theaters, and three days of showtimes.
func (s *Seeder) SeedAll() error {
	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	theaterList, err := s.SeedTheaters()
	if err != nil {
		return fmt.Errorf("failed to seed theaters: %w", err)
	}

	movieList, err := s.SeedMovies()
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}

	if err := s.SeedShowtimes(movieList, theaterList); err != nil {
		return fmt.Errorf("failed to seed showtimes: %w", err)
	}

	return nil
}

func (s *Seeder) SeedUsers() error {
	fmt.Println("  Seeding users...")

	hash := func(pw string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("bcrypt failed: %v", err)
		}
		return string(h)
	}

	seedUsers := []users.User{
		{FirstName: "Admin", LastName: "User", Email: "admin@cinebook.com", Password: hash("admin123"), Role: users.RoleAdmin},
		{FirstName: "Rahul", LastName: "Sharma", Email: "rahul@example.com", Password: hash("password123"), Role: users.RoleUser},
		{FirstName: "Priya", LastName: "Patel", Email: "priya@example.com", Password: hash("password123"), Role: users.RoleUser},
	}

	for i := range seedUsers {
		if err := s.db.PostgreSQL.Create(&seedUsers[i]).Error; err != nil {
			return err
		}
	}

	fmt.Printf("    Created %d users\n", len(seedUsers))
	return nil
}

func (s *Seeder) SeedTheaters() ([]theaters.Theater, error) {
	fmt.Println("  Seeding theaters...")

	seedTheaters := []theaters.Theater{
		{Name: "PVR Cinemas", Location: "Select City Walk, Saket, New Delhi", TotalSeats: 100},
		{Name: "INOX Multiplex", Location: "Phoenix MarketCity, Kurla, Mumbai", TotalSeats: 150},
		{Name: "Cinepolis", Location: "Forum Mall, Koramangala, Bangalore", TotalSeats: 200},
		{Name: "Carnival Cinemas", Location: "Express Avenue, Chennai", TotalSeats: 120},
		{Name: "Miraj Cinemas", Location: "Seasons Mall, Pune", TotalSeats: 180},
	}

	for i := range seedTheaters {
		if err := s.db.PostgreSQL.Create(&seedTheaters[i]).Error; err != nil {
			return nil, err
		}
	}

	fmt.Printf("    Created %d theaters\n", len(seedTheaters))
	return seedTheaters, nil
}

func (s *Seeder) SeedMovies() ([]movies.Movie, error) {
	fmt.Println("  Seeding movies...")

	seedMovies := []movies.Movie{
		{Title: "Fast Chase", Description: "High-octane action sequences and death-defying stunts in this adrenaline-pumping thriller.", Genre: "Action", Duration: 128, Rating: "U/A 13+", PosterURL: "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=400&h=600&fit=crop", ReleaseDate: "2024-02-10", IsActive: true},
		{Title: "Steel Thunder", Description: "An elite special forces team must stop a terrorist plot that threatens global security.", Genre: "Action", Duration: 142, Rating: "A", PosterURL: "https://images.unsplash.com/photo-1440404653325-ab127d49abc1?w=400&h=600&fit=crop", ReleaseDate: "2024-01-28", IsActive: true},
		{Title: "Night Warrior", Description: "A vigilante fights crime in the shadows of a corrupt city using advanced technology.", Genre: "Action", Duration: 135, Rating: "U/A 13+", PosterURL: "https://images.unsplash.com/photo-1489599735734-79b4169c4388?w=400&h=600&fit=crop", ReleaseDate: "2024-02-05", IsActive: true},
		{Title: "Code Red", Description: "A cyber-warfare expert races against time to prevent a digital apocalypse.", Genre: "Action", Duration: 125, Rating: "U/A 13+", PosterURL: "https://images.unsplash.com/photo-1518709268805-4e9042af2176?w=400&h=600&fit=crop", ReleaseDate: "2024-02-15", IsActive: true},
		{Title: "The Adventure Begins", Description: "An epic adventure that takes you on a journey through mystical lands filled with danger and wonder.", Genre: "Adventure", Duration: 142, Rating: "U/A 13+", PosterURL: "https://images.unsplash.com/photo-1489599735734-79b4169c4388?w=400&h=600&fit=crop", ReleaseDate: "2024-01-15", IsActive: true},
		{Title: "Lost Kingdom", Description: "Explorers discover an ancient civilization hidden deep in the Amazon rainforest.", Genre: "Adventure", Duration: 156, Rating: "U", PosterURL: "https://images.unsplash.com/photo-1446776877081-d282a0f896e2?w=400&h=600&fit=crop", ReleaseDate: "2024-01-20", IsActive: true},
		{Title: "Mountain Quest", Description: "A team of climbers faces deadly challenges while attempting to conquer an uncharted peak.", Genre: "Adventure", Duration: 134, Rating: "U/A 13+", PosterURL: "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400&h=600&fit=crop", ReleaseDate: "2024-02-01", IsActive: true},
		{Title: "Love in Mumbai", Description: "A heartwarming romance set against the bustling backdrop of Mumbai's vibrant streets.", Genre: "Romance", Duration: 148, Rating: "U", PosterURL: "https://images.unsplash.com/photo-1518676590629-3dcbd9c5a5c9?w=400&h=600&fit=crop", ReleaseDate: "2024-02-14", IsActive: true},
		{Title: "The Comedy Club", Description: "A stand-up comedian's journey from small-town shows to the big stage.", Genre: "Comedy", Duration: 118, Rating: "U/A 13+", PosterURL: "https://images.unsplash.com/photo-1527224857830-43a7acc85260?w=400&h=600&fit=crop", ReleaseDate: "2024-01-25", IsActive: true},
		{Title: "Midnight Shadows", Description: "A detective unravels a series of mysterious disappearances in a fog-covered town.", Genre: "Thriller", Duration: 131, Rating: "A", PosterURL: "https://images.unsplash.com/photo-1509347528160-9a9e33742cdb?w=400&h=600&fit=crop", ReleaseDate: "2024-02-08", IsActive: true},
		{Title: "Haunted Manor", Description: "A family moves into an old mansion only to discover its terrifying secrets.", Genre: "Horror", Duration: 112, Rating: "A", PosterURL: "https://images.unsplash.com/photo-1520637836862-4d197d17c13a?w=400&h=600&fit=crop", ReleaseDate: "2024-01-31", IsActive: true},
		{Title: "Galactic Frontier", Description: "Humanity's first interstellar colony ship encounters something unexpected in deep space.", Genre: "Sci-Fi", Duration: 165, Rating: "U/A 13+", PosterURL: "https://images.unsplash.com/photo-1446776811953-b23d57bd21aa?w=400&h=600&fit=crop", ReleaseDate: "2024-02-20", IsActive: true},
	}

	for i := range seedMovies {
		if err := s.db.PostgreSQL.Create(&seedMovies[i]).Error; err != nil {
			return nil, err
		}
	}

	fmt.Printf("    Created %d movies\n", len(seedMovies))
	return seedMovies, nil
}

// SeedShowtimes creates three days of showtimes across every theater,
// rotating times and Indian-rupee price points per the catalog's pattern.
func (s *Seeder) SeedShowtimes(movieList []movies.Movie, theaterList []theaters.Theater) error {
	fmt.Println("  Seeding showtimes...")

	times := []string{"10:00", "13:30", "17:00", "20:30"}
	prices := []float64{199, 249, 299, 349, 399}

	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	dayAfter := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	dates := []string{today, tomorrow, dayAfter}

	count := 0
	for i, movie := range movieList {
		for d, date := range dates {
			theater := theaterList[(i+d)%len(theaterList)]
			showtime := showtimes.Showtime{
				MovieID:        movie.ID,
				TheaterID:      theater.ID,
				ShowDate:       date,
				ShowTime:       times[(i+d)%len(times)],
				Price:          prices[(i+d)%len(prices)],
				AvailableSeats: theater.TotalSeats,
			}
			if err := s.db.PostgreSQL.Create(&showtime).Error; err != nil {
				return err
			}
			count++
		}
	}

	fmt.Printf("    Created %d showtimes\n", count)
	return nil
}
