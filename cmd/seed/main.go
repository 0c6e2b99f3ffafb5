// Command main runs the database seeder for karmafeed.
package main

import (
	"flag"
	"log"

	"karmafeed/internal/config"
	"karmafeed/internal/database"
	"karmafeed/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 60, "Number of posts to create")
	maxDays := flag.Int("days", 30, "Spread content timestamps over this many trailing days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database seeder")
	log.Printf("Target: %d users, %d posts over %d days, clean=%v", *numUsers, *numPosts, *maxDays, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		MaxDays:     *maxDays,
		ShouldClean: *shouldClean,
	})

	if err := s.Seed(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done. The database is populated with demo data.")
	log.Println("Log in with any seeded username via POST /api/users/me.")
}
