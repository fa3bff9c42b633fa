package main

// Load a course catalog JSON file into the database:
//   go run ./cmd/seedcourses -file data/courses.json

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"skillbridge-backend/internal/courses"
	"skillbridge-backend/internal/shared/config"
	"skillbridge-backend/internal/shared/storage/db"
)

type seedCourse struct {
	Title       string   `json:"title"`
	Platform    string   `json:"platform"`
	Tier        string   `json:"tier"`
	Price       string   `json:"price"`
	Rating      *float64 `json:"rating"`
	Duration    string   `json:"duration"`
	Level       string   `json:"level"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
}

func main() {
	filePath := flag.String("file", "data/courses.json", "path to the course catalog JSON file")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	seeds, err := readSeeds(*filePath)
	if err != nil {
		log.Printf("failed to read catalog: %v", err)
		os.Exit(1)
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	repo := &courses.PGRepo{DB: sqlDB}
	inserted := 0
	for i, seed := range seeds {
		course, err := seed.toStored()
		if err != nil {
			log.Printf("skipping entry %d: %v", i, err)
			continue
		}
		if err := repo.Insert(ctx, course); err != nil {
			log.Printf("failed to insert %q: %v", course.Title, err)
			os.Exit(1)
		}
		inserted++
	}
	log.Printf("inserted %d of %d courses", inserted, len(seeds))
}

func readSeeds(path string) ([]seedCourse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seeds []seedCourse
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return seeds, nil
}

func (s seedCourse) toStored() (courses.StoredCourse, error) {
	if strings.TrimSpace(s.Title) == "" {
		return courses.StoredCourse{}, fmt.Errorf("missing title")
	}
	var tier courses.Tier
	switch strings.ToLower(strings.TrimSpace(s.Tier)) {
	case "free":
		tier = courses.TierFree
	case "paid":
		tier = courses.TierPaid
	default:
		return courses.StoredCourse{}, fmt.Errorf("unknown tier %q for %q", s.Tier, s.Title)
	}
	return courses.StoredCourse{
		ID:          uuid.New(),
		Title:       s.Title,
		Platform:    s.Platform,
		Tier:        tier,
		Price:       s.Price,
		Rating:      s.Rating,
		Duration:    s.Duration,
		Level:       s.Level,
		Description: s.Description,
		URL:         s.URL,
	}, nil
}
