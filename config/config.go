package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Settings struct {
	Port              string
	DatabaseURL       string
	RedisURL          string
	SportradarAPIKey  string
	ScorePollInterval time.Duration
	CronSecret        string
}

// Load reads .env (if present) and environment variables. DATABASE_URL is
// the only hard requirement; everything else has a sane default or disables
// the feature that needs it.
func Load() Settings {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("[FATAL] DATABASE_URL is required in .env or environment")
	}

	s := Settings{
		Port:              getenv("PORT", "8080"),
		DatabaseURL:       dsn,
		RedisURL:          os.Getenv("REDIS_URL"),
		SportradarAPIKey:  os.Getenv("SPORTRADAR_API_KEY"),
		ScorePollInterval: 30 * time.Second,
		CronSecret:        os.Getenv("CRON_SECRET"),
	}

	if raw := os.Getenv("SCORE_POLL_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("[FATAL] invalid SCORE_POLL_INTERVAL %q: %v", raw, err)
		}
		s.ScorePollInterval = d
	}

	return s
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
