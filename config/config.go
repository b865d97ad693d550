package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultCountdownSec    = 60
	DefaultDrawIntervalSec = 3
)

// Config holds every runtime setting. Values come from the environment,
// with an optional .env file for local development.
type Config struct {
	Port           string
	AdminPassword  string
	DataFile       string
	SoundDir       string
	ImageDir       string
	Countdown      time.Duration
	DrawInterval   time.Duration
	NATSURL        string // optional; empty disables the NATS mirror
	AllowedOrigins []string
}

// Load reads the .env file (if present) and builds the Config.
// ADMIN_PASSWORD is the only hard requirement.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("[FATAL] ADMIN_PASSWORD is required in .env or environment")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "5000"),
		AdminPassword: password,
		DataFile:      getEnv("DATA_FILE", "quinbingo_data.json"),
		SoundDir:      getEnv("SOUND_DIR", "static/sounds"),
		ImageDir:      getEnv("IMAGE_DIR", "static/images"),
		Countdown:     time.Duration(getEnvInt("COUNTDOWN_SECONDS", DefaultCountdownSec)) * time.Second,
		DrawInterval:  time.Duration(getEnvInt("DRAW_INTERVAL_SECONDS", DefaultDrawIntervalSec)) * time.Second,
		NATSURL:       os.Getenv("NATS_URL"),
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	for _, dir := range []string{cfg.SoundDir, cfg.ImageDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("[FATAL] Failed to create upload dir %s: %v", dir, err)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("[FATAL] %s must be an integer, got %q", key, v)
	}
	return n
}
