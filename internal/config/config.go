package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fitapp/fitapp/internal/db"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultPort               = "8080"
	defaultLanguage           = "en"
	defaultLoginAttemptLimit  = 10
	defaultLoginAttemptWindow = 15 * time.Minute
)

type Config struct {
	Port               string
	DBDriver           string
	DBPath             string
	DatabaseURL        string
	Location           *time.Location
	DefaultLanguage    string
	LoginAttemptLimit  int
	LoginAttemptWindow time.Duration
	BcryptCost         int
}

// DatabaseSource is the argument db.Open expects for the configured driver.
func (cfg Config) DatabaseSource() string {
	if cfg.DBDriver == db.DriverPostgres {
		return cfg.DatabaseURL
	}
	return cfg.DBPath
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	port, err := resolvePort()
	if err != nil {
		return Config{}, err
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", db.DriverSQLite))
	if driver != db.DriverSQLite && driver != db.DriverPostgres {
		return Config{}, fmt.Errorf("invalid DB_DRIVER %q: must be %s or %s", driver, db.DriverSQLite, db.DriverPostgres)
	}

	databaseURL := resolveDatabaseURL()
	if driver == db.DriverPostgres && databaseURL == "" {
		return Config{}, errors.New("DATABASE_URL or DB_HOST is required when DB_DRIVER=postgres")
	}

	attemptLimit, err := resolvePositiveInt("LOGIN_ATTEMPT_LIMIT", defaultLoginAttemptLimit)
	if err != nil {
		return Config{}, err
	}

	attemptWindow, err := resolveDuration("LOGIN_ATTEMPT_WINDOW", defaultLoginAttemptWindow)
	if err != nil {
		return Config{}, err
	}

	cost, err := resolveBcryptCost()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:               port,
		DBDriver:           driver,
		DBPath:             getEnv("DB_PATH", filepath.Join("data", "fitapp.db")),
		DatabaseURL:        databaseURL,
		Location:           loadLocation(getEnv("TZ", "UTC")),
		DefaultLanguage:    strings.ToLower(getEnv("DEFAULT_LANGUAGE", defaultLanguage)),
		LoginAttemptLimit:  attemptLimit,
		LoginAttemptWindow: attemptWindow,
		BcryptCost:         cost,
	}, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", defaultPort)
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q: must be between 1 and 65535", raw)
	}
	return strconv.Itoa(port), nil
}

// resolveDatabaseURL prefers DATABASE_URL and otherwise builds a key/value DSN
// from the DB_HOST family of variables.
func resolveDatabaseURL() string {
	if url := getEnv("DATABASE_URL", ""); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host,
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_NAME", "fitapp"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func resolvePositiveInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, raw)
	}
	return value, nil
}

func resolveDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", key, raw)
	}
	return value, nil
}

func resolveBcryptCost() (int, error) {
	raw := getEnv("BCRYPT_COST", "")
	if raw == "" {
		return bcrypt.DefaultCost, nil
	}
	cost, err := strconv.Atoi(raw)
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return 0, fmt.Errorf("invalid BCRYPT_COST %q: must be between %d and %d", raw, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return cost, nil
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
