package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort       = ":8080"
	defaultSessionTTL = 30 * time.Minute
)

// LoadDotEnv populates unset variables from a .env file in the working
// directory. A missing file is not an error.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to load .env: %w", err)
	}
	return nil
}

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return defaultPort
	}
	return port
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// SessionTTL is how long an idle game is kept in memory.
func SessionTTL() (time.Duration, error) {
	return durationEnv("SESSION_TTL", defaultSessionTTL)
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	s, ok := os.LookupEnv(name)
	if !ok || s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return d, nil
}

func requireEnv(name string) (string, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("%s env variable is not set", name)
	}
	return v, nil
}

// fromEnvOrFile reads name, falling back to the file named by name_FILE.
func fromEnvOrFile(name string) ([]byte, error) {
	if v, ok := os.LookupEnv(name); ok {
		return []byte(v), nil
	}
	path, ok := os.LookupEnv(name + "_FILE")
	if !ok {
		return nil, fmt.Errorf("no %s or %s_FILE env variable set", name, name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s_FILE: %w", name, err)
	}
	return data, nil
}
