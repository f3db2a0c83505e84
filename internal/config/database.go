package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	Username string
	Password string
	Host     string
	Port     uint16
	DBName   string
	SSLMode  string
}

func NewDatabase() (*Database, error) {
	var (
		cfg Database
		err error
	)
	if cfg.Username, err = requireEnv("POSTGRES_USER"); err != nil {
		return nil, err
	}
	password, err := fromEnvOrFile("POSTGRES_PASSWORD")
	if err != nil {
		return nil, fmt.Errorf("unable to load password: %w", err)
	}
	cfg.Password = strings.TrimSpace(string(password))
	if cfg.Host, err = requireEnv("POSTGRES_HOST"); err != nil {
		return nil, err
	}
	portStr, err := requireEnv("POSTGRES_PORT")
	if err != nil {
		return nil, err
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("unable to convert port to int: %w", err)
	}
	cfg.Port = uint16(port)
	if cfg.DBName, err = requireEnv("POSTGRES_DB"); err != nil {
		return nil, err
	}
	if cfg.SSLMode, err = requireEnv("POSTGRES_SSLMODE"); err != nil {
		cfg.SSLMode = "disable"
	}
	return &cfg, nil
}

func (c Database) URL() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		c.Username, url.QueryEscape(c.Password), c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// DbURL prefers DATABASE_URL over the POSTGRES_* variables.
func DbURL() (string, error) {
	if dbURL, ok := os.LookupEnv("DATABASE_URL"); ok {
		return dbURL, nil
	}
	cfg, err := NewDatabase()
	if err != nil {
		return "", fmt.Errorf("no DATABASE_URL set; %w", err)
	}
	return cfg.URL(), nil
}

func NewPgxpoolConfig() (*pgxpool.Config, error) {
	dbURL, err := DbURL()
	if err != nil {
		return nil, err
	}
	return pgxpool.ParseConfig(dbURL)
}
