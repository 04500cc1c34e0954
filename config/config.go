package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL         = "https://exoticworld-backend.onrender.com/"
	DefaultConnectTimeout = 30 * time.Second
	DefaultReadTimeout    = 60 * time.Second
	DefaultPrefsDB        = "exoticworld_prefs.db"
	DefaultServerPort     = "8080"
	DefaultSandboxDB      = "exoticworld_sandbox.db"
)

// ClientConfig holds the settings of the catalog/cart client.
type ClientConfig struct {
	APIURL         string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	PrefsDB        string
	Verbose        bool
}

// ServerConfig holds the settings of the local service sandbox.
type ServerConfig struct {
	Port               string
	DatabaseURL        string
	SeedFile           string
	AllowedOrigins     []string
	RateLimitPerMinute int
}

func LoadEnv() error {
	// A .env file is optional; variables set in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// ValidateClientEnv checks the client variables that have a required shape.
func ValidateClientEnv() error {
	var invalid []string

	if raw := os.Getenv("EXOTICWORLD_API_URL"); raw != "" {
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			invalid = append(invalid, "EXOTICWORLD_API_URL")
		}
	}
	for _, key := range []string{"EXOTICWORLD_CONNECT_TIMEOUT", "EXOTICWORLD_READ_TIMEOUT"} {
		if raw := os.Getenv(key); raw != "" {
			if d, err := time.ParseDuration(raw); err != nil || d <= 0 {
				invalid = append(invalid, key)
			}
		}
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid environment variables: %v", invalid)
	}
	return nil
}

// ValidateServerEnv checks the sandbox variables that have a required shape.
func ValidateServerEnv() error {
	var invalid []string

	if raw := os.Getenv("PORT"); raw != "" {
		if n, err := strconv.Atoi(raw); err != nil || n <= 0 || n > 65535 {
			invalid = append(invalid, "PORT")
		}
	}
	if raw := os.Getenv("RATE_LIMIT_PER_MINUTE"); raw != "" {
		if n, err := strconv.Atoi(raw); err != nil || n < 0 {
			invalid = append(invalid, "RATE_LIMIT_PER_MINUTE")
		}
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid environment variables: %v", invalid)
	}

	if os.Getenv("DATABASE_URL") == "" {
		log.Printf("WARNING: DATABASE_URL not set - using local sqlite file %s", DefaultSandboxDB)
	}
	if os.Getenv("FRONTEND_URL") == "" {
		log.Println("WARNING: FRONTEND_URL not set - CORS allows any origin")
	}

	return nil
}

// Client reads the client configuration from the environment.
func Client() ClientConfig {
	return ClientConfig{
		APIURL:         GetEnv("EXOTICWORLD_API_URL", DefaultAPIURL),
		ConnectTimeout: GetDuration("EXOTICWORLD_CONNECT_TIMEOUT", DefaultConnectTimeout),
		ReadTimeout:    GetDuration("EXOTICWORLD_READ_TIMEOUT", DefaultReadTimeout),
		PrefsDB:        GetEnv("EXOTICWORLD_PREFS_DB", DefaultPrefsDB),
		Verbose:        GetBool("EXOTICWORLD_VERBOSE", false),
	}
}

// Server reads the sandbox configuration from the environment.
func Server() ServerConfig {
	var origins []string
	for _, o := range strings.Split(os.Getenv("FRONTEND_URL"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return ServerConfig{
		Port:               GetEnv("PORT", DefaultServerPort),
		DatabaseURL:        GetEnv("DATABASE_URL", DefaultSandboxDB),
		SeedFile:           os.Getenv("SEED_FILE"),
		AllowedOrigins:     origins,
		RateLimitPerMinute: GetInt("RATE_LIMIT_PER_MINUTE", 0),
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetDuration parses key as a time.Duration, falling back on absent or bad values.
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func GetInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func GetBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
}
