package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"Truss/internal/calc/material"
	"Truss/internal/truss"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	TLSCert         string
	TLSKey          string
	DatabaseURL     string
	TokenKey        string
	Env             string
	LogLevel        string
	RateLimit       float64
	RateBurst       int
	ShutdownTimeout time.Duration
	Material        material.Material
	MaxCondition    float64
}

func (c Config) Production() bool { return c.Env == "production" }

// TLS reports whether both a certificate and a key are configured.
func (c Config) TLS() bool { return c.TLSCert != "" && c.TLSKey != "" }

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	steel := material.Steel()
	c := Config{
		Addr:        getenv("ADDR", ":8080"),
		TLSCert:     os.Getenv("TLS_CERT"),
		TLSKey:      os.Getenv("TLS_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		TokenKey:    os.Getenv("TOKEN_KEY"),
		Env:         getenv("ENV", "production"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
	var err error
	if c.RateLimit, err = floatEnv("RATE_LIMIT", 1); err != nil {
		return Config{}, err
	}
	if c.RateBurst, err = intEnv("RATE_BURST", 3); err != nil {
		return Config{}, err
	}
	if c.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if c.Material.E_GPa, err = floatEnv("MATERIAL_E_GPA", steel.E_GPa); err != nil {
		return Config{}, err
	}
	if c.Material.FyMPa, err = floatEnv("MATERIAL_FY_MPA", steel.FyMPa); err != nil {
		return Config{}, err
	}
	if c.Material.DensityKgM3, err = floatEnv("MATERIAL_DENSITY", steel.DensityKgM3); err != nil {
		return Config{}, err
	}
	if c.Material.GravityMS2, err = floatEnv("GRAVITY", steel.GravityMS2); err != nil {
		return Config{}, err
	}
	if c.MaxCondition, err = floatEnv("SOLVER_MAX_CONDITION", truss.DefaultMaxCondition); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks what the HTTP server needs. The CLI only needs Material.
func (c Config) Validate() error {
	if err := c.Material.Validate(); err != nil {
		return err
	}
	if c.MaxCondition <= 1 {
		return fmt.Errorf("SOLVER_MAX_CONDITION must be greater than 1, got %g", c.MaxCondition)
	}
	if c.TokenKey == "" {
		return errors.New("TOKEN_KEY environment variable is not set")
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("rate limit %g/s burst %d must be positive", c.RateLimit, c.RateBurst)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
