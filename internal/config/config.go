// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

// Config holds the settings shared by the server and the report CLI.
type Config struct {
	DatasetPath    string   // CSV file loaded at startup
	ListenAddr     string   // HTTP listen address (default ":8080")
	AllowedOrigins []string // CORS origins (default ["*"])
	RateLimitRPS   float64  // requests per second per client (default 20)
	LogLevel       log.Lvl  // debug, info, warn, error (default info)
}

// LoadDotEnv loads path into the environment. A missing file is fine;
// variables already set win.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	cfg := Config{
		DatasetPath:    envOr("DATASET_PATH", "dataset/zomato.csv"),
		ListenAddr:     envOr("LISTEN_ADDR", ":8080"),
		AllowedOrigins: parseList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRPS:   20,
		LogLevel:       log.INFO,
	}

	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps <= 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_RPS %q", v)
		}
		cfg.RateLimitRPS = rps
	}

	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		lvl, err := parseLevel(v)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = lvl
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseList(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func parseLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG, nil
	case "info":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	}
	return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
}
