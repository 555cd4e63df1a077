// Package config reads the server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"
)

// Defaults.
const (
	DefaultPort            = "3000"
	DefaultOCRMode         = "strict"
	DefaultOCRLanguage     = "eng"
	DefaultMaxUploadBytes  = 10 << 20
	DefaultSolveTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultHistoryLimit    = 50
)

// LogLevelEnv selects debug logging when set to "debug".
const LogLevelEnv = "MATH_SOLVER_LOG_LEVEL"

// Config holds the settings read from the environment by Load.
type Config struct {
	Port     string
	LogLevel string

	OCRMode        string
	OCRLanguage    string
	TessdataPrefix string
	OCRConcurrency int
	Preprocess     bool

	MaxUploadBytes  int64
	SolveTimeout    time.Duration
	ShutdownTimeout time.Duration
	HistoryLimit    int
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// env collects parse errors so Load can report all of them at once.
type env struct {
	errs []error
}

func (e *env) int(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		e.errs = append(e.errs, fmt.Errorf("%s: want a positive integer, got %q", k, v))
		return def
	}
	return n
}

func (e *env) bool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: want a boolean, got %q", k, v))
		return def
	}
	return b
}

func (e *env) duration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		e.errs = append(e.errs, fmt.Errorf("%s: want a positive duration, got %q", k, v))
		return def
	}
	return d
}

// Load reads the configuration. Every invalid variable is reported in the
// returned error.
func Load() (*Config, error) {
	var e env

	cfg := &Config{
		Port:     getEnv("PORT", DefaultPort),
		LogLevel: getEnv(LogLevelEnv, "info"),

		OCRMode:        getEnv("OCR_MODE", DefaultOCRMode),
		OCRLanguage:    getEnv("OCR_LANGUAGE", DefaultOCRLanguage),
		TessdataPrefix: os.Getenv("TESSDATA_PREFIX"),
		OCRConcurrency: e.int("OCR_CONCURRENCY", runtime.NumCPU()),
		Preprocess:     e.bool("PREPROCESS", true),

		MaxUploadBytes:  int64(e.int("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)),
		SolveTimeout:    e.duration("SOLVE_TIMEOUT", DefaultSolveTimeout),
		ShutdownTimeout: e.duration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
		HistoryLimit:    e.int("HISTORY_LIMIT", DefaultHistoryLimit),
	}

	if p, err := strconv.Atoi(cfg.Port); err != nil || p < 1 || p > 65535 {
		e.errs = append(e.errs, fmt.Errorf("PORT: want 1-65535, got %q", cfg.Port))
	}
	switch cfg.OCRMode {
	case "strict", "loose":
	default:
		e.errs = append(e.errs, fmt.Errorf("OCR_MODE: want strict or loose, got %q", cfg.OCRMode))
	}

	if err := errors.Join(e.errs...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
