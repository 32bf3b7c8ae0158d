package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings environment variables.
const (
	EnvTimeoutSec = "RANKINGS_TIMEOUT_SEC"
	EnvUserAgent  = "RANKINGS_USER_AGENT"
	EnvLogLevel   = "RANKINGS_LOG_LEVEL"
	EnvMaxBodyKb  = "RANKINGS_MAX_BODY_KB"
)

// Settings errors.
var (
	ErrInvalidTimeout   = errors.New(EnvTimeoutSec + " must be a positive number of seconds")
	ErrInvalidMaxBodyKb = errors.New(EnvMaxBodyKb + " must be a positive integer")
	ErrInvalidLogLevel  = errors.New("log level must be one of: debug, info, warn, error")
)

// Settings are process-wide knobs shared by the CLIs.
type Settings struct {
	UserAgent string
	LogLevel  string
	Timeout   time.Duration
	MaxBodyKb int
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel:  "info",
		Timeout:   10 * time.Second,
		MaxBodyKb: 10240,
	}
}

// LoadSettings seeds the environment from envFiles (".env" when none is given),
// then reads Settings from it. Missing env files are ignored and variables
// already present in the environment win over file values.
func LoadSettings(envFiles ...string) (*Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	return settingsFromEnv(os.LookupEnv)
}

func settingsFromEnv(lookup func(string) (string, bool)) (*Settings, error) {
	s := DefaultSettings()

	if v, ok := lookup(EnvTimeoutSec); ok && strings.TrimSpace(v) != "" {
		timeout, err := ParseTimeoutSeconds(v)
		if err != nil {
			return nil, err
		}

		s.Timeout = timeout
	}

	if v, ok := lookup(EnvUserAgent); ok {
		s.UserAgent = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		level := strings.ToLower(strings.TrimSpace(v))
		if err := ValidateLogLevel(level); err != nil {
			return nil, err
		}

		s.LogLevel = level
	}

	if v, ok := lookup(EnvMaxBodyKb); ok && strings.TrimSpace(v) != "" {
		kb, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || kb <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMaxBodyKb, v)
		}

		s.MaxBodyKb = kb
	}

	return s, nil
}

// ParseTimeoutSeconds converts a possibly fractional number of seconds to a duration.
func ParseTimeoutSeconds(v string) (time.Duration, error) {
	sec, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || sec <= 0 || sec > 24*3600 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, v)
	}

	return time.Duration(sec * float64(time.Second)), nil
}

// ValidateLogLevel accepts debug, info, warn and error.
func ValidateLogLevel(level string) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[level] {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
	}

	return nil
}
