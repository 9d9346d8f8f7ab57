// Package config loads memscan settings from the environment and an
// optional dotenv file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/mhr3/memscan/substr"
)

// Environment variables read by FromEnv.
const (
	EnvKernel    = "MEMSCAN_KERNEL"
	EnvJobs      = "MEMSCAN_JOBS"
	EnvLogLevel  = "MEMSCAN_LOG_LEVEL"
	EnvLogFormat = "MEMSCAN_LOG_FORMAT"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the settings that may come from the environment. Command
// line flags override them.
type Config struct {
	Kernel    string
	Jobs      int
	LogLevel  string
	LogFormat string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Kernel:    substr.KernelAuto.String(),
		Jobs:      runtime.NumCPU(),
		LogLevel:  logrus.InfoLevel.String(),
		LogFormat: "text",
	}
}

// Load merges envFile into the process environment, leaving variables that
// are already set untouched, and reads the Config from the environment.
// A missing envFile is not an error. The result is not validated; callers
// apply their overrides first and then call Validate.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, falling back to Default for unset or
// empty variables. Only malformed numbers are rejected here.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	get := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	get(EnvKernel, &cfg.Kernel)
	get(EnvLogLevel, &cfg.LogLevel)
	get(EnvLogFormat, &cfg.LogFormat)

	if v, ok := lookup(EnvJobs); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalid, EnvJobs, err)
		}
		cfg.Jobs = n
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := substr.ParseKernel(c.Kernel); err != nil {
		return fmt.Errorf("%w: kernel: %v", ErrInvalid, err)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be positive, got %d", ErrInvalid, c.Jobs)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level: %v", ErrInvalid, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q, want text or json", ErrInvalid, c.LogFormat)
	}
	return nil
}

// NewLogger returns a logger writing to out at the configured level and
// format. c must be valid.
func (c Config) NewLogger(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
	return log
}
