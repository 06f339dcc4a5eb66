package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Rhymond/go-money"
	"github.com/etnz/tradebook"
	"github.com/etnz/tradebook/renderer"
	"github.com/joho/godotenv"
)

// Environment variables overriding the configuration file. They are also
// passed to extensions.
const (
	EnvJournal   = "TRADEBOOK_JOURNAL"
	EnvMethod    = "TRADEBOOK_METHOD"
	EnvCurrency  = "TRADEBOOK_CURRENCY"
	EnvMarks     = "TRADEBOOK_MARKS"
	EnvMarksPath = "TRADEBOOK_MARKS_PATH"
	EnvVerbose   = "TRADEBOOK_VERBOSE"
)

// Config holds the settings shared by all commands.
type Config struct {
	Journal   string `toml:"journal"`    // JSONL trade journal
	Method    string `toml:"method"`     // fifo or lifo
	Currency  string `toml:"currency"`   // display currency
	Marks     string `toml:"marks"`      // JSON quote document with mark prices
	MarksPath string `toml:"marks_path"` // JSONPath to the prices in Marks
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Journal:   "trades.jsonl",
		Method:    "fifo",
		Currency:  renderer.DefaultCurrency,
		MarksPath: "$",
	}
}

// LoadConfig reads the TOML file at path on top of the defaults, then
// applies the TRADEBOOK_* environment overrides, including those found in
// a .env file of the working directory. A missing file is not an error.
// The returned Config has not been validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("cannot read configuration %q: %w", path, err)
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Journal, EnvJournal)
	setStr(&cfg.Method, EnvMethod)
	setStr(&cfg.Currency, EnvCurrency)
	setStr(&cfg.Marks, EnvMarks)
	setStr(&cfg.MarksPath, EnvMarksPath)
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks Config for invalid or missing values and returns a
// combined error describing every problem found.
func (c Config) Validate() error {
	var errs []string
	if strings.TrimSpace(c.Journal) == "" {
		errs = append(errs, "journal must be set")
	}
	if _, err := tradebook.ParseMatchingPolicy(c.Method); err != nil {
		errs = append(errs, fmt.Sprintf("method: %v (valid: fifo, lifo)", err))
	}
	if money.GetCurrency(strings.ToUpper(c.Currency)) == nil {
		errs = append(errs, fmt.Sprintf("unknown currency %q", c.Currency))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Policy returns the lot matching policy. It defaults to FIFO on an invalid
// method, call Validate first.
func (c Config) Policy() tradebook.MatchingPolicy {
	p, _ := tradebook.ParseMatchingPolicy(c.Method)
	return p
}

// Options returns the rendering options.
func (c Config) Options() renderer.Options {
	return renderer.Options{Currency: strings.ToUpper(c.Currency)}
}
