package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultOutput  = "github-stats.svg"
	DefaultRetries = 3
	DefaultTimeout = 10 * time.Second
)

// Config holds the run settings. Values come from, in increasing priority:
// defaults, the TOML file, environment variables (a .env file is loaded
// first), and command-line flags applied by the caller.
type Config struct {
	User           string   `toml:"user"`
	Token          string   `toml:"token"`
	APIURL         string   `toml:"api_url"`
	Output         string   `toml:"output"`
	TopLanguages   int      `toml:"top_languages"`
	IncludeForks   bool     `toml:"include_forks"`
	ShufflePalette bool     `toml:"shuffle_palette"`
	PaletteSeed    uint64   `toml:"palette_seed"`
	Retries        int      `toml:"retries"`
	Timeout        duration `toml:"timeout"`
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func defaults() *Config {
	return &Config{
		Output:  DefaultOutput,
		Retries: DefaultRetries,
		Timeout: duration{DefaultTimeout},
	}
}

// Load reads the optional TOML file at path ("" skips it) and then the
// GHCARD_* environment variables.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("GHCARD_USER"); v != "" {
		c.User = v
	}
	if v := os.Getenv("GHCARD_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("GHCARD_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("GHCARD_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("GHCARD_TOP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: GHCARD_TOP: %w", err)
		}
		c.TopLanguages = n
	}
	return nil
}

func (c *Config) Validate() error {
	if c.User == "" {
		return errors.New("config: missing user (set --user or GHCARD_USER)")
	}
	if c.TopLanguages < 0 {
		return fmt.Errorf("config: top languages must be >= 0, got %d", c.TopLanguages)
	}
	if c.Output == "" {
		return errors.New("config: missing output path")
	}
	return nil
}
