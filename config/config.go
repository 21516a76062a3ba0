package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidView is returned when a configured view cannot be evaluated.
var ErrInvalidView = errors.New("invalid view")

// Config holds the application configuration loaded from a YAML file.
type Config struct {
	// Views are printed in order after the pool is sorted.
	Views []View `yaml:"views"`
	// ConcurrencyLimit for parallel DNS lookups of the resolve domains.
	ConcurrencyLimit int `yaml:"concurrencyLimit"`
	// Nameserver is the host:port queried for resolve domains. Empty means
	// the system resolver configuration.
	Nameserver string `yaml:"nameserver"`
	// Resolve lists domains whose A records are added to the pool.
	Resolve []string `yaml:"resolve"`
}

// View selects what part of the sorted pool gets printed. A view with neither
// Prefix nor Any prints the whole pool.
type View struct {
	Name   string `yaml:"name"`
	Prefix []int  `yaml:"prefix"`
	Any    *int   `yaml:"any"`
}

// DefaultViews reproduces the fixed report: the whole pool, first octet 1,
// first octets 46.70, and any octet 46.
func DefaultViews() []View {
	any46 := 46
	return []View{
		{Name: "all"},
		{Name: "first-1", Prefix: []int{1}},
		{Name: "first-46-70", Prefix: []int{46, 70}},
		{Name: "any-46", Any: &any46},
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads and unmarshals the configuration from the specified YAML file path.
// An empty path yields the default configuration.
func LoadConfig(filePath string) (*Config, error) {
	if filePath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file %s: %w", filePath, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", filePath, err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Views) == 0 {
		c.Views = DefaultViews()
	}
	if c.ConcurrencyLimit == 0 {
		c.ConcurrencyLimit = 4 // Default concurrency limit
	}
	for i := range c.Views {
		if c.Views[i].Name == "" {
			c.Views[i].Name = fmt.Sprintf("view-%d", i+1)
		}
	}
}

// Validate checks that every view names a single, well-formed selection.
func (c *Config) Validate() error {
	if c.ConcurrencyLimit < 0 {
		return fmt.Errorf("concurrencyLimit must be positive, got %d", c.ConcurrencyLimit)
	}
	for _, v := range c.Views {
		if len(v.Prefix) > 0 && v.Any != nil {
			return fmt.Errorf("%w %s: prefix and any are mutually exclusive", ErrInvalidView, v.Name)
		}
		if len(v.Prefix) > 4 {
			return fmt.Errorf("%w %s: prefix holds %d values, at most 4 allowed", ErrInvalidView, v.Name, len(v.Prefix))
		}
	}
	return nil
}
