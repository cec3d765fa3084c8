// Package config provides YAML configuration parsing for the catalog binary.
//
// This package enables running the catalog as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	title: Stationery
//	port: 8080
//	page_size: 5
//	shutdown_timeout: 10s
//
//	products:
//	  - name: Pen
//	    price: 10
//	  - name: ${SPECIAL_ITEM:-Notebook}
//	    price: 25.5
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/catalog/internal/input"
)

const (
	defaultPort            = 8080
	defaultPageSize        = 5
	maxPageSize            = 100
	defaultShutdownTimeout = 10 * time.Second
)

// Config is the root configuration structure for the catalog.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the dashboard title. Defaults to "Catalog" if not set.
	// Supports environment variable substitution.
	Title string `yaml:"title"`

	// Port is the HTTP server port. Defaults to 8080.
	Port int `yaml:"port"`

	// PageSize is how many products each page shows. Defaults to 5.
	PageSize int `yaml:"page_size"`

	// ShutdownTimeout bounds graceful shutdown of the serve command.
	// Accepts duration strings like "10s". Defaults to 10s.
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`

	// Products seeds the catalog, in order.
	Products []ProductConfig `yaml:"products"`
}

// ProductConfig defines one seed product.
type ProductConfig struct {
	// Name is the product's display name.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	Name string `yaml:"name"`

	// Price is required and must not be negative. A pointer so that a
	// missing price is distinguishable from 0.
	Price *float64 `yaml:"price"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		varName := submatches[1]
		hasDefault := submatches[2] != ""

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return submatches[3]
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before validation.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in Title and product names.
// Defaults are applied for Port (8080), PageSize (5) and ShutdownTimeout (10s).
// An empty product list is valid and starts an empty catalog.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = Duration(defaultShutdownTimeout)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	title, err := expandEnvVars(c.Title)
	if err != nil {
		return fmt.Errorf("title: %w", err)
	}
	c.Title = title

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.PageSize < 1 || c.PageSize > maxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d, got %d", maxPageSize, c.PageSize)
	}
	if c.ShutdownTimeout.Duration() < time.Second {
		return fmt.Errorf("shutdown_timeout must be at least 1s, got %s", c.ShutdownTimeout.Duration())
	}

	for i := range c.Products {
		p := &c.Products[i]

		name, err := expandEnvVars(p.Name)
		if err != nil {
			return fmt.Errorf("products[%d]: name: %w", i, err)
		}

		valid, err := input.Validate(input.Product{Name: name, Price: p.Price})
		if err != nil {
			return fmt.Errorf("products[%d]: %w", i, err)
		}
		p.Name = valid.Name
	}

	return nil
}
