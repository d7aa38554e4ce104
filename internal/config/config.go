// Package config holds the loader and server configuration.
//
// Values are layered: built-in defaults, then an optional TOML file, then
// environment variables (optionally seeded from a .env file). Command-line
// flags are applied last by the cmd package.
package config

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// Config holds all application configuration.
type Config struct {
	// BasePath is prepended to every resource file.
	BasePath string `toml:"base_path" env:"VAB_BASE_PATH"`

	// ResourceFile overrides the variant's file for one-shot loads.
	ResourceFile string `toml:"resource_file" env:"VAB_RESOURCE_FILE"`

	// Delimiter is a single character; "\t" and "tab" mean a tab.
	Delimiter string `toml:"delimiter" env:"VAB_DELIMITER"`

	// Timeout bounds each retrieval; 0 disables it.
	Timeout Duration `toml:"timeout" env:"VAB_TIMEOUT"`

	// Headers are extra "Name: value" request headers, one per line.
	Headers string `toml:"headers" env:"VAB_HEADERS"`

	// Variants maps variant names to resource files.
	Variants map[string]string `toml:"variants"`

	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP host settings.
type ServerConfig struct {
	Host string `toml:"host" env:"VAB_SERVER_HOST"`
	Port int    `toml:"port" env:"VAB_SERVER_PORT"`

	// StaticDir is served under /static when set.
	StaticDir string `toml:"static_dir" env:"VAB_STATIC_DIR"`

	// RateLimit is requests per second across all clients; 0 disables it.
	RateLimit float64 `toml:"rate_limit" env:"VAB_RATE_LIMIT"`
	RateBurst int     `toml:"rate_burst" env:"VAB_RATE_BURST"`

	RequestTimeout  Duration `toml:"request_timeout" env:"VAB_REQUEST_TIMEOUT"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" env:"VAB_SHUTDOWN_TIMEOUT"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" env:"VAB_LOG_LEVEL"`

	// Format is text or json.
	Format string `toml:"format" env:"VAB_LOG_FORMAT"`
}

// Duration is a time.Duration written as "30s", "1m30s" in TOML and env.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Delimiter: ",",
		Timeout:   Duration{30 * time.Second},
		Variants: map[string]string{
			"books":  "data.csv",
			"colors": "data-colors.csv",
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			RateLimit:       50,
			RateBurst:       100,
			RequestTimeout:  Duration{60 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DelimiterRune returns the configured delimiter as a rune.
func (c *Config) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if r == utf8.RuneError || size != len(c.Delimiter) {
		return 0, fmt.Errorf("delimiter %q must be a single character", c.Delimiter)
	}
	return r, nil
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
