package config

import (
	"encoding"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/annwoerpel/visual-analytics-books/internal/csv"
)

// Load builds the configuration from defaults, the TOML file at path (if
// path is not empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("config load: %w", err)
		}
	}

	if err := loadStruct(reflect.ValueOf(cfg).Elem(), os.LookupEnv); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files without overriding
// variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	// The file's variant table replaces the defaults instead of merging.
	var probe struct {
		Variants map[string]string `toml:"variants"`
	}
	if err := toml.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if probe.Variants != nil {
		c.Variants = nil
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// loadStruct recursively populates fields tagged with env.
func loadStruct(v reflect.Value, lookup func(string) (string, bool)) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		envName := field.Tag.Get("env")

		if envName == "" {
			if field.Type.Kind() == reflect.Struct {
				if err := loadStruct(fieldVal, lookup); err != nil {
					return err
				}
			}
			continue
		}

		value, ok := lookup(envName)
		if !ok {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	if field.Addr().Type().Implements(textUnmarshalerType) {
		return field.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(value))
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(i)

	case reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("invalid number: %w", err)
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is usable.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if d, err := c.DelimiterRune(); err != nil {
		errs = append(errs, "VAB_DELIMITER: "+err.Error())
	} else if !csv.ValidDelimiter(d) {
		errs = append(errs, fmt.Sprintf("VAB_DELIMITER (%q) cannot be used as a delimiter", c.Delimiter))
	}
	if c.Timeout.Duration < 0 {
		errs = append(errs, "VAB_TIMEOUT must be non-negative")
	}
	for name, file := range c.Variants {
		if name == "" {
			errs = append(errs, "variant names must not be empty")
		}
		if file == "" {
			errs = append(errs, fmt.Sprintf("variant %q has no resource file", name))
		}
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("VAB_SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, "VAB_RATE_LIMIT must be non-negative")
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst <= 0 {
		errs = append(errs, "VAB_RATE_BURST must be positive when rate limiting is enabled")
	}
	if c.Server.RequestTimeout.Duration < 0 {
		errs = append(errs, "VAB_REQUEST_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout.Duration <= 0 {
		errs = append(errs, "VAB_SHUTDOWN_TIMEOUT must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("VAB_LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("VAB_LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
