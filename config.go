// FILE: config.go
package flatlog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds all sink configuration values
type Config struct {
	// Filtering
	Level int64 `toml:"level"` // Initial minimum level, 0 (none) to 7 (all)

	// Rotation
	Directory    string `toml:"directory"`
	MaxSizeKB    int64  `toml:"max_size_kb"`    // Max size per log file
	MaxFileCount int64  `toml:"max_file_count"` // Numbered files tried per day

	// Buffering and formatting
	BufferThreshold int64  `toml:"buffer_threshold"` // Lines buffered before an automatic flush
	TimestampFormat string `toml:"timestamp_format"`
	RotateOnFlush   bool   `toml:"rotate_on_flush"` // Re-evaluate the target file before every flush

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to stderr
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Level: int64(LevelAll),

	Directory:    DefaultDirectory,
	MaxSizeKB:    DefaultMaxSizeKB,
	MaxFileCount: DefaultMaxFileCount,

	BufferThreshold: DefaultBufferThreshold,
	TimestampFormat: DefaultTimestampFormat,
	RotateOnFlush:   true,

	InternalErrorsToStderr: true,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config.
// Keys are read from the [flatlog] table; a missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("flatlog.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, "flatlog.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides keyed by toml name
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmt.Errorf("failed to apply overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		tomlTag := t.Field(i).Tag.Get("toml")
		if tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case Level:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if !Level(c.Level).valid() {
		return fmtErrorf("level must be between 0 and 7: %d", c.Level)
	}

	if strings.TrimSpace(c.Directory) == "" {
		return fmtErrorf("directory cannot be empty")
	}

	if strings.TrimSpace(c.TimestampFormat) == "" {
		return fmtErrorf("timestamp_format cannot be empty")
	}

	if c.MaxSizeKB <= 0 {
		return fmtErrorf("max_size_kb must be positive: %d", c.MaxSizeKB)
	}

	if c.MaxFileCount <= 0 {
		return fmtErrorf("max_file_count must be positive: %d", c.MaxFileCount)
	}

	if c.BufferThreshold <= 0 {
		return fmtErrorf("buffer_threshold must be positive: %d", c.BufferThreshold)
	}

	return nil
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

// rotationPolicy derives the rotation policy for this configuration
func (c *Config) rotationPolicy() RotationPolicy {
	return RotationPolicy{
		Directory:    c.Directory,
		MaxSize:      c.MaxSizeKB * sizeMultiplier,
		MaxFileCount: int(c.MaxFileCount),
	}
}
