// FILE: override.go
package flatlog

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyOverride applies string key-value overrides to the configuration in place.
// Each override should be in the format "key=value". The result is validated.
//
// Example:
//
//	cfg := flatlog.DefaultConfig()
//	err := cfg.ApplyOverride(
//	    "directory=/var/log/app",
//	    "level=warning",
//	    "max_size_kb=2048",
//	)
func (c *Config) ApplyOverride(overrides ...string) error {
	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(c, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return combineConfigErrors(errors)
	}

	return c.Validate()
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("flatlog: multiple configuration errors:")
	for i, err := range errors {
		errMsg := strings.TrimPrefix(err.Error(), "flatlog: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	case "level":
		levelVal, err := ParseLevel(value)
		if err != nil {
			return fmtErrorf("invalid level value '%s': %w", value, err)
		}
		cfg.Level = int64(levelVal)

	case "directory":
		cfg.Directory = value

	case "max_size_kb":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_size_kb '%s': %w", value, err)
		}
		cfg.MaxSizeKB = intVal
	case "max_size_mb":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_size_mb '%s': %w", value, err)
		}
		cfg.MaxSizeKB = intVal * sizeMultiplier
	case "max_file_count":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_file_count '%s': %w", value, err)
		}
		cfg.MaxFileCount = intVal

	case "buffer_threshold":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for buffer_threshold '%s': %w", value, err)
		}
		cfg.BufferThreshold = intVal
	case "timestamp_format":
		cfg.TimestampFormat = value
	case "rotate_on_flush":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for rotate_on_flush '%s': %w", value, err)
		}
		cfg.RotateOnFlush = boolVal

	case "internal_errors_to_stderr":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for internal_errors_to_stderr '%s': %w", value, err)
		}
		cfg.InternalErrorsToStderr = boolVal

	default:
		return fmtErrorf("unknown config key: %s", key)
	}

	return nil
}
