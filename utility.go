// FILE: utility.go
package flatlog

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// String returns the name used in the [Level] prefix of a line
func (lvl Level) String() string {
	switch lvl {
	case LevelNone:
		return "None"
	case LevelFatal:
		return "Fatal"
	case LevelError:
		return "Error"
	case LevelWarning:
		return "Warning"
	case LevelInfo:
		return "Info"
	case LevelDebug:
		return "Debug"
	case LevelTrace:
		return "Trace"
	case LevelAll:
		return "All"
	default:
		return fmt.Sprintf("Level(%d)", int32(lvl))
	}
}

// emits reports whether records of this level can ever be written
func (lvl Level) emits() bool {
	return lvl >= LevelFatal && lvl <= LevelTrace
}

// valid reports whether the level is usable as a filter value
func (lvl Level) valid() bool {
	return lvl >= LevelNone && lvl <= LevelAll
}

// ParseLevel converts a level name or its number to a Level.
func ParseLevel(levelStr string) (Level, error) {
	s := strings.ToLower(strings.TrimSpace(levelStr))
	switch s {
	case "none":
		return LevelNone, nil
	case "fatal":
		return LevelFatal, nil
	case "error":
		return LevelError, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	case "all":
		return LevelAll, nil
	}

	if n, err := strconv.ParseInt(s, 10, 32); err == nil && Level(n).valid() {
		return Level(n), nil
	}
	return LevelNone, fmtErrorf("invalid level string: '%s' (use none, fatal, error, warning, info, debug, trace, all or 0-7)", levelStr)
}

// shortFunctionName strips the package path from a runtime function name.
// Closures are reported as their enclosing function.
func shortFunctionName(full string) string {
	if full == "" {
		return "(unknown)"
	}
	funcName := filepath.Base(full)
	parts := strings.Split(funcName, ".")
	// Drop the package name
	if len(parts) > 1 {
		parts = parts[1:]
	}
	// Trim trailing closure markers like func1, func1.2
	for len(parts) > 1 {
		last := parts[len(parts)-1]
		if !isClosureMarker(last) {
			break
		}
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ".")
}

// isClosureMarker matches "funcN" and bare digits produced for nested closures
func isClosureMarker(part string) bool {
	digits := part
	if strings.HasPrefix(part, "func") {
		digits = part[4:]
	}
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "flatlog: ") {
		format = "flatlog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}
