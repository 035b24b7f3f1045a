// FILE: lixenwraith/flatlog/compat/fasthttp.go
package compat

import (
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/flatlog"
)

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

// FastHTTPAdapter wraps a flatlog.Sink to implement the fasthttp Logger interface
type FastHTTPAdapter struct {
	sink          *flatlog.Sink
	defaultLevel  flatlog.Level
	levelDetector func(string) flatlog.Level // Function to detect log level from message
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(sink *flatlog.Sink, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		sink:          sink,
		defaultLevel:  flatlog.LevelInfo,
		levelDetector: DetectLogLevel, // Default level detection
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the level used when detection finds nothing
func WithDefaultLevel(level flatlog.Level) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect log level from message content.
// Returning LevelNone falls back to the default level.
func WithLevelDetector(detector func(string) flatlog.Level) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected := a.levelDetector(msg); detected != flatlog.LevelNone {
			level = detected
		}
	}

	if !a.sink.Enabled(level) {
		return
	}
	a.sink.Record(msg, level, []flatlog.Field{flatlog.F("source", "fasthttp")}, flatlog.Caller(1))
}

// DetectLogLevel attempts to detect log level from message content.
// It returns LevelNone when no indicator is present.
func DetectLogLevel(msg string) flatlog.Level {
	msgLower := strings.ToLower(msg)

	// Check for error indicators
	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") ||
		strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic") {
		return flatlog.LevelError
	}

	// Check for warning indicators
	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "deprecated") {
		return flatlog.LevelWarning
	}

	// Check for debug indicators
	if strings.Contains(msgLower, "debug") {
		return flatlog.LevelDebug
	}

	if strings.Contains(msgLower, "trace") {
		return flatlog.LevelTrace
	}

	return flatlog.LevelNone
}
