package compat

import (
	"fmt"
	"os"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/lixenwraith/flatlog"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter wraps a flatlog.Sink to implement the gnet logging.Logger interface
type GnetAdapter struct {
	sink         *flatlog.Sink
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(sink *flatlog.Sink, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		sink: sink,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.emit(flatlog.LevelDebug, fmt.Sprintf(format, args...), nil)
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.emit(flatlog.LevelInfo, fmt.Sprintf(format, args...), nil)
}

// Warnf logs at warning level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.emit(flatlog.LevelWarning, fmt.Sprintf(format, args...), nil)
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.emit(flatlog.LevelError, fmt.Sprintf(format, args...), nil)
}

// Fatalf logs at fatal level, flushes and triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.emit(flatlog.LevelFatal, msg, nil)

	// Ensure log is on disk before exit
	a.sink.Flush()

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

// emit records msg with the adapter's caller as origin
func (a *GnetAdapter) emit(level flatlog.Level, msg string, fields []flatlog.Field) {
	if !a.sink.Enabled(level) {
		return
	}
	fields = append(fields, flatlog.F("source", "gnet"))
	a.sink.Record(msg, level, fields, flatlog.Caller(2))
}
