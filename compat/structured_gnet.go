package compat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lixenwraith/flatlog"
)

// Pattern to detect common structured patterns like "key=%v" or "key: %v"
var keyValuePattern = regexp.MustCompile(`(\w+)\s*[:=]\s*%[vsdqxXeEfFgGpbcU]`)

// parseFormat splits a printf-style format into a message and key/value fields.
// Only formats whose every verb belongs to a key=%v pair are split; anything
// else yields the fully formatted message and no fields.
func parseFormat(format string, args []any) (string, []flatlog.Field) {
	matches := keyValuePattern.FindAllStringSubmatchIndex(format, -1)
	verbs := strings.Count(strings.ReplaceAll(format, "%%", ""), "%")
	if len(matches) == 0 || len(matches) != verbs || len(matches) != len(args) {
		return fmt.Sprintf(format, args...), nil
	}

	var msg string
	fields := make([]flatlog.Field, 0, len(matches))
	lastEnd := 0
	argIndex := 0

	for _, match := range matches {
		// Text before the first pair becomes the message
		if match[0] > lastEnd && msg == "" {
			msg = strings.TrimSpace(format[lastEnd:match[0]])
		}

		key := format[match[2]:match[3]]
		verb := format[match[1]-2 : match[1]]
		fields = append(fields, flatlog.F(key, fmt.Sprintf(verb, args[argIndex])))
		argIndex++

		lastEnd = match[1]
	}

	// Trailing text is appended to the message
	if lastEnd < len(format) {
		remaining := strings.TrimSpace(strings.ReplaceAll(format[lastEnd:], "%%", "%"))
		switch {
		case remaining == "":
		case msg == "":
			msg = remaining
		default:
			msg = msg + " " + remaining
		}
	}

	return msg, fields
}

// StructuredGnetAdapter provides enhanced structured logging for gnet
type StructuredGnetAdapter struct {
	*GnetAdapter
	extractFields bool
}

// NewStructuredGnetAdapter creates a gnet adapter with structured field extraction
func NewStructuredGnetAdapter(sink *flatlog.Sink, opts ...GnetOption) *StructuredGnetAdapter {
	return &StructuredGnetAdapter{
		GnetAdapter:   NewGnetAdapter(sink, opts...),
		extractFields: true,
	}
}

// Debugf logs with structured field extraction
func (a *StructuredGnetAdapter) Debugf(format string, args ...any) {
	a.emitStructured(flatlog.LevelDebug, format, args)
}

// Infof logs with structured field extraction
func (a *StructuredGnetAdapter) Infof(format string, args ...any) {
	a.emitStructured(flatlog.LevelInfo, format, args)
}

// Warnf logs with structured field extraction
func (a *StructuredGnetAdapter) Warnf(format string, args ...any) {
	a.emitStructured(flatlog.LevelWarning, format, args)
}

// Errorf logs with structured field extraction
func (a *StructuredGnetAdapter) Errorf(format string, args ...any) {
	a.emitStructured(flatlog.LevelError, format, args)
}

func (a *StructuredGnetAdapter) emitStructured(level flatlog.Level, format string, args []any) {
	if !a.sink.Enabled(level) {
		return
	}
	var msg string
	var fields []flatlog.Field
	if a.extractFields {
		msg, fields = parseFormat(format, args)
	} else {
		msg = fmt.Sprintf(format, args...)
	}
	fields = append(fields, flatlog.F("source", "gnet"))
	a.sink.Record(msg, level, fields, flatlog.Caller(2))
}
