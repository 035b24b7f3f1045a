// Package formatter renders log records as single text lines of the form
//
//	[Level] 2006-01-02 15:04:05 | file.go:function:42 | message | key = value
package formatter

import (
	"time"

	"github.com/lixenwraith/flatlog/sanitizer"
)

const (
	DefaultTimestampFormat = time.DateTime
	separator              = " | "
	assign                 = " = "
)

// Field is a key/value pair appended after the message
type Field struct {
	Key   string
	Value string
}

// Formatter builds lines. It holds no per-call state and is safe for
// concurrent use once configured.
type Formatter struct {
	sanitizer       *sanitizer.Sanitizer
	timestampFormat string
}

// New creates a formatter with the provided sanitizer.
// Without one, text is hex-encoded for non-printable runes so a record never spans lines.
func New(s ...*sanitizer.Sanitizer) *Formatter {
	var san *sanitizer.Sanitizer
	if len(s) > 0 && s[0] != nil {
		san = s[0]
	} else {
		san = sanitizer.New().Policy(sanitizer.PolicyTxt)
	}
	return &Formatter{
		sanitizer:       san,
		timestampFormat: DefaultTimestampFormat,
	}
}

// TimestampFormat sets the timestamp layout
func (f *Formatter) TimestampFormat(format string) *Formatter {
	if format != "" {
		f.timestampFormat = format
	}
	return f
}

// Format returns a newline-terminated line. The returned slice is owned by the caller.
func (f *Formatter) Format(level string, timestamp time.Time, origin string, text string, fields []Field) []byte {
	size := len(level) + len(f.timestampFormat) + len(origin) + len(text) + 16
	for _, fd := range fields {
		size += len(fd.Key) + len(fd.Value) + len(separator) + len(assign)
	}
	buf := make([]byte, 0, size)

	buf = append(buf, '[')
	buf = append(buf, level...)
	buf = append(buf, ']', ' ')
	buf = timestamp.AppendFormat(buf, f.timestampFormat)
	buf = append(buf, separator...)
	buf = append(buf, f.sanitizer.Sanitize(origin)...)
	buf = append(buf, separator...)
	buf = append(buf, f.sanitizer.Sanitize(text)...)

	for _, fd := range fields {
		buf = append(buf, separator...)
		buf = append(buf, f.sanitizer.Sanitize(fd.Key)...)
		buf = append(buf, assign...)
		buf = append(buf, f.sanitizer.Sanitize(fd.Value)...)
	}

	buf = append(buf, '\n')
	return buf
}
