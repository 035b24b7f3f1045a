package flatlog

import (
	"io"
	"time"
)

// logFile is the active output handle. *os.File satisfies it.
type logFile interface {
	io.Writer
	Sync() error
	Close() error
	Name() string
}

// activeFile pairs the open handle with what rotation needs to know about it
type activeFile struct {
	f      logFile
	path   string
	opened time.Time
	size   int64
}

// clock returns the current time, replaceable for day-boundary tests
type clock func() time.Time
