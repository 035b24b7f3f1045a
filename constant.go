// FILE: lixenwraith/flatlog/constant.go
package flatlog

import (
	"time"
)

// Level is the severity of a record. Lower values are more urgent.
// LevelNone and LevelAll are filter sentinels and never appear in output.
type Level int32

// Severity levels
const (
	LevelNone    Level = 0
	LevelFatal   Level = 1
	LevelError   Level = 2
	LevelWarning Level = 3
	LevelInfo    Level = 4
	LevelDebug   Level = 5
	LevelTrace   Level = 6
	LevelAll     Level = 7
)

// Rotation defaults
const (
	DefaultDirectory    = "logs"
	DefaultMaxSizeKB    = 10 * 1024 // 10 MiB
	DefaultMaxFileCount = 1000
)

// Buffering
const (
	// Lines held in memory before Record triggers a flush
	DefaultBufferThreshold = 100
)

// Naming
const (
	filePrefix     = "log_"
	fileExtension  = ".txt"
	fileDateLayout = "2006-01-02"
	// Width of the per-day sequence suffix
	sequenceDigits = 3
)

// Formatting
const (
	DefaultTimestampFormat = time.DateTime // 2006-01-02 15:04:05
	sizeMultiplier         = 1024
)

// File modes
const (
	dirPerm  = 0755
	filePerm = 0644
)
