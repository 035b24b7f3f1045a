package flatlog

import "errors"

var (
	// ErrNilConfig is returned when a nil *Config is supplied
	ErrNilConfig = errors.New("flatlog: configuration cannot be nil")

	// ErrDirectoryInUse is returned by Registry.Open when a live sink already owns the directory
	ErrDirectoryInUse = errors.New("flatlog: log directory already owned by an open sink")
)
