// FILE: lixenwraith/flatlog/builder.go
package flatlog

import (
	"io"
	"time"
)

// Builder provides a fluent API for building sink configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg      *Config
	opts     sinkOptions
	registry *Registry
	err      error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// FromConfig starts a builder from an existing configuration.
func FromConfig(cfg *Config) *Builder {
	if cfg == nil {
		return &Builder{cfg: DefaultConfig(), err: ErrNilConfig}
	}
	return &Builder{cfg: cfg.Clone()}
}

// Build creates a new Sink with the specified configuration.
// When a Registry was supplied the sink is opened through it.
func (b *Builder) Build() (*Sink, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.registry != nil {
		return b.registry.open(b.cfg, b.opts)
	}
	return newSink(b.cfg, b.opts)
}

// Config returns a copy of the configuration built so far.
func (b *Builder) Config() *Config {
	return b.cfg.Clone()
}

// Level sets the initial minimum level.
func (b *Builder) Level(level Level) *Builder {
	b.cfg.Level = int64(level)
	return b
}

// LevelString sets the initial minimum level from a string.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := ParseLevel(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = int64(levelVal)
	return b
}

// Directory sets the log directory.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// MaxSizeKB sets the maximum log file size in KiB.
func (b *Builder) MaxSizeKB(size int64) *Builder {
	b.cfg.MaxSizeKB = size
	return b
}

// MaxSizeMB sets the maximum log file size in MiB. Convenience.
func (b *Builder) MaxSizeMB(size int64) *Builder {
	b.cfg.MaxSizeKB = size * sizeMultiplier
	return b
}

// MaxFileCount sets how many numbered files are tried per day.
func (b *Builder) MaxFileCount(n int64) *Builder {
	b.cfg.MaxFileCount = n
	return b
}

// BufferThreshold sets the number of lines buffered before an automatic flush.
func (b *Builder) BufferThreshold(n int64) *Builder {
	b.cfg.BufferThreshold = n
	return b
}

// TimestampFormat sets the layout of the line timestamp.
func (b *Builder) TimestampFormat(format string) *Builder {
	b.cfg.TimestampFormat = format
	return b
}

// RotateOnFlush enables re-evaluating the target file before every flush.
func (b *Builder) RotateOnFlush(enable bool) *Builder {
	b.cfg.RotateOnFlush = enable
	return b
}

// ErrorWriter sets where internal diagnostics go. nil silences them.
func (b *Builder) ErrorWriter(w io.Writer) *Builder {
	b.opts.errWriter = w
	b.opts.errWriterSet = true
	return b
}

// Clock replaces time.Now for timestamps and rotation decisions.
func (b *Builder) Clock(now func() time.Time) *Builder {
	b.opts.now = now
	return b
}

// Registry opens the sink through r so the directory has a single owner.
func (b *Builder) Registry(r *Registry) *Builder {
	b.registry = r
	return b
}

// Example usage:
// sink, err := flatlog.NewBuilder().
//
//	Directory("/var/log/app").
//	LevelString("warning").
//	MaxSizeMB(5).
//	BufferThreshold(50).
//	Build()
//
// if err == nil {
//
//	 defer sink.Close()
//	 sink.Info("Sink initialized successfully")
//
// }
