// FILE: lixenwraith/flatlog/sink.go
package flatlog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/flatlog/formatter"
)

// Sink buffers formatted lines in memory and appends them to rotating files.
// All methods are safe for concurrent use. A Sink never returns I/O errors to
// callers of Record or Flush: the first failure disables it permanently and
// is reported once on the error writer.
type Sink struct {
	mu     sync.Mutex
	state  sinkState
	buffer [][]byte
	file   *activeFile
	path   string // last resolved path, kept when opening fails

	degraded atomic.Bool  // mirror of state != stateReady for lock-free checks
	minLevel atomic.Int32 // holds a Level

	cfg       *Config
	policy    RotationPolicy
	formatter *formatter.Formatter
	threshold int
	errWriter io.Writer
	now       clock
	openFile  func(path string) (logFile, error)

	stats   counters
	release func() // set by Registry, called once on Close
}

// sinkOptions carries collaborators the Builder can replace
type sinkOptions struct {
	errWriter    io.Writer
	errWriterSet bool
	now          clock
	openFile     func(path string) (logFile, error)
}

// NewSink creates the log directory, opens the file for today and returns a
// ready Sink. Filesystem failures do not produce an error: the returned Sink
// is degraded and discards everything. Only an invalid configuration is an error.
func NewSink(cfg *Config) (*Sink, error) {
	return newSink(cfg, sinkOptions{})
}

func newSink(cfg *Config, opts sinkOptions) (*Sink, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmtErrorf("invalid configuration: %w", err)
	}
	cfg = cfg.Clone()

	s := &Sink{
		cfg:       cfg,
		policy:    cfg.rotationPolicy(),
		formatter: formatter.New().TimestampFormat(cfg.TimestampFormat),
		threshold: int(cfg.BufferThreshold),
		now:       time.Now,
		openFile:  openLogFile,
	}
	s.minLevel.Store(int32(cfg.Level))
	s.buffer = make([][]byte, 0, s.threshold)

	switch {
	case opts.errWriterSet:
		s.errWriter = opts.errWriter
	case cfg.InternalErrorsToStderr:
		s.errWriter = os.Stderr
	}
	if opts.now != nil {
		s.now = opts.now
	}
	if opts.openFile != nil {
		s.openFile = opts.openFile
	}

	s.init()
	return s, nil
}

// init moves the sink from uninitialized to ready or degraded
func (s *Sink) init() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	path := s.policy.Resolve(now)

	if err := s.policy.EnsureDirectory(); err != nil {
		// Keep the intended target visible through CurrentFilePath
		s.path = path
		s.degradeLocked(err)
		return
	}

	if err := s.openLocked(path, now); err != nil {
		s.degradeLocked(err)
		return
	}

	s.state = stateReady
}

// openLocked opens path and makes it the active file
func (s *Sink) openLocked(path string, now time.Time) error {
	s.path = path

	f, err := s.openFile(path)
	if err != nil {
		return err
	}

	var size int64
	if fi, errStat := os.Stat(path); errStat == nil {
		size = fi.Size()
	}
	s.file = &activeFile{f: f, path: path, opened: now, size: size}
	return nil
}

// Record formats a record and buffers it. Records tagged LevelNone or
// LevelAll, records less urgent than the minimum level, and records arriving
// after the sink degraded are dropped silently. Reaching the buffer threshold
// flushes before returning.
func (s *Sink) Record(text string, level Level, fields []Field, origin Origin) {
	if !s.Enabled(level) {
		s.stats.RecordsFiltered.Add(1)
		return
	}

	line := s.formatter.Format(level.String(), s.now(), origin.String(), text, fields)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateReady {
		s.stats.RecordsFiltered.Add(1)
		return
	}

	s.buffer = append(s.buffer, line)
	s.stats.RecordsAccepted.Add(1)

	if len(s.buffer) >= s.threshold {
		s.flushLocked()
	}
}

// Enabled reports whether a record at level would currently be buffered
func (s *Sink) Enabled(level Level) bool {
	return level.emits() && level <= s.MinimumLevel() && !s.degraded.Load()
}

// Flush writes every buffered line to the active file and syncs it.
// An empty buffer performs no I/O.
func (s *Sink) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
}

// flushLocked drains the buffer. The buffer is empty afterwards whether or not the write succeeded.
func (s *Sink) flushLocked() {
	if len(s.buffer) == 0 {
		return
	}

	lines := s.buffer
	defer func() {
		clear(lines)
		s.buffer = lines[:0]
	}()

	if s.state != stateReady {
		s.stats.LinesDropped.Add(uint64(len(lines)))
		return
	}
	s.stats.Flushes.Add(1)

	if s.cfg.RotateOnFlush {
		if err := s.rotateIfNeededLocked(s.now()); err != nil {
			s.stats.LinesDropped.Add(uint64(len(lines)))
			s.degradeLocked(err)
			return
		}
	}

	for i, line := range lines {
		n, err := s.file.f.Write(line)
		s.file.size += int64(n)
		if err != nil {
			s.stats.LinesDropped.Add(uint64(len(lines) - i))
			s.degradeLocked(fmtErrorf("failed to write to log file '%s': %w", s.file.path, err))
			return
		}
		s.stats.LinesWritten.Add(1)
	}

	if err := s.file.f.Sync(); err != nil {
		s.degradeLocked(fmtErrorf("failed to sync log file '%s': %w", s.file.path, err))
	}
}

// rotateIfNeededLocked swaps the active file when the day changed or the size cap was reached
func (s *Sink) rotateIfNeededLocked(now time.Time) error {
	if !s.policy.NeedsRotation(s.file.opened, s.file.size, now) {
		return nil
	}

	old := s.file
	path := s.policy.Resolve(now)
	if path == old.path {
		// Every numbered file for the day is full; keep growing the fallback
		old.opened = now
		return nil
	}

	if err := s.openLocked(path, now); err != nil {
		s.file = old
		return fmtErrorf("failed to rotate log file: %w", err)
	}

	if err := old.f.Close(); err != nil {
		s.internalLog("warning - failed to close old log file '%s': %v\n", old.path, err)
	}
	s.stats.Rotations.Add(1)
	return nil
}

// degradeLocked latches the sink into the degraded state. Only the first call reports.
func (s *Sink) degradeLocked(err error) {
	if s.state == stateDegraded || s.state == stateClosed {
		return
	}
	s.state = stateDegraded
	s.degraded.Store(true)
	s.internalLog("%s\n", strings.TrimPrefix(err.Error(), "flatlog: "))
}

// SetMinimumLevel sets the least urgent level that is still recorded.
// LevelAll accepts every record, LevelNone rejects every record.
func (s *Sink) SetMinimumLevel(level Level) {
	s.minLevel.Store(int32(level))
}

// MinimumLevel returns the current filter value
func (s *Sink) MinimumLevel() Level {
	return Level(s.minLevel.Load())
}

// CurrentFilePath returns the path records are being appended to
func (s *Sink) CurrentFilePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil {
		return s.file.path
	}
	return s.path
}

// Degraded reports whether the sink has stopped writing, after a failure or Close
func (s *Sink) Degraded() bool {
	return s.degraded.Load()
}

// Stats returns a snapshot of the sink counters
func (s *Sink) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stats.snapshot()
	st.Buffered = len(s.buffer)
	st.Degraded = s.state != stateReady
	if s.file != nil {
		st.CurrentFile = s.file.path
	} else {
		st.CurrentFile = s.path
	}
	return st
}

// Close flushes pending lines, closes the active file and releases the
// directory claim held in a Registry. Later calls are no-ops.
func (s *Sink) Close() error {
	s.mu.Lock()
	if s.state == stateClosed {
		s.mu.Unlock()
		return nil
	}

	s.flushLocked()

	var finalErr error
	if s.file != nil {
		if err := s.file.f.Close(); err != nil {
			finalErr = fmtErrorf("failed to close log file '%s': %w", s.file.path, err)
		}
		s.file = nil
	}

	s.state = stateClosed
	s.degraded.Store(true)
	release := s.release
	s.release = nil
	s.mu.Unlock()

	if release != nil {
		release()
	}
	return finalErr
}

// internalLog handles writing internal sink diagnostics to the error writer, if any.
func (s *Sink) internalLog(format string, args ...any) {
	if s.errWriter == nil {
		return
	}

	// Ensure consistent "flatlog: " prefix
	if !strings.HasPrefix(format, "flatlog: ") {
		format = "flatlog: " + format
	}

	fmt.Fprintf(s.errWriter, format, args...)
}
