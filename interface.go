// FILE: lixenwraith/flatlog/interface.go
package flatlog

// Sink methods for logging at each level, capturing the caller as origin.

// Log records text at level with the caller as origin
func (s *Sink) Log(level Level, text string, fields ...Field) {
	if !s.Enabled(level) {
		s.stats.RecordsFiltered.Add(1)
		return
	}
	s.Record(text, level, fields, Caller(1))
}

// Fatal records a fatal message and flushes immediately.
// It does not terminate the process.
func (s *Sink) Fatal(text string, fields ...Field) {
	if s.Enabled(LevelFatal) {
		s.Record(text, LevelFatal, fields, Caller(1))
	}
	s.Flush()
}

// Error logs a message at error level
func (s *Sink) Error(text string, fields ...Field) {
	s.logAt(LevelError, text, fields)
}

// Warning logs a message at warning level
func (s *Sink) Warning(text string, fields ...Field) {
	s.logAt(LevelWarning, text, fields)
}

// Info logs a message at info level
func (s *Sink) Info(text string, fields ...Field) {
	s.logAt(LevelInfo, text, fields)
}

// Debug logs a message at debug level
func (s *Sink) Debug(text string, fields ...Field) {
	s.logAt(LevelDebug, text, fields)
}

// Trace logs a message at trace level
func (s *Sink) Trace(text string, fields ...Field) {
	s.logAt(LevelTrace, text, fields)
}

// logAt is shared by the level methods; the origin is two frames up
func (s *Sink) logAt(level Level, text string, fields []Field) {
	if !s.Enabled(level) {
		s.stats.RecordsFiltered.Add(1)
		return
	}
	s.Record(text, level, fields, Caller(2))
}
