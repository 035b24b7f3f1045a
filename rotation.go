// FILE: rotation.go
package flatlog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"
)

// logFileNamePattern matches names produced by RotationPolicy.Resolve
var logFileNamePattern = regexp.MustCompile(`^log_\d{4}-\d{2}-\d{2}(_\d{3,})?\.txt$`)

// RotationPolicy maps a directory and a point in time to the file a new
// record should be appended to. Files are partitioned by day and capped by size.
type RotationPolicy struct {
	Directory    string
	MaxSize      int64 // bytes
	MaxFileCount int   // numbered suffixes tried per day
}

// NewRotationPolicy returns a policy with default limits for the directory
func NewRotationPolicy(dir string) RotationPolicy {
	return RotationPolicy{
		Directory:    dir,
		MaxSize:      DefaultMaxSizeKB * sizeMultiplier,
		MaxFileCount: DefaultMaxFileCount,
	}
}

// EnsureDirectory creates the log directory if it is absent
func (p RotationPolicy) EnsureDirectory() error {
	info, err := os.Stat(p.Directory)
	if err == nil {
		if !info.IsDir() {
			return fmtErrorf("log path '%s' exists and is not a directory", p.Directory)
		}
		return nil
	}
	if err := os.MkdirAll(p.Directory, dirPerm); err != nil {
		return fmtErrorf("failed to create log directory '%s': %w", p.Directory, err)
	}
	return nil
}

// Resolve returns the path for the day of now: the first log_DATE_NNN.txt
// that does not exist or is smaller than MaxSize. When every suffix is taken
// the unnumbered log_DATE.txt is returned and allowed to grow without bound.
func (p RotationPolicy) Resolve(now time.Time) string {
	stem := filePrefix + now.Format(fileDateLayout)
	for i := 0; i < p.MaxFileCount; i++ {
		candidate := filepath.Join(p.Directory, fmt.Sprintf("%s_%0*d%s", stem, sequenceDigits, i, fileExtension))
		info, err := os.Stat(candidate)
		if err != nil || info.Size() < p.MaxSize {
			return candidate
		}
	}
	return filepath.Join(p.Directory, stem+fileExtension)
}

// NeedsRotation reports whether a file opened at opened with size bytes
// written must be replaced before writing at now
func (p RotationPolicy) NeedsRotation(opened time.Time, size int64, now time.Time) bool {
	if !sameDay(opened, now) {
		return true
	}
	return p.MaxSize > 0 && size >= p.MaxSize
}

// ListFiles returns the log files in the directory, oldest name first
func (p RotationPolicy) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(p.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmtErrorf("failed to read log directory '%s': %w", p.Directory, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !logFileNamePattern.MatchString(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(p.Directory, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// openLogFile opens path for appending, creating it if needed
func openLogFile(path string) (logFile, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return nil, fmtErrorf("failed to open/create log file '%s': %w", path, err)
	}
	return file, nil
}
