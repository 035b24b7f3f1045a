package flatlog

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
)

// Registry hands out at most one open Sink per log directory. The host
// application creates one at startup, passes sinks to the components that
// need them and calls CloseAll during teardown.
type Registry struct {
	mu    sync.Mutex
	sinks map[string]*Sink
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{sinks: make(map[string]*Sink)}
}

// Open builds a Sink for cfg and records it as the owner of cfg.Directory.
// ErrDirectoryInUse is returned while a previous sink for the same directory is still open.
func (r *Registry) Open(cfg *Config) (*Sink, error) {
	return r.open(cfg, sinkOptions{})
}

func (r *Registry) open(cfg *Config, opts sinkOptions) (*Sink, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	key, err := directoryKey(cfg.Directory)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.sinks[key]; taken {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryInUse, key)
	}

	s, err := newSink(cfg, opts)
	if err != nil {
		return nil, err
	}
	s.release = func() { r.releaseSink(key, s) }
	r.sinks[key] = s
	return s, nil
}

// Lookup returns the open sink owning dir, if any
func (r *Registry) Lookup(dir string) (*Sink, bool) {
	key, err := directoryKey(dir)
	if err != nil {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sinks[key]
	return s, ok
}

// Directories lists the directories currently owned, sorted
func (r *Registry) Directories() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	dirs := make([]string, 0, len(r.sinks))
	for dir := range r.sinks {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// CloseAll closes every open sink, performing a final flush on each
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	sinks := make([]*Sink, 0, len(r.sinks))
	for _, s := range r.sinks {
		sinks = append(sinks, s)
	}
	r.mu.Unlock()

	var finalErr error
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			finalErr = combineErrors(finalErr, err)
		}
	}
	return finalErr
}

// releaseSink drops the claim if s still holds it
func (r *Registry) releaseSink(key string, s *Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sinks[key] == s {
		delete(r.sinks, key)
	}
}

// directoryKey normalizes a directory so different spellings share one owner
func directoryKey(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmtErrorf("failed to resolve log directory '%s': %w", dir, err)
	}
	return filepath.Clean(abs), nil
}
