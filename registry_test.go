// FILE: lixenwraith/flatlog/registry_test.go
package flatlog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registryConfig(dir string) *Config {
	cfg := DefaultConfig()
	cfg.Directory = dir
	cfg.InternalErrorsToStderr = false
	return cfg
}

func TestRegistryOpen(t *testing.T) {
	reg := NewRegistry()
	dir := t.TempDir()

	sink, err := reg.Open(registryConfig(dir))
	require.NoError(t, err)
	require.NotNil(t, sink)

	got, ok := reg.Lookup(dir)
	assert.True(t, ok)
	assert.Same(t, sink, got)

	// A different spelling of the same directory is the same owner
	_, err = reg.Open(registryConfig(filepath.Join(dir, "sub", "..")))
	assert.ErrorIs(t, err, ErrDirectoryInUse)

	require.NoError(t, sink.Close())
	_, ok = reg.Lookup(dir)
	assert.False(t, ok, "close releases the directory")

	reopened, err := reg.Open(registryConfig(dir))
	require.NoError(t, err)
	assert.NotSame(t, sink, reopened)
	require.NoError(t, reopened.Close())
}

func TestRegistryOpenErrors(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Open(nil)
	assert.ErrorIs(t, err, ErrNilConfig)

	cfg := registryConfig(t.TempDir())
	cfg.MaxSizeKB = 0
	_, err = reg.Open(cfg)
	require.Error(t, err)
	assert.Empty(t, reg.Directories(), "failed open does not claim the directory")
}

func TestRegistryIndependentDirectories(t *testing.T) {
	reg := NewRegistry()
	dirA := t.TempDir()
	dirB := t.TempDir()

	a, err := reg.Open(registryConfig(dirA))
	require.NoError(t, err)
	b, err := reg.Open(registryConfig(dirB))
	require.NoError(t, err)

	a.Info("to a")
	b.Info("to b")
	b.Info("to b again")

	assert.Len(t, reg.Directories(), 2)
	require.NoError(t, reg.CloseAll())
	assert.Empty(t, reg.Directories())

	assert.Len(t, readLogLines(t, dirA), 1)
	assert.Len(t, readLogLines(t, dirB), 2)
	assert.True(t, a.Degraded())
	assert.True(t, b.Degraded())
}

func TestRegistryConcurrentOpen(t *testing.T) {
	reg := NewRegistry()
	dir := t.TempDir()

	const contenders = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	var winners []*Sink

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := reg.Open(registryConfig(dir))
			if err != nil {
				assert.ErrorIs(t, err, ErrDirectoryInUse)
				return
			}
			mu.Lock()
			winners = append(winners, s)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, winners, 1)
	require.NoError(t, reg.CloseAll())
}

func TestRegistryLookupMissing(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Lookup(filepath.Join(os.TempDir(), "never-opened"))
	assert.False(t, ok)
}
