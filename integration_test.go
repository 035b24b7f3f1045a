// FILE: lixenwraith/flatlog/integration_test.go
package flatlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullLifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(t.TempDir(), "app.toml")
	content := fmt.Sprintf("[flatlog]\nlevel = 5\ndirectory = %q\nmax_size_kb = 1\nbuffer_threshold = 10\n", tmpDir)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := NewConfigFromFile(configPath)
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyOverride("internal_errors_to_stderr=false"))

	reg := NewRegistry()
	sink, err := reg.Open(cfg)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, reg.CloseAll(), "registry teardown should be clean")
	}()

	sink.Debug("debug message")
	sink.Info("info message", F("user", "alice"))
	sink.Warning("warning message")
	sink.Error("error message", Any("attempt", 2))
	sink.Trace("trace is filtered at debug")

	// Runtime level change
	sink.SetMinimumLevel(LevelError)
	sink.Info("filtered after level change")
	sink.Error("still recorded")

	// Enough volume to force several rotations at a 1 KiB cap
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				sink.Error(fmt.Sprintf("load %d/%d", g, i))
			}
		}(g)
	}
	wg.Wait()
	sink.Flush()

	lines := readLogLines(t, tmpDir)
	assert.Len(t, lines, 5+100)

	var joined strings.Builder
	for _, line := range lines {
		joined.WriteString(line)
		joined.WriteByte('\n')
	}
	all := joined.String()
	assert.Contains(t, all, "| info message | user = alice")
	assert.Contains(t, all, "| error message | attempt = 2")
	assert.NotContains(t, all, "trace is filtered")
	assert.NotContains(t, all, "filtered after level change")

	files, err := NewRotationPolicy(tmpDir).ListFiles()
	require.NoError(t, err)
	assert.Greater(t, len(files), 1, "a 1 KiB cap should produce several files")

	st := sink.Stats()
	assert.False(t, st.Degraded)
	assert.Equal(t, uint64(105), st.LinesWritten)
	assert.Equal(t, uint64(2), st.RecordsFiltered)
}

func TestTwoSinksIndependent(t *testing.T) {
	a, dirA, _ := createTestSink(t)
	b, dirB, _ := createTestSink(t, func(c *Config) { c.Level = int64(LevelError) })

	a.Info("a info")
	b.Info("b info")
	b.Error("b error")
	a.Flush()
	b.Flush()

	assert.Len(t, readLogLines(t, dirA), 1)
	linesB := readLogLines(t, dirB)
	require.Len(t, linesB, 1)
	assert.True(t, strings.HasPrefix(linesB[0], "[Error] "))
}
