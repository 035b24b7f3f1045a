package compat

import (
	"bufio"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/flatlog"
)

// createTestCompatBuilder creates a standard setup for compatibility adapter tests
func createTestCompatBuilder(t *testing.T) (*Builder, *flatlog.Sink, string) {
	t.Helper()
	tmpDir := t.TempDir()
	sink, err := flatlog.NewBuilder().
		Directory(tmpDir).
		LevelString("trace").
		ErrorWriter(nil).
		Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sink.Close() })

	builder := NewBuilder().WithSink(sink)
	return builder, sink, tmpDir
}

// readLogFile flushes the sink and returns the lines of its active file
func readLogFile(t *testing.T, sink *flatlog.Sink) []string {
	t.Helper()
	sink.Flush()

	f, err := os.Open(sink.CurrentFilePath())
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}

// splitLine breaks a line into its " | " separated parts
func splitLine(line string) []string {
	return strings.Split(line, " | ")
}

// TestCompatBuilder verifies the compatibility builder can be initialized correctly
func TestCompatBuilder(t *testing.T) {
	t.Run("with existing sink", func(t *testing.T) {
		builder, sink, _ := createTestCompatBuilder(t)

		gnetAdapter, err := builder.BuildGnet()
		require.NoError(t, err)
		assert.Same(t, sink, gnetAdapter.sink)
	})

	t.Run("nil sink", func(t *testing.T) {
		_, err := NewBuilder().WithSink(nil).BuildFastHTTP()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be nil")
	})

	t.Run("with config and registry", func(t *testing.T) {
		cfg := flatlog.DefaultConfig()
		cfg.Directory = t.TempDir()
		cfg.InternalErrorsToStderr = false
		reg := flatlog.NewRegistry()
		defer reg.CloseAll()

		builder := NewBuilder().WithConfig(cfg).WithRegistry(reg)
		fasthttpAdapter, err := builder.BuildFastHTTP()
		require.NoError(t, err)

		gnetAdapter, err := builder.BuildGnet()
		require.NoError(t, err)
		assert.Same(t, fasthttpAdapter.sink, gnetAdapter.sink, "builder caches the opened sink")

		owned, ok := reg.Lookup(cfg.Directory)
		require.True(t, ok)
		assert.Same(t, owned, gnetAdapter.sink)
	})
}

// TestGnetAdapter tests the gnet adapter's logging output and format
func TestGnetAdapter(t *testing.T) {
	builder, sink, _ := createTestCompatBuilder(t)

	var fatalMsg string
	adapter, err := builder.BuildGnet(WithFatalHandler(func(msg string) {
		fatalMsg = msg
	}))
	require.NoError(t, err)

	adapter.Debugf("gnet debug id=%d", 1)
	adapter.Infof("gnet info id=%d", 2)
	adapter.Warnf("gnet warn id=%d", 3)
	adapter.Errorf("gnet error id=%d", 4)
	adapter.Fatalf("gnet fatal id=%d", 5)

	// Fatalf flushes on its own
	assert.Equal(t, 0, sink.Stats().Buffered)
	assert.Equal(t, "gnet fatal id=5", fatalMsg)

	lines := readLogFile(t, sink)
	expected := []struct{ level, msg string }{
		{"[Debug]", "gnet debug id=1"},
		{"[Info]", "gnet info id=2"},
		{"[Warning]", "gnet warn id=3"},
		{"[Error]", "gnet error id=4"},
		{"[Fatal]", "gnet fatal id=5"},
	}
	require.Len(t, lines, len(expected))

	for i, line := range lines {
		parts := splitLine(line)
		require.Len(t, parts, 4, "line %q", line)
		assert.True(t, strings.HasPrefix(parts[0], expected[i].level), line)
		assert.True(t, strings.HasPrefix(parts[1], "compat_test.go:TestGnetAdapter:"), "origin is the adapter caller: %s", parts[1])
		assert.Equal(t, expected[i].msg, parts[2])
		assert.Equal(t, "source = gnet", parts[3])
	}
}

// TestGnetAdapterRespectsLevel checks filtered levels are not formatted or written
func TestGnetAdapterRespectsLevel(t *testing.T) {
	builder, sink, _ := createTestCompatBuilder(t)
	sink.SetMinimumLevel(flatlog.LevelWarning)

	adapter, err := builder.BuildGnet()
	require.NoError(t, err)

	adapter.Debugf("hidden")
	adapter.Infof("hidden")
	adapter.Warnf("shown")

	lines := readLogFile(t, sink)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "| shown |")
}

// TestStructuredGnetAdapter tests the gnet adapter with structured field extraction
func TestStructuredGnetAdapter(t *testing.T) {
	builder, sink, _ := createTestCompatBuilder(t)

	adapter, err := builder.BuildStructuredGnet()
	require.NoError(t, err)

	adapter.Infof("request served status=%d client_ip=%s", 200, "127.0.0.1")
	adapter.Warnf("conn %s closed code=%d", "c1", 7)

	lines := readLogFile(t, sink)
	require.Len(t, lines, 2)

	parts := splitLine(lines[0])
	require.Len(t, parts, 6, "line %q", lines[0])
	assert.True(t, strings.HasPrefix(parts[0], "[Info]"))
	assert.True(t, strings.HasPrefix(parts[1], "compat_test.go:TestStructuredGnetAdapter:"))
	assert.Equal(t, "request served", parts[2])
	assert.Equal(t, "status = 200", parts[3])
	assert.Equal(t, "client_ip = 127.0.0.1", parts[4])
	assert.Equal(t, "source = gnet", parts[5])

	// A verb outside a key=value pair keeps the whole formatted message
	parts = splitLine(lines[1])
	require.Len(t, parts, 4, "line %q", lines[1])
	assert.Equal(t, "conn c1 closed code=7", parts[2])
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		args       []any
		wantMsg    string
		wantFields []flatlog.Field
	}{
		{
			name:    "plain message",
			format:  "listening on %s",
			args:    []any{":9000"},
			wantMsg: "listening on :9000",
		},
		{
			name:       "pairs with prefix",
			format:     "accepted fd=%d addr: %s",
			args:       []any{12, "10.0.0.1"},
			wantMsg:    "accepted",
			wantFields: []flatlog.Field{flatlog.F("fd", "12"), flatlog.F("addr", "10.0.0.1")},
		},
		{
			name:       "trailing text",
			format:     "loop=%d stopped",
			args:       []any{3},
			wantMsg:    "stopped",
			wantFields: []flatlog.Field{flatlog.F("loop", "3")},
		},
		{
			name:    "argument count mismatch",
			format:  "id=%d",
			args:    []any{1, 2},
			wantMsg: "id=1%!(EXTRA int=2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, fields := parseFormat(tt.format, tt.args)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

// TestFastHTTPAdapter tests the fasthttp adapter's logging output and level detection
func TestFastHTTPAdapter(t *testing.T) {
	builder, sink, _ := createTestCompatBuilder(t)

	adapter, err := builder.BuildFastHTTP()
	require.NoError(t, err)

	testMessages := []string{
		"this is some informational message",
		"a debug message for the developers",
		"warning: something might be wrong",
		"an error occurred while processing",
	}
	for _, msg := range testMessages {
		adapter.Printf("%s", msg)
	}

	lines := readLogFile(t, sink)
	expectedLevels := []string{"[Info]", "[Debug]", "[Warning]", "[Error]"}
	require.Len(t, lines, 4, "Should have 4 fasthttp log lines")

	for i, line := range lines {
		parts := splitLine(line)
		require.Len(t, parts, 4, "line %q", line)
		assert.True(t, strings.HasPrefix(parts[0], expectedLevels[i]), line)
		assert.True(t, strings.HasPrefix(parts[1], "compat_test.go:TestFastHTTPAdapter:"), parts[1])
		assert.Equal(t, testMessages[i], parts[2])
		assert.Equal(t, "source = fasthttp", parts[3])
	}
}

func TestFastHTTPAdapterOptions(t *testing.T) {
	builder, sink, _ := createTestCompatBuilder(t)

	adapter, err := builder.BuildFastHTTP(
		WithDefaultLevel(flatlog.LevelDebug),
		WithLevelDetector(func(msg string) flatlog.Level {
			if strings.HasPrefix(msg, "!") {
				return flatlog.LevelFatal
			}
			return flatlog.LevelNone
		}),
	)
	require.NoError(t, err)

	adapter.Printf("routine %d", 1)
	adapter.Printf("!urgent")

	lines := readLogFile(t, sink)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "[Debug] "))
	assert.True(t, strings.HasPrefix(lines[1], "[Fatal] "))
}

func TestDetectLogLevel(t *testing.T) {
	tests := []struct {
		msg  string
		want flatlog.Level
	}{
		{"connection failed", flatlog.LevelError},
		{"PANIC recovered", flatlog.LevelError},
		{"deprecated header", flatlog.LevelWarning},
		{"debug dump", flatlog.LevelDebug},
		{"trace id", flatlog.LevelTrace},
		{"served request", flatlog.LevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLogLevel(tt.msg))
		})
	}
}
