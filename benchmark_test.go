package flatlog

import (
	"testing"
)

func benchmarkSink(b *testing.B, mutate ...func(*Config)) *Sink {
	cfg := DefaultConfig()
	cfg.Directory = b.TempDir()
	cfg.InternalErrorsToStderr = false
	for _, m := range mutate {
		m(cfg)
	}
	sink, err := NewSink(cfg)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = sink.Close() })
	return sink
}

// BenchmarkSinkInfo benchmarks the performance of standard Info logging
func BenchmarkSinkInfo(b *testing.B) {
	sink := benchmarkSink(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink.Info("benchmark message")
	}
}

// BenchmarkSinkFields benchmarks logging with key/value fields
func BenchmarkSinkFields(b *testing.B) {
	sink := benchmarkSink(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink.Info("benchmark message", F("key", "value"), Any("i", i))
	}
}

// BenchmarkSinkFiltered benchmarks the cost of a record below the minimum level
func BenchmarkSinkFiltered(b *testing.B) {
	sink := benchmarkSink(b, func(c *Config) { c.Level = int64(LevelError) })

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink.Debug("dropped")
	}
}

// BenchmarkConcurrentLogging benchmarks the sink under concurrent load
func BenchmarkConcurrentLogging(b *testing.B) {
	sink := benchmarkSink(b)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			sink.Info("concurrent")
		}
	})
}
