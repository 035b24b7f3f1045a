package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/flatlog"
)

// heartbeat writes the sink's own counters into the log at a fixed interval
func heartbeat(sink *flatlog.Sink, interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			st := sink.Stats()
			sink.Info("heartbeat",
				flatlog.Any("accepted", st.RecordsAccepted),
				flatlog.Any("filtered", st.RecordsFiltered),
				flatlog.Any("written", st.LinesWritten),
				flatlog.Any("flushes", st.Flushes),
				flatlog.Any("rotations", st.Rotations),
				flatlog.F("file", st.CurrentFile),
			)
			// Heartbeats are meant to be visible promptly
			sink.Flush()
		}
	}
}

func main() {
	cfg := flatlog.DefaultConfig()
	if err := cfg.ApplyOverride(
		"directory=./logs",
		"level=debug",
		"max_size_kb=64",
	); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	sink, err := flatlog.NewSink(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open sink: %v\n", err)
		os.Exit(1)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go heartbeat(sink, time.Second, stop, done)

	// Generate some logs to move the counters
	for j := 0; j < 50; j++ {
		sink.Debug("Debug test log", flatlog.Any("iteration", j))
		sink.Info("Info test log", flatlog.Any("iteration", j))
		sink.Warning("Warning test log", flatlog.Any("iteration", j))
		sink.Error("Error test log", flatlog.Any("iteration", j))
		sink.Trace("Filtered at debug", flatlog.Any("iteration", j))
		time.Sleep(100 * time.Millisecond)
	}

	close(stop)
	<-done

	if err := sink.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to close sink: %v\n", err)
	}

	fmt.Println("Heartbeat program completed successfully")
	fmt.Println("Check logs directory for generated log files")
}
