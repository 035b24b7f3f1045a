package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lixenwraith/flatlog"
)

const (
	totalBursts    = 100
	logsPerBurst   = 500
	maxMessageSize = 10000
	numWorkers     = 500
)

const configFile = "stress_config.toml"

// Example TOML content for stress test
var tomlContent = `
# Example stress_config.toml
[flatlog]
  level = 5 # Debug
  directory = "./logs"
  max_size_kb = 1024 # Force frequent rotation (1MiB)
  max_file_count = 50
  buffer_threshold = 200
`

var levels = []flatlog.Level{
	flatlog.LevelDebug,
	flatlog.LevelInfo,
	flatlog.LevelWarning,
	flatlog.LevelError,
}

var sink *flatlog.Sink

func generateRandomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst simulates a burst of logging activity
func logBurst(burstID int) {
	for i := 0; i < logsPerBurst; i++ {
		level := levels[rand.Intn(len(levels))]
		msgSize := rand.Intn(maxMessageSize) + 10
		sink.Log(level, generateRandomMessage(msgSize),
			flatlog.Any("wkr", burstID%numWorkers),
			flatlog.Any("bst", burstID),
			flatlog.Any("seq", i),
			flatlog.Any("rnd", rand.Int63()),
		)
	}
}

// worker goroutine function
func worker(burstChan chan int, wg *sync.WaitGroup, completedBursts *atomic.Int64) {
	defer wg.Done()
	for burstID := range burstChan {
		logBurst(burstID)
		completed := completedBursts.Add(1)
		if completed%10 == 0 || completed == totalBursts {
			fmt.Printf("\rProgress: %d/%d bursts completed", completed, totalBursts)
		}
	}
}

func main() {
	fmt.Println("--- Sink Stress Test ---")

	// --- Setup Config ---
	err := os.WriteFile(configFile, []byte(tomlContent), 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created dummy config file: %s\n", configFile)

	cfg, err := flatlog.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v.\n", err)
		os.Exit(1)
	}
	_ = os.RemoveAll(cfg.Directory) // Clean previous run's logs before starting

	// --- Open Sink ---
	sink, err = flatlog.NewSink(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open sink: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Sink opened. Logs will be written to: %s\n", cfg.Directory)

	fmt.Printf("Starting stress test: %d workers, %d bursts, %d logs/burst.\n",
		numWorkers, totalBursts, logsPerBurst)
	fmt.Println("Check log directory for numbered file rotation.")
	fmt.Println("Press Ctrl+C to stop early.")

	// --- Setup Workers and Signal Handling ---
	burstChan := make(chan int, numWorkers)
	var wg sync.WaitGroup
	completedBursts := atomic.Int64{}
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	stopChan := make(chan struct{})

	go func() {
		<-sigChan
		fmt.Println("\n[Signal Received] Stopping burst generation...")
		close(stopChan)
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker(burstChan, &wg, &completedBursts)
	}

	// --- Run Test ---
	startTime := time.Now()
	for i := 1; i <= totalBursts; i++ {
		select {
		case burstChan <- i:
		case <-stopChan:
			fmt.Println("[Signal Received] Halting burst submission.")
			goto endLoop
		}
	}
endLoop:
	close(burstChan)

	fmt.Println("\nWaiting for workers to finish...")
	wg.Wait()
	duration := time.Since(startTime)
	finalCompleted := completedBursts.Load()

	fmt.Printf("\n--- Test Finished ---")
	fmt.Printf("\nCompleted %d/%d bursts in %v\n", finalCompleted, totalBursts, duration.Round(time.Millisecond))
	if finalCompleted > 0 && duration.Seconds() > 0 {
		logsPerSec := float64(finalCompleted*logsPerBurst) / duration.Seconds()
		fmt.Printf("Approximate Logs/sec: %.2f\n", logsPerSec)
	}

	// --- Close Sink ---
	if err := sink.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Sink close error: %v\n", err)
	}

	st := sink.Stats()
	fmt.Printf("Lines written: %d, dropped: %d, flushes: %d, rotations: %d, degraded: %v\n",
		st.LinesWritten, st.LinesDropped, st.Flushes, st.Rotations, st.LinesDropped > 0)

	files, err := flatlog.NewRotationPolicy(cfg.Directory).ListFiles()
	if err == nil {
		fmt.Printf("%d log files in '%s'.\n", len(files), cfg.Directory)
	}
}
