package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/flatlog"
)

const configFile = "simple_config.toml"

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[flatlog]
  level = 5 # Debug
  directory = "./simple_logs"
  buffer_threshold = 10
  # Other settings use defaults
`

func main() {
	fmt.Println("--- Simple Sink Example ---")

	// --- Setup Config ---
	err := os.WriteFile(configFile, []byte(tomlContent), 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
		// Continue with defaults
	} else {
		fmt.Printf("Created dummy config file: %s\n", configFile)
	}

	cfg, err := flatlog.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Command-line style overrides on top of the file
	if len(os.Args) > 1 {
		if err := cfg.ApplyOverride(os.Args[1:]...); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid override: %v\n", err)
			os.Exit(1)
		}
	}

	// --- Open Sink ---
	reg := flatlog.NewRegistry()
	sink, err := reg.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open sink: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Sink writing to %s\n", sink.CurrentFilePath())

	// --- Logging ---
	sink.Debug("This is a debug message.", flatlog.Any("user_id", 123))
	sink.Info("Application starting...")
	sink.Warning("Potential issue detected.", flatlog.Any("threshold", 0.95))
	sink.Error("An error occurred!", flatlog.Any("code", 500))
	sink.Trace("Not written at debug level.")

	// Logging from goroutines
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			sink.Info("Goroutine started", flatlog.Any("id", id))
			time.Sleep(time.Duration(50+id*50) * time.Millisecond)
			sink.Info("Goroutine finished", flatlog.Any("id", id))
		}(i)
	}

	wg.Wait()
	fmt.Println("Goroutines finished.")

	// --- Close ---
	st := sink.Stats()
	fmt.Printf("Accepted %d, filtered %d, buffered %d\n", st.RecordsAccepted, st.RecordsFiltered, st.Buffered)

	if err := reg.CloseAll(); err != nil {
		fmt.Fprintf(os.Stderr, "Sink close error: %v\n", err)
	} else {
		fmt.Println("Sink closed.")
	}

	fmt.Println("--- Example Finished ---")
	fmt.Printf("Check log files in '%s'.\n", cfg.Directory)
}
