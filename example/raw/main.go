// FILE: example/raw/main.go
package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/flatlog"
	"github.com/lixenwraith/flatlog/sanitizer"
)

// TestPayload defines a struct for testing complex type rendering.
type TestPayload struct {
	RequestID uint64
	User      string
	Metrics   map[string]float64
}

func main() {
	fmt.Println("--- Sink Value Rendering Test ---")

	// A byte slice with special characters (newline, tab, null)
	byteRecord := []byte("binary\ndata\twith\x00null")

	// A struct containing a uint64, a string, and a map
	structRecord := TestPayload{
		RequestID: 9223372036854775807,
		User:      "test_user",
		Metrics: map[string]float64{
			"latency_ms":  15.7,
			"cpu_percent": 88.2,
		},
	}

	// --- 1. Show how values are rendered before sanitizing ---
	fmt.Println("\n[1] Stringify output")
	fmt.Printf("bytes:  %s\n", sanitizer.Stringify(byteRecord))
	fmt.Printf("struct: %s\n", sanitizer.Stringify(structRecord))

	// --- 2. Show the sanitizer policies side by side ---
	fmt.Println("\n[2] Sanitizer policies")
	text := string(byteRecord)
	fmt.Printf("raw:    %q\n", sanitizer.New().Policy(sanitizer.PolicyRaw).Sanitize(text))
	fmt.Printf("txt:    %q\n", sanitizer.New().Policy(sanitizer.PolicyTxt).Sanitize(text))
	fmt.Printf("inline: %q\n", sanitizer.New().Policy(sanitizer.PolicyInline).Sanitize(text))

	// --- 3. Write both through a sink: each record stays on one line ---
	fmt.Println("\n[3] Writing records through a sink")
	sink, err := flatlog.NewBuilder().
		Directory("./raw_logs").
		Build()
	if err != nil {
		fmt.Printf("Failed to build sink: %v\n", err)
		return
	}

	sink.Info(text, flatlog.Any("kind", "bytes"))
	sink.Info("Struct Record", flatlog.Any("payload", structRecord))
	path := sink.CurrentFilePath()
	if err := sink.Close(); err != nil {
		fmt.Printf("Close error: %v\n", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to read %s: %v\n", path, err)
		return
	}
	fmt.Print(string(content))

	fmt.Println("\n--- Test Complete ---")
}
