// FILE: example/reconfig/main.go
package main

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/flatlog"
)

// Reopen a directory repeatedly through a registry while a writer keeps logging
func main() {
	var count atomic.Int64

	reg := flatlog.NewRegistry()
	defer reg.CloseAll()

	cfg := flatlog.DefaultConfig()
	cfg.Directory = "./reconfig_logs"

	sink, err := reg.Open(cfg)
	if err != nil {
		fmt.Printf("Initial open error: %v\n", err)
		return
	}

	// A second owner for the same directory is refused
	if _, err := reg.Open(cfg); errors.Is(err, flatlog.ErrDirectoryInUse) {
		fmt.Printf("Second open refused: %v\n", err)
	}

	// Replace the sink with a new one using a different threshold each time
	var current atomic.Pointer[flatlog.Sink]
	current.Store(sink)

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			current.Load().Info("Test log", flatlog.Any("i", i))
			count.Add(1)
			time.Sleep(time.Millisecond)
		}
	}()

	for i := 0; i < 10; i++ {
		old := current.Load()
		if err := old.Close(); err != nil {
			fmt.Printf("Close error: %v\n", err)
		}

		next := cfg.Clone()
		next.BufferThreshold = int64(10 * (i + 1))
		s, err := reg.Open(next)
		if err != nil {
			fmt.Printf("Reopen error: %v\n", err)
			break
		}
		current.Store(s)
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	close(stop)
	<-done

	// Records sent to a closed sink in the swap window are discarded silently
	fmt.Printf("Total logs attempted: %d\n", count.Load())
	fmt.Printf("Directories still owned: %v\n", reg.Directories())
}
