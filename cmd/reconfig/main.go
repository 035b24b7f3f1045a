package main

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/flatlog"
)

// Change the minimum level rapidly while other goroutines log
func main() {
	var attempted atomic.Int64

	sink, err := flatlog.NewBuilder().
		Directory("./reconfig_logs").
		BufferThreshold(50).
		Build()
	if err != nil {
		fmt.Printf("Initial build error: %v\n", err)
		return
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup

	// Log something constantly at every level
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-stop:
					return
				default:
				}
				lvl := flatlog.Level(i%6 + 1)
				sink.Log(lvl, "Test log", flatlog.Any("worker", w), flatlog.Any("i", i))
				attempted.Add(1)
				time.Sleep(time.Millisecond)
			}
		}(w)
	}

	// Trigger multiple level changes rapidly
	for i := 0; i < 20; i++ {
		next := flatlog.Level(i % 8)
		sink.SetMinimumLevel(next)
		// Minimal delay between changes
		time.Sleep(10 * time.Millisecond)
	}

	close(stop)
	wg.Wait()

	if err := sink.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Close error: %v\n", err)
	}

	st := sink.Stats()
	fmt.Printf("Total logs attempted: %d\n", attempted.Load())
	fmt.Printf("Accepted: %d, filtered: %d, written: %d, dropped: %d\n",
		st.RecordsAccepted, st.RecordsFiltered, st.LinesWritten, st.LinesDropped)
	if st.RecordsAccepted != st.LinesWritten {
		fmt.Println("Inconsistency: accepted records were not all written")
	}
}
