// FILE: state.go
package flatlog

import (
	"sync/atomic"
)

// sinkState is the lifecycle position of a Sink.
// Transitions happen only while holding Sink.mu.
type sinkState int32

const (
	stateUninitialized sinkState = iota
	stateReady
	stateDegraded
	stateClosed
)

func (s sinkState) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateReady:
		return "ready"
	case stateDegraded:
		return "degraded"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// counters encapsulates the runtime statistics of a sink
type counters struct {
	RecordsAccepted atomic.Uint64 // Records appended to the buffer
	RecordsFiltered atomic.Uint64 // Records rejected by level, sentinel or state
	LinesWritten    atomic.Uint64 // Lines handed to the file successfully
	LinesDropped    atomic.Uint64 // Lines discarded by a failed flush
	Flushes         atomic.Uint64 // Non-empty flushes attempted
	Rotations       atomic.Uint64 // Times the active file was replaced
}

// Stats is a point-in-time copy of the sink counters
type Stats struct {
	RecordsAccepted uint64
	RecordsFiltered uint64
	LinesWritten    uint64
	LinesDropped    uint64
	Flushes         uint64
	Rotations       uint64
	Buffered        int
	Degraded        bool
	CurrentFile     string
}

func (c *counters) snapshot() Stats {
	return Stats{
		RecordsAccepted: c.RecordsAccepted.Load(),
		RecordsFiltered: c.RecordsFiltered.Load(),
		LinesWritten:    c.LinesWritten.Load(),
		LinesDropped:    c.LinesDropped.Load(),
		Flushes:         c.Flushes.Load(),
		Rotations:       c.Rotations.Load(),
	}
}
