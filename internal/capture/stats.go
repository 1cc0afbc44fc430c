package capture

import (
	"sync/atomic"
)

// Stats collects lightweight in-process capture counters for the stats
// endpoint, independent of the OpenTelemetry pipeline.
// All methods are safe for concurrent use.
type Stats struct {
	packetsCaptured atomic.Uint64
	decodeErrors    atomic.Uint64
	lastCapturedUnixNano atomic.Int64
}

// NewStats creates a new capture statistics collector.
func NewStats() *Stats {
	return &Stats{}
}

// RecordCapture records a captured packet, whether or not storing it succeeded.
func (s *Stats) RecordCapture(unixNano int64) {
	s.packetsCaptured.Add(1)
	s.lastCapturedUnixNano.Store(unixNano)
}

// RecordDecodeError records a packet that failed to decode.
func (s *Stats) RecordDecodeError() {
	s.decodeErrors.Add(1)
}

// StatsSnapshot is a point-in-time snapshot of capture statistics.
type StatsSnapshot struct {
	PacketsCaptured    uint64
	DecodeErrors       uint64
	LastCapturedUnixNano int64
}

// Snapshot returns the current statistics.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		PacketsCaptured:      s.packetsCaptured.Load(),
		DecodeErrors:         s.decodeErrors.Load(),
		LastCapturedUnixNano: s.lastCapturedUnixNano.Load(),
	}
}
