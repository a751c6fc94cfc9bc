// Package observability aggregates runtime counters of the exchange.
package observability

import (
	"sync/atomic"
	"time"
)

// ExchangeStats counts the significant events of the exchange since start.
// All counters are atomic; readers get a point-in-time view via Snapshot.
type ExchangeStats struct {
	Registered uint64
	Heartbeats uint64
	Messages   uint64
	Evictions  uint64
	Sweeps     uint64
	startedAt  time.Time
}

func NewExchangeStats() *ExchangeStats {
	return &ExchangeStats{startedAt: time.Now().UTC()}
}

func (s *ExchangeStats) AddRegistered() { atomic.AddUint64(&s.Registered, 1) }
func (s *ExchangeStats) AddHeartbeat()  { atomic.AddUint64(&s.Heartbeats, 1) }
func (s *ExchangeStats) AddMessage()    { atomic.AddUint64(&s.Messages, 1) }
func (s *ExchangeStats) AddEviction()   { atomic.AddUint64(&s.Evictions, 1) }
func (s *ExchangeStats) AddSweep()      { atomic.AddUint64(&s.Sweeps, 1) }

// Snapshot returns the current counters in a form the debug server and the
// telemetry worker can render directly.
func (s *ExchangeStats) Snapshot() map[string]any {
	return map[string]any{
		"registered": atomic.LoadUint64(&s.Registered),
		"heartbeats": atomic.LoadUint64(&s.Heartbeats),
		"messages":   atomic.LoadUint64(&s.Messages),
		"evictions":  atomic.LoadUint64(&s.Evictions),
		"sweeps":     atomic.LoadUint64(&s.Sweeps),
		"uptime":     time.Since(s.startedAt).Round(time.Second).String(),
	}
}
