// Package domain contains core concepts of the chat exchange.
// This file defines Participant entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import "time"

// Participant is a named entity considered present in the exchange while its
// liveness has not expired. The name is unique and immutable after creation;
// LastSeen moves forward on registration and on every heartbeat.
type Participant struct {
	Name     string
	LastSeen time.Time
}

// Stale reports whether the participant has been silent for at least timeout.
// The boundary is inclusive: exactly timeout of silence is already stale.
func (p Participant) Stale(now time.Time, timeout time.Duration) bool {
	return now.Sub(p.LastSeen) >= timeout
}
