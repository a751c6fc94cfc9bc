// Package projection builds local views over the message log.
// It selects and bounds what a given viewer may see.
// It never mutates the log and holds no state of its own.
package projection

import "chat-exchange/domain"

// Visible selects, preserving input order, the subset of messages a viewer
// may see: broadcasts and status notices are public, private messages only
// reach their sender and their recipient.
func Visible(messages []domain.Message, viewer string) []domain.Message {
	var out []domain.Message
	for _, m := range messages {
		if canSee(m, viewer) {
			out = append(out, m)
		}
	}
	return out
}

func canSee(m domain.Message, viewer string) bool {
	switch m.Kind {
	case domain.KindBroadcast, domain.KindStatus:
		return true
	case domain.KindPrivate:
		return m.To == viewer || m.From == viewer
	}
	// Unknown kinds stay hidden rather than leaking to everyone.
	return false
}

// MostRecent bounds messages to the last n entries, keeping chronological
// order. n <= 0 means no bound.
func MostRecent(messages []domain.Message, n int) []domain.Message {
	if n <= 0 || len(messages) <= n {
		return messages
	}
	return messages[len(messages)-n:]
}
