// Package domain contains core concepts of the chat exchange.
// This file defines Message events and related rules.
// Messages are immutable and append-only once stored.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the closed, case-sensitive set of message categories.
type Kind string

const (
	// KindBroadcast is public chat, visible to everyone.
	KindBroadcast Kind = "broadcast"
	// KindPrivate is directed chat, visible only to sender and recipient.
	KindPrivate Kind = "private"
	// KindStatus marks system-generated arrival/departure notices.
	KindStatus Kind = "status"
)

// RecipientAll is the reserved broadcast recipient meaning "all participants".
// No real participant may register under this name.
const RecipientAll = "all"

// Texts of the system notices emitted on arrival and departure.
const (
	JoinedText = "joins the exchange"
	LeftText   = "leaves the exchange"
)

// Valid reports whether k belongs to the recognized set of kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindBroadcast, KindPrivate, KindStatus:
		return true
	}
	return false
}

// Message represents an immutable chat event. Once appended to the log it is
// never edited and never deleted by normal operation.
type Message struct {
	ID   uuid.UUID
	From string
	To   string
	Text string
	Kind Kind
	At   time.Time
}

// NewJoinNotice builds the status message announcing a participant's arrival.
func NewJoinNotice(name string, at time.Time) Message {
	return Message{
		ID:   uuid.New(),
		From: name,
		To:   RecipientAll,
		Text: JoinedText,
		Kind: KindStatus,
		At:   at,
	}
}

// NewLeaveNotice builds the status message announcing a participant's departure.
func NewLeaveNotice(name string, at time.Time) Message {
	return Message{
		ID:   uuid.New(),
		From: name,
		To:   RecipientAll,
		Text: LeftText,
		Kind: KindStatus,
		At:   at,
	}
}
