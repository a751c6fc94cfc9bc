package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKind_Valid(t *testing.T) {
	req := require.New(t)

	req.True(KindBroadcast.Valid())
	req.True(KindPrivate.Valid())
	req.True(KindStatus.Valid())

	req.False(Kind("").Valid())
	req.False(Kind("Broadcast").Valid()) // case-sensitive
	req.False(Kind("dm").Valid())
}

func TestNewJoinNotice_And_LeaveNotice(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	join := NewJoinNotice("Alice", at)
	req.Equal("Alice", join.From)
	req.Equal(RecipientAll, join.To)
	req.Equal(JoinedText, join.Text)
	req.Equal(KindStatus, join.Kind)
	req.Equal(at, join.At)
	req.NotEmpty(join.ID)

	leave := NewLeaveNotice("Alice", at)
	req.Equal(LeftText, leave.Text)
	req.Equal(KindStatus, leave.Kind)
	req.NotEqual(join.ID, leave.ID)
}

func TestParticipant_Stale_Boundary(t *testing.T) {
	req := require.New(t)
	now := time.Now().UTC()
	timeout := 10 * time.Second

	fresh := Participant{Name: "Alice", LastSeen: now.Add(-timeout + time.Millisecond)}
	req.False(fresh.Stale(now, timeout))

	exactly := Participant{Name: "Bob", LastSeen: now.Add(-timeout)}
	req.True(exactly.Stale(now, timeout))

	old := Participant{Name: "Carol", LastSeen: now.Add(-timeout - time.Millisecond)}
	req.True(old.Stale(now, timeout))
}
