package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chat-exchange/domain"
)

func messages() []domain.Message {
	at := time.Now().UTC()
	return []domain.Message{
		{From: "Y", To: domain.RecipientAll, Text: "hello everyone", Kind: domain.KindBroadcast, At: at},
		{From: "Y", To: "X", Text: "secret", Kind: domain.KindPrivate, At: at.Add(time.Second)},
		{From: "Z", To: domain.RecipientAll, Text: domain.JoinedText, Kind: domain.KindStatus, At: at.Add(2 * time.Second)},
	}
}

func TestVisible_Outsider_Sees_Public_Only(t *testing.T) {
	req := require.New(t)

	visible := Visible(messages(), "V")

	req.Len(visible, 2)
	req.Equal(domain.KindBroadcast, visible[0].Kind)
	req.Equal(domain.KindStatus, visible[1].Kind)
}

func TestVisible_Recipient_And_Sender_See_Private(t *testing.T) {
	req := require.New(t)
	all := messages()

	req.Len(Visible(all, "X"), 3)
	req.Len(Visible(all, "Y"), 3)
}

func TestVisible_Preserves_Order(t *testing.T) {
	req := require.New(t)

	visible := Visible(messages(), "X")

	for i := 1; i < len(visible); i++ {
		req.False(visible[i].At.Before(visible[i-1].At))
	}
}

func TestVisible_Unknown_Kind_Is_Hidden(t *testing.T) {
	req := require.New(t)
	odd := []domain.Message{{From: "A", To: domain.RecipientAll, Text: "?", Kind: domain.Kind("mystery")}}

	req.Empty(Visible(odd, "A"))
}

func TestMostRecent_Bounds_To_Last_N(t *testing.T) {
	req := require.New(t)
	all := messages()

	bounded := MostRecent(all, 2)
	req.Len(bounded, 2)
	req.Equal(all[1], bounded[0])
	req.Equal(all[2], bounded[1])

	// No bound for zero, negative, or oversized limits.
	req.Len(MostRecent(all, 0), 3)
	req.Len(MostRecent(all, -5), 3)
	req.Len(MostRecent(all, 10), 3)
}
