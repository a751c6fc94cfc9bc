package search

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"chat-exchange/domain"
)

func openTestIndex(t *testing.T) *MessageIndex {
	t.Helper()
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, writer.Close())
	})
	return NewMessageIndex(writer, slog.Default())
}

func message(from, to, text string, kind domain.Kind, at time.Time) domain.Message {
	return domain.Message{ID: uuid.New(), From: from, To: to, Text: text, Kind: kind, At: at}
}

func TestMessageIndex_Search_Matches_Body(t *testing.T) {
	req := require.New(t)
	index := openTestIndex(t)
	now := time.Now().UTC().Truncate(time.Millisecond)

	req.NoError(index.Add(message("Alice", domain.RecipientAll, "deploy the new build", domain.KindBroadcast, now)))
	req.NoError(index.Add(message("Bob", domain.RecipientAll, "lunch anyone", domain.KindBroadcast, now.Add(time.Second))))
	req.NoError(index.Add(message("Carol", "Alice", "deploy is broken", domain.KindPrivate, now.Add(2*time.Second))))

	matches, err := index.Search(context.Background(), "deploy", 10)
	req.NoError(err)
	req.Len(matches, 2)

	// Hits come back in time order regardless of score.
	req.Equal("Alice", matches[0].From)
	req.Equal("Carol", matches[1].From)
	req.Equal(domain.KindPrivate, matches[1].Kind)
	req.Equal("Alice", matches[1].To)
	req.Equal(now.Add(2*time.Second), matches[1].At)
}

func TestMessageIndex_Search_Honors_Limit(t *testing.T) {
	req := require.New(t)
	index := openTestIndex(t)
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		req.NoError(index.Add(message("Alice", domain.RecipientAll, "status update", domain.KindBroadcast,
			now.Add(time.Duration(i)*time.Second))))
	}

	matches, err := index.Search(context.Background(), "status", 3)
	req.NoError(err)
	req.Len(matches, 3)
}

func TestMessageIndex_Add_Is_Idempotent_Per_ID(t *testing.T) {
	req := require.New(t)
	index := openTestIndex(t)

	m := message("Alice", domain.RecipientAll, "one of a kind", domain.KindBroadcast, time.Now().UTC())
	req.NoError(index.Add(m))
	m.Text = "one of a kind, edited"
	req.NoError(index.Add(m))

	matches, err := index.Search(context.Background(), "kind", 10)
	req.NoError(err)
	req.Len(matches, 1)
	req.Equal("one of a kind, edited", matches[0].Text)
}

func TestMessageIndex_Search_No_Match(t *testing.T) {
	req := require.New(t)
	index := openTestIndex(t)

	req.NoError(index.Add(message("Alice", domain.RecipientAll, "hello", domain.KindBroadcast, time.Now().UTC())))

	matches, err := index.Search(context.Background(), "absent", 10)
	req.NoError(err)
	req.Empty(matches)
}
