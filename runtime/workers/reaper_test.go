package workers

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-exchange/domain"
	"chat-exchange/errors"
	"chat-exchange/mocks"
	"chat-exchange/observability"
	"chat-exchange/repositories"
)

const (
	testTimeout  = 10 * time.Second
	testInterval = 15 * time.Second
)

type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStubClock() *stubClock {
	return &stubClock{now: time.Now().UTC()}
}

func (c *stubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestReaper(t *testing.T) (*PresenceReaper, repositories.ParticipantRepository, repositories.MessageRepository, *stubClock) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	participants := repositories.NewParticipantRepository(db, slog.Default())
	messages := repositories.NewMessageRepository(db, slog.Default())
	clock := newStubClock()
	reaper := NewPresenceReaper(participants, messages, nil, clock,
		observability.NewExchangeStats(), slog.Default(), testTimeout, testInterval)
	return reaper, participants, messages, clock
}

func TestReaper_Evicts_Stale_Participant_With_Notice(t *testing.T) {
	req := require.New(t)
	reaper, participants, messages, clock := newTestReaper(t)

	req.NoError(participants.Register("Alice", clock.Now()))
	clock.Advance(testTimeout + time.Second)

	reaper.sweep()

	_, err := participants.Find("Alice")
	req.ErrorIs(err, errors.ErrNotFound)

	log, err := messages.Snapshot()
	req.NoError(err)
	req.Len(log, 1)
	req.Equal("Alice", log[0].From)
	req.Equal(domain.RecipientAll, log[0].To)
	req.Equal(domain.LeftText, log[0].Text)
	req.Equal(string(domain.KindStatus), log[0].Kind)
}

func TestReaper_Fresh_Participant_Survives(t *testing.T) {
	req := require.New(t)
	reaper, participants, messages, clock := newTestReaper(t)

	req.NoError(participants.Register("Alice", clock.Now()))
	clock.Advance(testTimeout - time.Second)

	reaper.sweep()

	_, err := participants.Find("Alice")
	req.NoError(err)

	log, err := messages.Snapshot()
	req.NoError(err)
	req.Empty(log)
}

func TestReaper_Heartbeat_Before_Sweep_Prevents_Eviction(t *testing.T) {
	req := require.New(t)
	reaper, participants, messages, clock := newTestReaper(t)

	req.NoError(participants.Register("Alice", clock.Now()))
	clock.Advance(testTimeout + time.Second)

	// The heartbeat commits before the sweep reads the directory.
	req.NoError(participants.Heartbeat("Alice", clock.Now()))

	reaper.sweep()

	_, err := participants.Find("Alice")
	req.NoError(err)

	log, err := messages.Snapshot()
	req.NoError(err)
	req.Empty(log)
}

func TestReaper_Skips_Nameless_Entry(t *testing.T) {
	req := require.New(t)
	reaper, participants, messages, clock := newTestReaper(t)

	// A partially-constructed record: the directory holds it, but it has no
	// name. The sweep must skip it without failing.
	req.NoError(participants.Register("", clock.Now()))
	req.NoError(participants.Register("Alice", clock.Now()))
	clock.Advance(testTimeout + time.Second)

	reaper.sweep()

	log, err := messages.Snapshot()
	req.NoError(err)
	req.Len(log, 1)
	req.Equal("Alice", log[0].From)
}

func TestReaper_One_Failure_Does_Not_Abort_Sweep(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	participants := mocks.NewMockIParticipantRepository(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)
	clock := newStubClock()
	stale := clock.Now().Add(-testTimeout - time.Second)

	participants.EXPECT().List().Return([]repositories.DiskParticipant{
		{Name: "Alice", LastSeen: stale},
		{Name: "Bob", LastSeen: stale},
	}, nil)

	// Alice's eviction blows up; Bob must still be processed.
	participants.EXPECT().Evict("Alice").Return(repositories.DiskParticipant{}, fmt.Errorf("io failure"))
	participants.EXPECT().Evict("Bob").Return(repositories.DiskParticipant{Name: "Bob", LastSeen: stale}, nil)
	messages.EXPECT().Append(gomock.Any()).DoAndReturn(func(m repositories.DiskMessage) (repositories.DiskMessage, error) {
		req.Equal("Bob", m.From)
		return m, nil
	})

	reaper := NewPresenceReaper(participants, messages, nil, clock,
		observability.NewExchangeStats(), slog.Default(), testTimeout, testInterval)
	reaper.sweep()
}

func TestReaper_Notice_Failure_Keeps_Eviction(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	participants := mocks.NewMockIParticipantRepository(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)
	clock := newStubClock()
	stale := clock.Now().Add(-testTimeout - time.Second)

	participants.EXPECT().List().Return([]repositories.DiskParticipant{
		{Name: "Alice", LastSeen: stale},
	}, nil)
	participants.EXPECT().Evict("Alice").Return(repositories.DiskParticipant{Name: "Alice", LastSeen: stale}, nil)
	messages.EXPECT().Append(gomock.Any()).Return(repositories.DiskMessage{}, fmt.Errorf("log unavailable"))

	stats := observability.NewExchangeStats()
	reaper := NewPresenceReaper(participants, messages, nil, clock,
		stats, slog.Default(), testTimeout, testInterval)
	reaper.sweep()

	// The eviction stands even though the departure notice was lost.
	snapshot := stats.Snapshot()
	req.EqualValues(uint64(1), snapshot["evictions"])
	req.EqualValues(uint64(0), snapshot["messages"])
}
