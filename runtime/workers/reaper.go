package workers

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"chat-exchange/contract"
	"chat-exchange/domain"
	"chat-exchange/errors"
	"chat-exchange/observability"
	"chat-exchange/repositories"
)

// PresenceReaper periodically scans the participant directory, evicts every
// participant past the liveness deadline, and appends a departure notice to
// the message log for each eviction. Each participant is processed
// independently: failing one never aborts the sweep for the others.
type PresenceReaper struct {
	participants  repositories.IParticipantRepository
	messages      repositories.IMessageRepository
	indexer       contract.MessageIndexer
	clock         domain.Clock
	stats         *observability.ExchangeStats
	log           *slog.Logger
	timeout       time.Duration
	sweepInterval time.Duration
}

func NewPresenceReaper(
	participants repositories.IParticipantRepository,
	messages repositories.IMessageRepository,
	indexer contract.MessageIndexer,
	clock domain.Clock,
	stats *observability.ExchangeStats,
	log *slog.Logger,
	timeout, sweepInterval time.Duration,
) *PresenceReaper {
	return &PresenceReaper{
		participants:  participants,
		messages:      messages,
		indexer:       indexer,
		clock:         clock,
		stats:         stats,
		log:           log,
		timeout:       timeout,
		sweepInterval: sweepInterval,
	}
}

// Run executes the sweep loop until the context is canceled. Sweep failures
// are logged and the loop keeps going: the worst case is that presence stops
// advancing for one period, never a crash.
func (w *PresenceReaper) Run(ctx context.Context) error {
	w.log.Info("Starting presence reaper",
		"liveness_timeout", w.timeout, "sweep_interval", w.sweepInterval)
	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.sweep()
		}
	}
}

// sweep takes a snapshot of the directory and evicts every stale entry.
// The eviction commits first; the departure notice follows. If appending the
// notice fails the eviction still stands and the loss is only logged.
func (w *PresenceReaper) sweep() {
	now := w.clock.Now()

	snapshot, err := w.participants.List()
	if err != nil {
		w.log.Error("Sweep aborted, directory snapshot failed", "error", err)
		return
	}
	w.stats.AddSweep()

	for _, p := range snapshot {
		// Guard against partially-constructed records.
		if p.Name == "" {
			w.log.Warn("Skipping directory entry without a name")
			continue
		}
		stale := domain.Participant{Name: p.Name, LastSeen: p.LastSeen}
		if !stale.Stale(now, w.timeout) {
			continue
		}

		evicted, err := w.participants.Evict(p.Name)
		if stderrors.Is(err, errors.ErrNotFound) {
			// Already gone, nothing to announce.
			continue
		}
		if err != nil {
			w.log.Error("Eviction failed", "participant", p.Name, "error", err)
			continue
		}

		w.stats.AddEviction()
		w.log.Info("Participant evicted",
			"participant", evicted.Name, "last_seen", evicted.LastSeen)
		w.announceDeparture(evicted.Name, now)
	}
}

func (w *PresenceReaper) announceDeparture(name string, at time.Time) {
	notice := domain.NewLeaveNotice(name, at)
	stored, err := w.messages.Append(repositories.DiskMessage{
		ID:   notice.ID,
		From: notice.From,
		To:   notice.To,
		Text: notice.Text,
		Kind: string(notice.Kind),
		At:   notice.At,
	})
	if err != nil {
		// The eviction stands; only the notice is lost.
		w.log.Error("Departure notice lost", "participant", name, "error", err)
		return
	}
	w.stats.AddMessage()

	if w.indexer != nil {
		if err := w.indexer.Add(notice); err != nil {
			w.log.Warn("Departure notice not indexed", "id", stored.ID, "error", err)
		}
	}
}
