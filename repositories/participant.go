//go:generate go run go.uber.org/mock/mockgen -source=participant.go -destination=../mocks/mock_participant_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"chat-exchange/errors"
)

// IParticipantRepository is the presence directory: the source of truth for
// who is currently in the exchange. It has exclusive ownership of the
// participant entries; nothing else writes the "participant:" keyspace.
type IParticipantRepository interface {
	Register(name string, at time.Time) error
	Heartbeat(name string, at time.Time) error
	Find(name string) (DiskParticipant, error)
	List() ([]DiskParticipant, error)
	Evict(name string) (DiskParticipant, error)
}

type ParticipantRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewParticipantRepository(db *badger.DB, log *slog.Logger) ParticipantRepository {
	return ParticipantRepository{db: db, log: log}
}

// DiskParticipant is the stored representation of a directory entry.
type DiskParticipant struct {
	Name     string    `json:"name"`
	LastSeen time.Time `json:"last_seen"`
}

const participantPrefix = "participant:"

func participantKey(name string) []byte {
	return []byte(participantPrefix + name)
}

// Register inserts a new directory entry with LastSeen = at.
// Returns ErrAlreadyRegistered if the name is already a key. The existence
// check and the insert run in a single transaction, so two concurrent
// registrations of the same name cannot both succeed.
func (r ParticipantRepository) Register(name string, at time.Time) error {
	data, err := json.Marshal(DiskParticipant{Name: name, LastSeen: at})
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(participantKey(name)); err == nil {
			return errors.ErrAlreadyRegistered
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		return txn.Set(participantKey(name), data)
	})
}

// Heartbeat moves LastSeen forward for an existing entry.
// Returns ErrNotFound if the name is absent. Read and write share one
// transaction: a heartbeat racing an eviction either lands fully or conflicts
// and is reported, never a partial update.
func (r ParticipantRepository) Heartbeat(name string, at time.Time) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(participantKey(name))
		if err == badger.ErrKeyNotFound {
			return errors.ErrNotFound
		}
		if err != nil {
			return err
		}
		var stored DiskParticipant
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		}); err != nil {
			return err
		}
		stored.LastSeen = at
		data, err := json.Marshal(stored)
		if err != nil {
			return fmt.Errorf("marshal failed: %w", err)
		}
		return txn.Set(participantKey(name), data)
	})
}

// Find returns the entry for name, or ErrNotFound.
func (r ParticipantRepository) Find(name string) (DiskParticipant, error) {
	var stored DiskParticipant
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(participantKey(name))
		if err == badger.ErrKeyNotFound {
			return errors.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		})
	})
	return stored, err
}

// List returns a point-in-time snapshot of the whole directory.
// No ordering is guaranteed to callers.
func (r ParticipantRepository) List() ([]DiskParticipant, error) {
	var participants []DiskParticipant
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(participantPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var stored DiskParticipant
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &stored)
			})
			if err != nil {
				return err
			}
			participants = append(participants, stored)
		}
		return nil
	})
	return participants, err
}

// Evict removes the entry and returns it, or ErrNotFound if it is absent.
// Used by the presence reaper; the read-then-delete pair is transactional.
func (r ParticipantRepository) Evict(name string) (DiskParticipant, error) {
	var removed DiskParticipant
	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(participantKey(name))
		if err == badger.ErrKeyNotFound {
			return errors.ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &removed)
		}); err != nil {
			return err
		}
		return txn.Delete(participantKey(name))
	})
	return removed, err
}
