//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// IMessageRepository is the append-only message log. Records are immutable
// once stored; there is no update or single-record delete path.
type IMessageRepository interface {
	Append(message DiskMessage) (DiskMessage, error)
	Snapshot() ([]DiskMessage, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

// DiskMessage is the stored representation of a log record.
type DiskMessage struct {
	ID   uuid.UUID `json:"id"`
	From string    `json:"from"`
	To   string    `json:"to"`
	Text string    `json:"text"`
	Kind string    `json:"kind"`
	At   time.Time `json:"at"`
}

const messagePrefix = "msg:"

// messageKey is formatted as "msg:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order equals time order).
//  2. Keep two messages appended in the same nanosecond from colliding,
//     with the UUID acting as the tiebreaker.
func messageKey(message DiskMessage) []byte {
	return []byte(fmt.Sprintf("%s%019d:%s", messagePrefix, message.At.UnixNano(), message.ID))
}

// Append stores the record at the end of the log and returns it as stored.
// A zero ID or timestamp is filled in here so the key is always complete;
// validation of the record's content is the caller's concern.
func (m MessageRepository) Append(message DiskMessage) (DiskMessage, error) {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.At.IsZero() {
		message.At = time.Now().UTC()
	}
	data, err := json.Marshal(message)
	if err != nil {
		return DiskMessage{}, fmt.Errorf("marshal failed: %w", err)
	}
	err = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(messageKey(message), data)
	})
	if err != nil {
		return DiskMessage{}, err
	}
	return message, nil
}

// Snapshot returns a full point-in-time copy of the log in append order.
// Thanks to the padded timestamp in the key, a forward prefix scan yields
// the records already time-ordered.
func (m MessageRepository) Snapshot() ([]DiskMessage, error) {
	var messages []DiskMessage
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(messagePrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var stored DiskMessage
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &stored)
			})
			if err != nil {
				return err
			}
			messages = append(messages, stored)
		}
		return nil
	})
	return messages, err
}
