package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/blugelabs/bluge"
	blugesearch "github.com/blugelabs/bluge/search"
	"github.com/google/uuid"

	"chat-exchange/domain"
)

// MessageIndex is a full-text index over message bodies, backed by a bluge
// writer. Only the text field is analyzed; the rest of the message travels as
// stored fields so a hit can be rebuilt without going back to the log.
type MessageIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewMessageIndex(writer *bluge.Writer, log *slog.Logger) *MessageIndex {
	return &MessageIndex{
		writer: writer,
		log:    log.With(slog.String("component", "message_index")),
	}
}

// Add indexes a single message. The message ID is the document ID, so
// re-indexing the same message is an update, not a duplicate.
func (i *MessageIndex) Add(message domain.Message) error {
	doc := bluge.NewDocument(message.ID.String()).
		AddField(bluge.NewTextField("text", message.Text).StoreValue()).
		AddField(bluge.NewStoredOnlyField("from", []byte(message.From))).
		AddField(bluge.NewStoredOnlyField("to", []byte(message.To))).
		AddField(bluge.NewStoredOnlyField("kind", []byte(message.Kind))).
		AddField(bluge.NewStoredOnlyField("at", []byte(message.At.Format(time.RFC3339Nano))))

	if err := i.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("failed to index message %s: %w", message.ID, err)
	}
	return nil
}

// Search runs a match query against message bodies and returns up to limit
// hits, rebuilt from stored fields and ordered by time.
func (i *MessageIndex) Search(ctx context.Context, terms string, limit int) ([]domain.Message, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to open index reader: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			i.log.Warn("Failed to close index reader", slog.Any("error", err))
		}
	}()

	query := bluge.NewMatchQuery(terms).SetField("text")
	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	var messages []domain.Message
	for {
		match, err := iterator.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to iterate matches: %w", err)
		}
		if match == nil {
			break
		}

		message, err := fromStoredFields(match)
		if err != nil {
			i.log.Warn("Skipping unreadable match", slog.Any("error", err))
			continue
		}
		messages = append(messages, message)
	}

	sort.Slice(messages, func(a, b int) bool {
		return messages[a].At.Before(messages[b].At)
	})
	return messages, nil
}

func fromStoredFields(match *blugesearch.DocumentMatch) (domain.Message, error) {
	var message domain.Message
	var visitErr error

	err := match.VisitStoredFields(func(field string, value []byte) bool {
		switch field {
		case "_id":
			message.ID, visitErr = uuid.Parse(string(value))
		case "text":
			message.Text = string(value)
		case "from":
			message.From = string(value)
		case "to":
			message.To = string(value)
		case "kind":
			message.Kind = domain.Kind(value)
		case "at":
			message.At, visitErr = time.Parse(time.RFC3339Nano, string(value))
		}
		return visitErr == nil
	})
	if err != nil {
		return domain.Message{}, err
	}
	if visitErr != nil {
		return domain.Message{}, visitErr
	}
	return message, nil
}
