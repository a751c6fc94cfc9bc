//go:generate go run go.uber.org/mock/mockgen -source=exchange_service.go -destination=../mocks/mock_exchange_service.go -package=mocks
package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/abadojack/whatlanggo"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"chat-exchange/contract"
	"chat-exchange/domain"
	"chat-exchange/errors"
	"chat-exchange/moderation"
	"chat-exchange/observability"
	"chat-exchange/projection"
	"chat-exchange/repositories"
)

var validate = validator.New()

// RegisterRequest is the validation gate for participant registration.
type RegisterRequest struct {
	Name string `validate:"required"`
}

// PostMessageRequest is the validation gate for posting a message.
type PostMessageRequest struct {
	To   string `validate:"required"`
	Text string `validate:"required"`
	Kind string `validate:"required,oneof=broadcast private status"`
}

// IExchangeService is the façade the transport layer talks to. Outcomes are
// typed sentinel errors, never opaque failures: ErrInvalidInput,
// ErrAlreadyRegistered, ErrUnknownSender, ErrNotFound.
type IExchangeService interface {
	RegisterParticipant(name string) error
	ListParticipants() ([]domain.Participant, error)
	Heartbeat(name string) error
	PostMessage(from string, req PostMessageRequest) (domain.Message, error)
	ListMessages(viewer string, limit int) ([]domain.Message, error)
	SearchMessages(ctx context.Context, viewer, terms string, limit int) ([]domain.Message, error)
}

type ExchangeService struct {
	participants repositories.IParticipantRepository
	messages     repositories.IMessageRepository
	indexer      contract.MessageIndexer
	searcher     contract.MessageSearcher
	moderator    *moderation.Moderator
	clock        domain.Clock
	stats        *observability.ExchangeStats
	log          *slog.Logger
}

// NewExchangeService wires the façade. indexer, searcher, and moderator may
// be nil: indexing and moderation then silently turn off, searching reports
// an error.
func NewExchangeService(
	participants repositories.IParticipantRepository,
	messages repositories.IMessageRepository,
	indexer contract.MessageIndexer,
	searcher contract.MessageSearcher,
	moderator *moderation.Moderator,
	clock domain.Clock,
	stats *observability.ExchangeStats,
	log *slog.Logger,
) *ExchangeService {
	return &ExchangeService{
		participants: participants,
		messages:     messages,
		indexer:      indexer,
		searcher:     searcher,
		moderator:    moderator,
		clock:        clock,
		stats:        stats,
		log:          log,
	}
}

// RegisterParticipant adds a new name to the directory and announces the
// arrival with a status message. The announcement follows the registration:
// if it cannot be appended, the registration stands and the loss is logged.
func (s *ExchangeService) RegisterParticipant(name string) error {
	if err := validate.Struct(RegisterRequest{Name: name}); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	if name == domain.RecipientAll {
		return fmt.Errorf("%w: %q is a reserved identity", errors.ErrInvalidInput, name)
	}

	now := s.clock.Now()
	if err := s.participants.Register(name, now); err != nil {
		return err // propagates ErrAlreadyRegistered
	}
	s.stats.AddRegistered()
	s.log.Info("Participant registered", "participant", name)

	s.appendNotice(domain.NewJoinNotice(name, now))
	return nil
}

// ListParticipants returns a point-in-time snapshot of the directory.
func (s *ExchangeService) ListParticipants() ([]domain.Participant, error) {
	snapshot, err := s.participants.List()
	if err != nil {
		return nil, err
	}
	return fromDiskParticipants(snapshot), nil
}

// Heartbeat refreshes the caller's liveness deadline.
func (s *ExchangeService) Heartbeat(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", errors.ErrInvalidInput)
	}
	if err := s.participants.Heartbeat(name, s.clock.Now()); err != nil {
		return err // propagates ErrNotFound
	}
	s.stats.AddHeartbeat()
	return nil
}

// PostMessage validates, moderates, and appends a user message. The sender
// must be present in the directory at post time.
func (s *ExchangeService) PostMessage(from string, req PostMessageRequest) (domain.Message, error) {
	if from == "" {
		return domain.Message{}, fmt.Errorf("%w: sender is required", errors.ErrInvalidInput)
	}
	if err := validate.Struct(req); err != nil {
		return domain.Message{}, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	kind := domain.Kind(req.Kind)
	if !kind.Valid() {
		return domain.Message{}, fmt.Errorf("%w: unrecognized kind %q", errors.ErrInvalidInput, req.Kind)
	}

	if _, err := s.participants.Find(from); err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return domain.Message{}, fmt.Errorf("%w: %s", errors.ErrUnknownSender, from)
		}
		return domain.Message{}, err
	}

	message := domain.Message{
		ID:   uuid.New(),
		From: from,
		To:   req.To,
		Text: s.moderate(kind, req.Text),
		Kind: kind,
		At:   s.clock.Now(),
	}
	stored, err := s.messages.Append(toDiskMessage(message))
	if err != nil {
		return domain.Message{}, err
	}
	s.stats.AddMessage()
	s.index(message)
	return fromDiskMessage(stored), nil
}

// ListMessages returns the messages visible to the viewer, oldest first.
// A positive limit bounds the result to the most recent N visible records.
func (s *ExchangeService) ListMessages(viewer string, limit int) ([]domain.Message, error) {
	if viewer == "" {
		return nil, fmt.Errorf("%w: viewer is required", errors.ErrInvalidInput)
	}
	snapshot, err := s.messages.Snapshot()
	if err != nil {
		return nil, err
	}
	visible := projection.Visible(fromDiskMessages(snapshot), viewer)
	return projection.MostRecent(visible, limit), nil
}

// SearchMessages runs a full-text query over the index and re-filters the
// matches through the visibility rules, so private messages never leak
// through search. Filtering after the fact may return fewer than limit hits.
func (s *ExchangeService) SearchMessages(ctx context.Context, viewer, terms string, limit int) ([]domain.Message, error) {
	if viewer == "" || terms == "" {
		return nil, fmt.Errorf("%w: viewer and query are required", errors.ErrInvalidInput)
	}
	if s.searcher == nil {
		return nil, fmt.Errorf("search index not configured")
	}
	matches, err := s.searcher.Search(ctx, terms, searchFetchSize(limit))
	if err != nil {
		return nil, err
	}
	return projection.MostRecent(projection.Visible(matches, viewer), limit), nil
}

// appendNotice stores and indexes a system status message. Failures are
// logged, never surfaced: the state change being announced already happened.
func (s *ExchangeService) appendNotice(notice domain.Message) {
	if _, err := s.messages.Append(toDiskMessage(notice)); err != nil {
		s.log.Error("Status notice lost", "participant", notice.From, "error", err)
		return
	}
	s.stats.AddMessage()
	s.index(notice)
}

// moderate censors user text. Status notices are system-generated and pass
// through untouched.
func (s *ExchangeService) moderate(kind domain.Kind, text string) string {
	if s.moderator == nil || kind == domain.KindStatus {
		return text
	}
	sanitized, found := s.moderator.Censor(text)
	if found > 0 {
		lang := whatlanggo.Detect(text)
		s.log.Info("Message censored", "spans", found, "lang", lang.Lang.Iso6391())
	}
	return sanitized
}

func (s *ExchangeService) index(message domain.Message) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.Add(message); err != nil {
		s.log.Warn("Message not indexed", "id", message.ID, "error", err)
	}
}

// searchFetchSize over-fetches so that visibility filtering still has enough
// candidates to fill the requested page.
func searchFetchSize(limit int) int {
	const minFetch = 50
	if limit*2 > minFetch {
		return limit * 2
	}
	return minFetch
}
