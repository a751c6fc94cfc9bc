//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"chat-exchange/domain"
)

// Worker doesn't protect itself.
// Can be silly, focused. Supervision is the supervisor's job.
type Worker interface {
	Run(ctx context.Context) error
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// MessageIndexer receives every appended message for secondary indexing.
// Index failures are reported to the caller but must never block or undo
// the append itself.
type MessageIndexer interface {
	Add(message domain.Message) error
}

// MessageSearcher answers full-text queries over the indexed messages,
// newest-last. Results are raw matches: visibility filtering is the
// caller's responsibility.
type MessageSearcher interface {
	Search(ctx context.Context, terms string, limit int) ([]domain.Message, error)
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// lifecycle events, avoiding manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
