package audit

import (
	"context"
	"errors"
)

// ErrInboxFull is returned when the channel publisher cannot enqueue without
// blocking the validation path.
var ErrInboxFull = errors.New("audit inbox full")

// Worker consumes audit events from a channel and persists them. It keeps
// background processing testable without wiring queue implementations into
// the engine.
type Worker struct {
	store Store
	inbox <-chan Event
}

func NewWorker(store Store, inbox <-chan Event) *Worker {
	return &Worker{store: store, inbox: inbox}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
		}
	}
}
