package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"riskgate/internal/validation/ports"
)

// Publisher writes verdict events to a store synchronously. It implements
// ports.AuditPublisher; the engine treats publishing as fail-open, so a store
// error surfaces to the caller's logs without changing the verdict.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) PublishVerdict(ctx context.Context, verdict ports.VerdictEvent) error {
	return p.store.Append(ctx, fromVerdict(verdict))
}

// ChannelPublisher hands verdict events to a background Worker over a
// channel. Publishing never blocks the validation path: when the inbox is
// full the event is dropped and the error reported to the caller.
type ChannelPublisher struct {
	inbox chan<- Event
}

func NewChannelPublisher(inbox chan<- Event) *ChannelPublisher {
	return &ChannelPublisher{inbox: inbox}
}

func (p *ChannelPublisher) PublishVerdict(ctx context.Context, verdict ports.VerdictEvent) error {
	event := fromVerdict(verdict)
	select {
	case p.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrInboxFull
	}
}

func fromVerdict(verdict ports.VerdictEvent) Event {
	return Event{
		ID:            uuid.NewString(),
		TransactionID: verdict.TransactionID,
		AccountID:     verdict.AccountID,
		Valid:         verdict.Valid,
		RiskScore:     verdict.RiskScore,
		RiskLevel:     verdict.RiskLevel,
		ErrorCodes:    verdict.ErrorCodes,
		WarningCodes:  verdict.WarningCodes,
		Timestamp:     time.Now().UTC(),
	}
}
