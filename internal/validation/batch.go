package validation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"riskgate/pkg/platform/sentinel"
)

// BatchHook runs once before a batch is validated. It is a seam for shared
// collaborator lookups (warming caches, batched account fetches); the default
// is a no-op. Returning an error aborts the whole batch.
type BatchHook func(ctx context.Context, reqs []*TransactionRequest, base *ValidationContext) error

// ValidateBatch validates every transaction against a shared base context.
// Each transaction gets an independent clone of the base context, so flags
// set while evaluating one transaction never leak into its siblings.
//
// Transactions are validated concurrently up to the configured bound; the
// only ordering guarantee is one result per input, keyed by transaction id.
// Two transactions sharing an id make the batch fail with
// sentinel.ErrDuplicateTransaction rather than silently dropping a result.
func (s *Service) ValidateBatch(ctx context.Context, reqs []*TransactionRequest, base *ValidationContext) (map[string]*ValidationResult, error) {
	ctx, span := tracer.Start(ctx, "validation.ValidateBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("batch.size", len(reqs)))

	s.metrics.ObserveBatchSize(len(reqs))

	// Assign ids up front so duplicate detection and result keying see the
	// same ids the per-transaction validation will use.
	prepared := make([]*TransactionRequest, len(reqs))
	seen := make(map[string]struct{}, len(reqs))
	for i, req := range reqs {
		if req == nil {
			return nil, fmt.Errorf("transaction at index %d is nil", i)
		}
		if req.TransactionID == "" {
			withID := *req
			withID.TransactionID = uuid.NewString()
			req = &withID
		}
		if _, dup := seen[req.TransactionID]; dup {
			return nil, fmt.Errorf("%w: %s", sentinel.ErrDuplicateTransaction, req.TransactionID)
		}
		seen[req.TransactionID] = struct{}{}
		prepared[i] = req
	}

	if s.batchHook != nil {
		if err := s.batchHook(ctx, prepared, base); err != nil {
			return nil, fmt.Errorf("batch pre-processing: %w", err)
		}
	}

	results := make(map[string]*ValidationResult, len(prepared))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.BatchConcurrency)

	for _, req := range prepared {
		g.Go(func() error {
			result, err := s.Validate(gctx, req, base.Clone())
			if err != nil {
				return fmt.Errorf("validate %s: %w", req.TransactionID, err)
			}
			mu.Lock()
			results[req.TransactionID] = result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// IsDuplicateTransaction reports whether a batch error was caused by a
// repeated transaction id.
func IsDuplicateTransaction(err error) bool {
	return errors.Is(err, sentinel.ErrDuplicateTransaction)
}
