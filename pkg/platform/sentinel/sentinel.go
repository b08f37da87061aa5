package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and collaborator adapters
// return these (optionally wrapped) so the engine can translate them into its
// fail-closed system-failure policy.
//
// These represent factual states about resources, not validation outcomes:
// validation failures are values on ValidationResult, never Go errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")

	// ErrDuplicateTransaction rejects a batch whose result map would lose an
	// entry to a repeated transaction id.
	ErrDuplicateTransaction = errors.New("duplicate transaction id")
)
