package ports

import "context"

// AuditPublisher receives one event per verdict. Implementations decide the
// sink (in-memory store, Kafka); a publish failure never changes the verdict,
// it is logged and counted by the caller.
type AuditPublisher interface {
	PublishVerdict(ctx context.Context, event VerdictEvent) error
}

// VerdictEvent is the audit-facing summary of a validation outcome.
type VerdictEvent struct {
	TransactionID string
	AccountID     string
	Valid         bool
	RiskScore     float64
	RiskLevel     string
	ErrorCodes    []string
	WarningCodes  []string
}
