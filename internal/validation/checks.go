package validation

import (
	"context"
	"fmt"
)

// Check category names, used for metrics labels and log attrs.
const (
	categoryAmount        = "amount"
	categoryAccounts      = "accounts"
	categoryVelocity      = "velocity"
	categoryBusinessRules = "business_rules"
	categoryAML           = "aml"
	categoryFraud         = "fraud"
)

// checkOutcome accumulates the verdict of one check category. A category
// passes iff it produced no blocking error; system failures are tracked
// separately and do not fail the category (see the fail-closed policy in the
// orchestrator).
type checkOutcome struct {
	errors   []ValidationError
	warnings []Warning
	system   []ValidationError
}

func (o *checkOutcome) passed() bool {
	return len(o.errors) == 0
}

func (o *checkOutcome) fail(code, message, field string) {
	o.errors = append(o.errors, ValidationError{Code: code, Message: message, Field: field})
}

func (o *checkOutcome) warn(code, message, field string) {
	o.warnings = append(o.warnings, Warning{Code: code, Message: message, Field: field})
}

// systemFailure records a collaborator failure against the given operation.
// The category outcome is left untouched: the check neither passed nor
// failed, and the orchestrator escalates the verdict instead.
func (s *Service) systemFailure(ctx context.Context, o *checkOutcome, operation string, err error) {
	o.system = append(o.system, ValidationError{
		Code:    CodeSystemUnavailable,
		Message: fmt.Sprintf("%s unavailable: %v", operation, err),
		Field:   operation,
	})
	s.metrics.IncrementSystemFailure(operation)
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "collaborator failure during validation",
			"operation", operation,
			"error", err,
		)
	}
}
