package audit

import "time"

// Event is one line of the verdict audit trail. It carries codes and scores
// only; transaction payloads stay out of the trail.
type Event struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	AccountID     string    `json:"account_id"`
	Valid         bool      `json:"valid"`
	RiskScore     float64   `json:"risk_score"`
	RiskLevel     string    `json:"risk_level"`
	ErrorCodes    []string  `json:"error_codes,omitempty"`
	WarningCodes  []string  `json:"warning_codes,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
