package validation

import "time"

// EngineVersion is stamped into every ValidationResult so downstream review
// tooling can tell which rule set produced a verdict.
const EngineVersion = "1.2.0"

// TransactionType enumerates the supported transaction kinds. The scorer and
// the business-rule checks switch exhaustively on this set so a new type must
// be handled explicitly.
type TransactionType string

const (
	TypeDeposit          TransactionType = "DEPOSIT"
	TypeWithdrawal       TransactionType = "WITHDRAWAL"
	TypeTransfer         TransactionType = "TRANSFER"
	TypePayment          TransactionType = "PAYMENT"
	TypeLoanDisbursement TransactionType = "LOAN_DISBURSEMENT"
	TypeLoanRepayment    TransactionType = "LOAN_REPAYMENT"
	TypeFee              TransactionType = "FEE"
	TypeInterest         TransactionType = "INTEREST"
	TypeRefund           TransactionType = "REFUND"
	TypeOther            TransactionType = "OTHER"
)

// IsValid checks if the transaction type is one of the supported enum values.
func (t TransactionType) IsValid() bool {
	switch t {
	case TypeDeposit, TypeWithdrawal, TypeTransfer, TypePayment,
		TypeLoanDisbursement, TypeLoanRepayment, TypeFee, TypeInterest,
		TypeRefund, TypeOther:
		return true
	}
	return false
}

// IsDebit reports whether the type moves funds out of the source account and
// therefore requires a sufficient-funds check.
func (t TransactionType) IsDebit() bool {
	switch t {
	case TypeWithdrawal, TypeTransfer, TypePayment, TypeLoanRepayment, TypeFee:
		return true
	}
	return false
}

// RequiresReference reports whether the type must carry a non-empty reference.
func (t TransactionType) RequiresReference() bool {
	switch t {
	case TypePayment, TypeLoanRepayment, TypeFee:
		return true
	}
	return false
}

// String returns the string representation.
func (t TransactionType) String() string {
	return string(t)
}

// RiskLevel is the discretized band derived from the continuous risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// String returns the string representation.
func (l RiskLevel) String() string {
	return string(l)
}

// rank orders risk levels for monotonicity comparisons and the fail-closed
// escalation in the orchestrator.
func (l RiskLevel) rank() int {
	switch l {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	}
	return -1
}

// AtLeast reports whether l is equal to or more severe than other.
func (l RiskLevel) AtLeast(other RiskLevel) bool {
	return l.rank() >= other.rank()
}

// Disposition is the downstream action a caller derives from a verdict. The
// engine never acts on it; it is provided so every caller maps verdicts the
// same way.
type Disposition string

const (
	DispositionRejected   Disposition = "REJECTED"
	DispositionHeld       Disposition = "HELD"
	DispositionProcessing Disposition = "PROCESSING"
)

// TransactionRequest is the immutable input to a single validation. Callers
// construct it once; the engine never mutates it.
type TransactionRequest struct {
	TransactionID        string            `json:"transaction_id"`
	SourceAccountID      string            `json:"source_account_id"`
	DestinationAccountID string            `json:"destination_account_id,omitempty"`
	Amount               float64           `json:"amount"`
	Currency             string            `json:"currency"`
	Type                 TransactionType   `json:"transaction_type"`
	Reference            string            `json:"reference,omitempty"`
	Description          string            `json:"description,omitempty"`
	Metadata             map[string]string `json:"metadata,omitempty"`
}

// ValidationContext carries the ambient facts supplied by the caller plus the
// flags the engine itself sets during evaluation. It is mutable only within a
// single validation call and never persisted.
type ValidationContext struct {
	IPAddress         string            `json:"ip_address,omitempty"`
	DeviceFingerprint string            `json:"device_fingerprint,omitempty"`
	CountryCode       string            `json:"country_code,omitempty"`
	UserID            string            `json:"user_id,omitempty"`
	Location          string            `json:"location,omitempty"`
	Flags             map[string]string `json:"flags,omitempty"`

	// Set by the fraud detector, read by the scorer.
	IsUnusualTime     bool `json:"is_unusual_time,omitempty"`
	IsUnusualLocation bool `json:"is_unusual_location,omitempty"`

	// Set by the velocity limiter, read by the scorer. Counts stay zero when
	// the history store was unavailable.
	MinuteCount int `json:"-"`
	HourCount   int `json:"-"`
}

// Clone returns an independent copy so batch validation can enrich one
// transaction's context without leaking flags into its siblings.
func (c *ValidationContext) Clone() *ValidationContext {
	if c == nil {
		return &ValidationContext{}
	}
	out := *c
	if c.Flags != nil {
		out.Flags = make(map[string]string, len(c.Flags))
		for k, v := range c.Flags {
			out.Flags[k] = v
		}
	}
	return &out
}

// ValidationError is a hard failure that forces is_valid=false. It is a
// returned value, never a Go error: a failed validation is a normal,
// fully-described outcome.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Warning is informational context for downstream review; it never blocks.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ValidationChecks records the pass/fail outcome of each of the six rule
// categories. A false flag always has at least one matching entry in Errors.
type ValidationChecks struct {
	AmountValid        bool `json:"amount_valid"`
	AccountsValid      bool `json:"accounts_valid"`
	VelocityValid      bool `json:"velocity_valid"`
	BusinessRulesValid bool `json:"business_rules_valid"`
	AMLValid           bool `json:"aml_valid"`
	FraudValid         bool `json:"fraud_valid"`
}

// allPassed is the logical AND of the six category outcomes.
func (c ValidationChecks) allPassed() bool {
	return c.AmountValid && c.AccountsValid && c.VelocityValid &&
		c.BusinessRulesValid && c.AMLValid && c.FraudValid
}

// ResultMetadata stamps a verdict with when and by which rule set it was made.
type ResultMetadata struct {
	ValidatedAt   time.Time `json:"validated_at"`
	EngineVersion string    `json:"engine_version"`
}

// ValidationResult is the engine's verdict on a single transaction.
type ValidationResult struct {
	TransactionID string            `json:"transaction_id"`
	IsValid       bool              `json:"is_valid"`
	RiskScore     float64           `json:"risk_score"`
	RiskLevel     RiskLevel         `json:"risk_level"`
	Checks        ValidationChecks  `json:"validation_checks"`
	Errors        []ValidationError `json:"errors"`
	Warnings      []Warning         `json:"warnings"`

	// SystemErrors records collaborator failures, kept apart from business
	// errors so IsValid remains "true iff Errors is empty". Any entry here
	// forces RiskLevel to CRITICAL (fail-closed hold).
	SystemErrors []ValidationError `json:"system_errors,omitempty"`

	Metadata ResultMetadata `json:"metadata"`
}

// Disposition maps the verdict to the action the caller should take.
func (r *ValidationResult) Disposition() Disposition {
	if !r.IsValid {
		return DispositionRejected
	}
	if r.RiskLevel.AtLeast(RiskHigh) {
		return DispositionHeld
	}
	return DispositionProcessing
}
