package validation

// Blocking error codes. Each belongs to exactly one check category; the
// category's flag in ValidationChecks is false whenever one of its codes is
// present on the result.
const (
	// Amount category.
	CodeInvalidAmount      = "INVALID_AMOUNT"
	CodeAmountExceedsMax   = "AMOUNT_EXCEEDS_MAX"
	CodeDailyLimitExceeded = "DAILY_LIMIT_EXCEEDED"

	// Accounts category.
	CodeInvalidSourceAccount      = "INVALID_SOURCE_ACCOUNT"
	CodeInvalidDestinationAccount = "INVALID_DESTINATION_ACCOUNT"
	CodeInsufficientFunds         = "INSUFFICIENT_FUNDS"
	CodeSameAccountTransfer       = "SAME_ACCOUNT_TRANSFER"

	// Velocity category.
	CodeVelocityExceededMinute = "VELOCITY_EXCEEDED_MINUTE"
	CodeVelocityExceededHour   = "VELOCITY_EXCEEDED_HOUR"
	CodeVelocityExceededDay    = "VELOCITY_EXCEEDED_DAY"

	// Business-rules category.
	CodeLoanNotApproved      = "LOAN_NOT_APPROVED"
	CodeInvalidLoanRepayment = "INVALID_LOAN_REPAYMENT"
	CodeMissingReference     = "MISSING_REFERENCE"
	CodeUnsupportedCurrency  = "UNSUPPORTED_CURRENCY"

	// AML/CFT category.
	CodeSanctionedCountry = "SANCTIONED_COUNTRY"

	// Fraud category.
	CodeSuspiciousIP             = "SUSPICIOUS_IP"
	CodeSuspiciousDevice         = "SUSPICIOUS_DEVICE"
	CodePotentialAccountTakeover = "POTENTIAL_ACCOUNT_TAKEOVER"
)

// CodeSystemUnavailable marks a collaborator failure. It is never mixed into
// the business error list; see ValidationResult.SystemErrors.
const CodeSystemUnavailable = "SYSTEM_UNAVAILABLE"

// Warning codes. Warnings are additive context for review and never block.
const (
	WarnHighValueTransaction = "HIGH_VALUE_TRANSACTION"
	WarnUnusualVelocity      = "UNUSUAL_VELOCITY"
	WarnPEPMatch             = "PEP_MATCH"
	WarnStructuringRisk      = "STRUCTURING_RISK"
	WarnHighRiskPattern      = "HIGH_RISK_PATTERN"
	WarnUnusualTime          = "UNUSUAL_TIME"
	WarnUnusualLocation      = "UNUSUAL_LOCATION"
)
