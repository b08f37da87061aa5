package ports

import (
	"context"
	"time"
)

// AccountService exposes the account facts the engine needs. Implementations
// live in the host (core banking, ledger service); the engine only asks
// narrow questions and never mutates account state.
type AccountService interface {
	// Exists reports whether the account exists and is active.
	Exists(ctx context.Context, accountID string) (bool, error)

	// HasSufficientFunds reports whether the account can cover a debit of the
	// given amount in the given currency.
	HasSufficientFunds(ctx context.Context, accountID string, amount float64, currency string) (bool, error)

	// DailyTotal returns the account's running total of validated volume for
	// the current day, in the account's settlement currency.
	DailyTotal(ctx context.Context, accountID string) (float64, error)
}

// HistoryStore records validated transaction attempts per account and answers
// windowed count queries for velocity limiting. Implementations must make
// Append and CountInWindow atomic per account key: concurrent validations of
// the same account race on velocity counts otherwise.
type HistoryStore interface {
	CountInWindow(ctx context.Context, accountID string, window time.Duration) (int, error)
	Append(ctx context.Context, entry HistoryEntry) error
}

// HistoryEntry is the per-account record appended after every validation,
// including rejected ones, so velocity limiting sees attempted volume.
type HistoryEntry struct {
	TransactionID string
	AccountID     string
	Amount        float64
	Currency      string
	Type          string
	Timestamp     time.Time
}

// LoanService answers loan lifecycle questions for loan-typed transactions.
type LoanService interface {
	// IsApproved reports whether a disbursement has an approved loan behind it.
	IsApproved(ctx context.Context, transactionID, accountID string, amount float64) (bool, error)

	// IsValidRepayment reports whether a repayment matches an open loan.
	IsValidRepayment(ctx context.Context, reference, accountID string, amount float64) (bool, error)
}

// ComplianceLists exposes sanctions and PEP screening. Implementations wrap
// the host's list providers; the engine never sees list contents.
type ComplianceLists interface {
	IsSanctionedCountry(ctx context.Context, countryCode string) (bool, error)
	IsPEP(ctx context.Context, userID string) (bool, error)
}

// ReputationService exposes IP and device reputation lookups.
type ReputationService interface {
	IsSuspiciousIP(ctx context.Context, ip string) (bool, error)
	IsSuspiciousDevice(ctx context.Context, fingerprint string) (bool, error)
}

// BehaviorService exposes behavioral heuristics over the account's profile.
// Signals carry the minimum the heuristics need; richer models stay host-side.
type BehaviorService interface {
	IsAccountTakeover(ctx context.Context, signal BehaviorSignal) (bool, error)
	IsUnusualTime(ctx context.Context, signal BehaviorSignal) (bool, error)
	IsUnusualLocation(ctx context.Context, signal BehaviorSignal) (bool, error)
}

// BehaviorSignal is the port model handed to behavioral heuristics.
type BehaviorSignal struct {
	TransactionID string
	AccountID     string
	UserID        string
	Amount        float64
	Type          string
	IPAddress     string
	Device        string
	Location      string
	ObservedAt    time.Time
}
