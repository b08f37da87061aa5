package validation

import (
	"context"
	"sync"
	"time"

	"riskgate/internal/validation/ports"
)

// Hand-written collaborator doubles. Zero values behave like a healthy host:
// accounts exist, funds suffice, nothing is sanctioned or suspicious.

type fakeAccounts struct {
	missing      map[string]bool
	insufficient bool
	dailyTotal   float64

	existsErr error
	fundsErr  error
	totalErr  error
}

func (f *fakeAccounts) Exists(ctx context.Context, accountID string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return !f.missing[accountID], nil
}

func (f *fakeAccounts) HasSufficientFunds(ctx context.Context, accountID string, amount float64, currency string) (bool, error) {
	if f.fundsErr != nil {
		return false, f.fundsErr
	}
	return !f.insufficient, nil
}

func (f *fakeAccounts) DailyTotal(ctx context.Context, accountID string) (float64, error) {
	if f.totalErr != nil {
		return 0, f.totalErr
	}
	return f.dailyTotal, nil
}

type fakeLoans struct {
	notApproved      bool
	invalidRepayment bool
	err              error
}

func (f *fakeLoans) IsApproved(ctx context.Context, transactionID, accountID string, amount float64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return !f.notApproved, nil
}

func (f *fakeLoans) IsValidRepayment(ctx context.Context, reference, accountID string, amount float64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return !f.invalidRepayment, nil
}

type fakeCompliance struct {
	sanctioned map[string]bool
	peps       map[string]bool
	err        error
}

func (f *fakeCompliance) IsSanctionedCountry(ctx context.Context, countryCode string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.sanctioned[countryCode], nil
}

func (f *fakeCompliance) IsPEP(ctx context.Context, userID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.peps[userID], nil
}

type fakeReputation struct {
	badIPs     map[string]bool
	badDevices map[string]bool
	err        error
}

func (f *fakeReputation) IsSuspiciousIP(ctx context.Context, ip string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.badIPs[ip], nil
}

func (f *fakeReputation) IsSuspiciousDevice(ctx context.Context, fingerprint string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.badDevices[fingerprint], nil
}

type fakeBehavior struct {
	takeover        bool
	unusualTime     bool
	unusualLocation bool
	err             error
}

func (f *fakeBehavior) IsAccountTakeover(ctx context.Context, signal ports.BehaviorSignal) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.takeover, nil
}

func (f *fakeBehavior) IsUnusualTime(ctx context.Context, signal ports.BehaviorSignal) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.unusualTime, nil
}

func (f *fakeBehavior) IsUnusualLocation(ctx context.Context, signal ports.BehaviorSignal) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.unusualLocation, nil
}

// fakeHistory serves preloaded per-account counts. When windows is set it
// overrides the flat count for specific window sizes.
type fakeHistory struct {
	mu       sync.Mutex
	preload  map[string]int
	windows  map[time.Duration]int
	appended []ports.HistoryEntry

	countErr  error
	appendErr error
}

func (f *fakeHistory) CountInWindow(ctx context.Context, accountID string, window time.Duration) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if count, ok := f.windows[window]; ok {
		return count, nil
	}
	return f.preload[accountID], nil
}

func (f *fakeHistory) Append(ctx context.Context, entry ports.HistoryEntry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, entry)
	return nil
}

// recordingAudit captures published verdict events.
type recordingAudit struct {
	mu     sync.Mutex
	events []ports.VerdictEvent
	err    error
}

func (a *recordingAudit) PublishVerdict(ctx context.Context, event ports.VerdictEvent) error {
	if a.err != nil {
		return a.err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
	return nil
}
