package validation

import (
	"context"
	"fmt"
)

// checkAmount applies the amount rule chain.
// Rule priority within the category (short-circuit on hard bounds):
//  1. Amount must be strictly positive
//  2. Absolute per-transaction ceiling
//  3. Daily limit against the account's running total
//  4. High-value warning (non-blocking)
func (s *Service) checkAmount(ctx context.Context, req *TransactionRequest) checkOutcome {
	var out checkOutcome

	if req.Amount <= 0 {
		out.fail(CodeInvalidAmount,
			fmt.Sprintf("amount must be positive, got %.2f", req.Amount), "amount")
		return out
	}

	if req.Amount > s.cfg.Amount.MaxSingleTransaction {
		out.fail(CodeAmountExceedsMax,
			fmt.Sprintf("amount %.2f exceeds single-transaction maximum %.2f",
				req.Amount, s.cfg.Amount.MaxSingleTransaction), "amount")
		return out
	}

	total, err := s.accounts.DailyTotal(ctx, req.SourceAccountID)
	if err != nil {
		s.systemFailure(ctx, &out, "accounts.daily_total", err)
	} else if total+req.Amount > s.cfg.Amount.MaxDailyLimit {
		out.fail(CodeDailyLimitExceeded,
			fmt.Sprintf("daily total %.2f plus amount %.2f exceeds limit %.2f",
				total, req.Amount, s.cfg.Amount.MaxDailyLimit), "amount")
	}

	if req.Amount >= s.cfg.Amount.HighValue {
		out.warn(WarnHighValueTransaction,
			fmt.Sprintf("amount %.2f is above the high-value threshold %.2f",
				req.Amount, s.cfg.Amount.HighValue), "amount")
	}

	return out
}
