package validation

import (
	"context"
	"fmt"
	"time"
)

// Fixed heuristics for the non-blocking elevated-velocity warning.
const (
	unusualPerMinute = 5
	unusualPerHour   = 20
)

// checkVelocity enforces per-account transaction-count ceilings over the
// 1-minute, 1-hour, and 1-day windows. The first exceeded window blocks and
// short-circuits the remaining windows. Window counts are stashed on the
// context for the scorer.
func (s *Service) checkVelocity(ctx context.Context, req *TransactionRequest, vctx *ValidationContext) checkOutcome {
	var out checkOutcome

	minuteCount, err := s.history.CountInWindow(ctx, req.SourceAccountID, time.Minute)
	if err != nil {
		s.systemFailure(ctx, &out, "history.count_minute", err)
		return out
	}
	vctx.MinuteCount = minuteCount
	if minuteCount >= s.cfg.Velocity.PerMinute {
		out.fail(CodeVelocityExceededMinute,
			fmt.Sprintf("%d transactions in the last minute exceeds limit %d",
				minuteCount, s.cfg.Velocity.PerMinute), "source_account_id")
		return out
	}

	hourCount, err := s.history.CountInWindow(ctx, req.SourceAccountID, time.Hour)
	if err != nil {
		s.systemFailure(ctx, &out, "history.count_hour", err)
		return out
	}
	vctx.HourCount = hourCount
	if hourCount >= s.cfg.Velocity.PerHour {
		out.fail(CodeVelocityExceededHour,
			fmt.Sprintf("%d transactions in the last hour exceeds limit %d",
				hourCount, s.cfg.Velocity.PerHour), "source_account_id")
		return out
	}

	dayCount, err := s.history.CountInWindow(ctx, req.SourceAccountID, 24*time.Hour)
	if err != nil {
		s.systemFailure(ctx, &out, "history.count_day", err)
		return out
	}
	if dayCount >= s.cfg.Velocity.PerDay {
		out.fail(CodeVelocityExceededDay,
			fmt.Sprintf("%d transactions in the last day exceeds limit %d",
				dayCount, s.cfg.Velocity.PerDay), "source_account_id")
		return out
	}

	if minuteCount > unusualPerMinute || hourCount > unusualPerHour {
		out.warn(WarnUnusualVelocity,
			fmt.Sprintf("elevated transaction frequency: %d/min, %d/hr", minuteCount, hourCount),
			"source_account_id")
	}

	return out
}
