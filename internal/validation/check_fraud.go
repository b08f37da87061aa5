package validation

import (
	"context"
	"time"
)

// checkFraud screens reputation signals and behavioral patterns.
// Rule priority (reputation short-circuits the category):
//  1. Suspicious IP (hard fail)
//  2. Suspicious device (hard fail)
//  3. Account-takeover heuristic (hard fail, pattern detection only)
//  4. Unusual time/location flags (context for the scorer, never block)
func (s *Service) checkFraud(ctx context.Context, req *TransactionRequest, vctx *ValidationContext) checkOutcome {
	var out checkOutcome
	if !s.cfg.Toggles.EnableFraudChecks {
		return out
	}

	if vctx.IPAddress != "" {
		suspicious, err := s.reputation.IsSuspiciousIP(ctx, vctx.IPAddress)
		if err != nil {
			s.systemFailure(ctx, &out, "reputation.ip", err)
			return out
		}
		if suspicious {
			out.fail(CodeSuspiciousIP, "transaction originates from a flagged IP address", "ip_address")
			return out
		}
	}

	if vctx.DeviceFingerprint != "" {
		suspicious, err := s.reputation.IsSuspiciousDevice(ctx, vctx.DeviceFingerprint)
		if err != nil {
			s.systemFailure(ctx, &out, "reputation.device", err)
			return out
		}
		if suspicious {
			out.fail(CodeSuspiciousDevice, "transaction originates from a flagged device", "device_fingerprint")
			return out
		}
	}

	if !s.cfg.Toggles.EnablePatternDetection {
		return out
	}

	signal := behaviorSignal(req, vctx)

	takeover, err := s.behavior.IsAccountTakeover(ctx, signal)
	if err != nil {
		s.systemFailure(ctx, &out, "behavior.account_takeover", err)
		return out
	}
	if takeover {
		out.fail(CodePotentialAccountTakeover,
			"activity matches an account-takeover pattern", "source_account_id")
		return out
	}

	unusualTime, err := s.behavior.IsUnusualTime(ctx, signal)
	if err != nil {
		s.systemFailure(ctx, &out, "behavior.unusual_time", err)
	} else if unusualTime {
		vctx.IsUnusualTime = true
		out.warn(WarnUnusualTime, "transaction time deviates from the account's usual pattern", "")
	}

	unusualLocation, err := s.behavior.IsUnusualLocation(ctx, signal)
	if err != nil {
		s.systemFailure(ctx, &out, "behavior.unusual_location", err)
	} else if unusualLocation {
		vctx.IsUnusualLocation = true
		out.warn(WarnUnusualLocation, "transaction location deviates from the account's usual pattern", "location")
	}

	return out
}

func behaviorSignal(req *TransactionRequest, vctx *ValidationContext) BehaviorSignal {
	return BehaviorSignal{
		TransactionID: req.TransactionID,
		AccountID:     req.SourceAccountID,
		UserID:        vctx.UserID,
		Amount:        req.Amount,
		Type:          req.Type.String(),
		IPAddress:     vctx.IPAddress,
		Device:        vctx.DeviceFingerprint,
		Location:      vctx.Location,
		ObservedAt:    time.Now(),
	}
}
