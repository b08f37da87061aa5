package validation

import (
	"context"
	"fmt"
)

// checkAML screens the transaction against sanctions, PEP status, and
// money-laundering heuristics. Only the sanctioned-country check can fail
// this category; everything else is review context.
func (s *Service) checkAML(ctx context.Context, req *TransactionRequest, vctx *ValidationContext) checkOutcome {
	var out checkOutcome
	if !s.cfg.Toggles.EnableAMLChecks {
		return out
	}

	if vctx.CountryCode != "" {
		sanctioned, err := s.compliance.IsSanctionedCountry(ctx, vctx.CountryCode)
		if err != nil {
			s.systemFailure(ctx, &out, "compliance.sanctioned_country", err)
		} else if sanctioned {
			out.fail(CodeSanctionedCountry,
				fmt.Sprintf("country %s is under sanctions", vctx.CountryCode), "country_code")
		}
	}

	if vctx.UserID != "" {
		pep, err := s.compliance.IsPEP(ctx, vctx.UserID)
		if err != nil {
			s.systemFailure(ctx, &out, "compliance.is_pep", err)
		} else if pep {
			out.warn(WarnPEPMatch,
				"user is flagged as a politically exposed person", "user_id")
		}
	}

	// Structuring: amounts parked just under the reporting threshold.
	if req.Amount >= s.cfg.Amount.ReportingThreshold*0.9 && req.Amount < s.cfg.Amount.ReportingThreshold {
		out.warn(WarnStructuringRisk,
			fmt.Sprintf("amount %.2f sits just below the reporting threshold %.2f",
				req.Amount, s.cfg.Amount.ReportingThreshold), "amount")
	}

	if req.Amount >= s.cfg.Amount.HighValue &&
		(req.Type == TypeTransfer || req.Type == TypeWithdrawal) {
		out.warn(WarnHighRiskPattern,
			fmt.Sprintf("high-value %s warrants review", req.Type), "transaction_type")
	}

	return out
}
