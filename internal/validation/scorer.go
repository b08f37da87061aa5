package validation

import "slices"

// Account-history risk is a placeholder constant until account tenure and
// behavior modeling land. TODO: replace with a tenure-weighted sub-score once
// the behavior service exposes account age.
const accountHistoryRisk = 0.3

// Geographic sub-scores by country classification.
const (
	geoRiskUnknown = 0.5
	geoRiskHigh    = 0.9
	geoRiskMedium  = 0.6
	geoRiskBase    = 0.1
)

// scoreRisk combines the five sub-scores as a weighted sum clamped to [0,1].
// Weights need not sum to 1. Called on the final post-check context so the
// flags set by the fraud detector are visible.
func (s *Service) scoreRisk(req *TransactionRequest, vctx *ValidationContext) float64 {
	w := s.cfg.Weights
	score := w.Amount*s.amountRisk(req.Amount) +
		w.Velocity*s.velocityRisk(vctx) +
		w.Pattern*patternRisk(req.Type, vctx) +
		w.AccountHistory*accountHistoryRisk +
		w.Geographic*s.geographicRisk(vctx.CountryCode)
	return clamp01(score)
}

// amountRisk is a piecewise-linear curve over the configured thresholds:
// flat below high-value, ramping between high-value and very-high-value,
// then ramping again above very-high-value until it caps at 1.
func (s *Service) amountRisk(amount float64) float64 {
	high := s.cfg.Amount.HighValue
	veryHigh := s.cfg.Amount.VeryHighValue

	switch {
	case amount < high:
		return 0.1
	case amount < veryHigh:
		return 0.3 + 0.6*(amount-high)/(veryHigh-high)
	default:
		return clamp01(0.9 + 0.1*(amount-veryHigh)/veryHigh)
	}
}

// velocityRisk takes the worse of the minute and hour utilization, with the
// hour signal discounted.
func (s *Service) velocityRisk(vctx *ValidationContext) float64 {
	minuteRatio := clamp01(float64(vctx.MinuteCount) / float64(s.cfg.Velocity.PerMinute))
	hourRatio := clamp01(float64(vctx.HourCount) / float64(s.cfg.Velocity.PerHour))
	return max(minuteRatio, 0.8*hourRatio)
}

// patternRisk accumulates behavioral signals set during the fraud check.
func patternRisk(t TransactionType, vctx *ValidationContext) float64 {
	var risk float64
	switch t {
	case TypeWithdrawal, TypeTransfer:
		risk += 0.2
	case TypeDeposit, TypePayment, TypeLoanDisbursement, TypeLoanRepayment,
		TypeFee, TypeInterest, TypeRefund, TypeOther:
		// Inherently lower-risk movement types.
	}
	if vctx.IsUnusualTime {
		risk += 0.3
	}
	if vctx.IsUnusualLocation {
		risk += 0.3
	}
	return clamp01(risk)
}

// geographicRisk scores the origin country. A missing country code is itself
// a moderate signal.
func (s *Service) geographicRisk(countryCode string) float64 {
	switch {
	case countryCode == "":
		return geoRiskUnknown
	case slices.Contains(s.cfg.Lists.HighRiskCountries, countryCode):
		return geoRiskHigh
	case slices.Contains(s.cfg.Lists.MediumRiskCountries, countryCode):
		return geoRiskMedium
	default:
		return geoRiskBase
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
