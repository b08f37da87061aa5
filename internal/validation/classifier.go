package validation

// classifyRisk maps a score to a risk level via the configured ascending
// thresholds. The mapping is monotonic in the score, and no score is low
// enough to fall below LOW.
func (s *Service) classifyRisk(score float64) RiskLevel {
	bands := s.cfg.RiskBands
	switch {
	case score >= bands.Critical:
		return RiskCritical
	case score >= bands.High:
		return RiskHigh
	case score >= bands.Medium:
		return RiskMedium
	default:
		return RiskLow
	}
}
