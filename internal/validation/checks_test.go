package validation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"riskgate/internal/validation/config"
)

type ChecksSuite struct {
	suite.Suite
	ctx context.Context

	accounts   *fakeAccounts
	history    *fakeHistory
	loans      *fakeLoans
	compliance *fakeCompliance
	reputation *fakeReputation
	behavior   *fakeBehavior

	cfg     *config.Config
	service *Service
}

func TestChecksSuite(t *testing.T) {
	suite.Run(t, new(ChecksSuite))
}

func (s *ChecksSuite) SetupTest() {
	s.ctx = context.Background()
	s.accounts = &fakeAccounts{}
	s.history = &fakeHistory{}
	s.loans = &fakeLoans{}
	s.compliance = &fakeCompliance{
		sanctioned: map[string]bool{"IR": true, "KP": true},
		peps:       map[string]bool{"pep-user": true},
	}
	s.reputation = &fakeReputation{
		badIPs:     map[string]bool{"198.51.100.1": true},
		badDevices: map[string]bool{"bad-device": true},
	}
	s.behavior = &fakeBehavior{}
	s.cfg = config.DefaultConfig()
	s.rebuild()
}

func (s *ChecksSuite) rebuild() {
	var err error
	s.service, err = New(s.cfg,
		s.accounts, s.history, s.loans, s.compliance, s.reputation, s.behavior)
	s.Require().NoError(err)
}

func (s *ChecksSuite) validate(req *TransactionRequest, vctx *ValidationContext) *ValidationResult {
	result, err := s.service.Validate(s.ctx, req, vctx)
	s.Require().NoError(err)
	return result
}

func (s *ChecksSuite) TestAmountCategory() {
	s.Run("ceiling breach short-circuits the daily-limit check", func() {
		s.accounts.dailyTotal = s.cfg.Amount.MaxDailyLimit // would also trip the daily limit
		result := s.validate(transfer(s.cfg.Amount.MaxSingleTransaction+1), ctxFromCountry("US"))
		s.Equal([]string{CodeAmountExceedsMax}, errCodes(result))
		s.False(result.Checks.AmountValid)
	})

	s.Run("daily limit counts the pending amount", func() {
		s.accounts.dailyTotal = s.cfg.Amount.MaxDailyLimit - 100
		result := s.validate(transfer(101), ctxFromCountry("US"))
		s.Contains(errCodes(result), CodeDailyLimitExceeded)
	})

	s.Run("high value warns without blocking", func() {
		s.accounts.dailyTotal = 0
		result := s.validate(transfer(s.cfg.Amount.HighValue), ctxFromCountry("US"))
		s.True(result.IsValid)
		s.Contains(warnCodes(result), WarnHighValueTransaction)
	})
}

func (s *ChecksSuite) TestAccountsCategory() {
	s.Run("missing source account", func() {
		s.accounts.missing = map[string]bool{"acc-src": true}
		result := s.validate(transfer(100), ctxFromCountry("US"))
		s.Contains(errCodes(result), CodeInvalidSourceAccount)
		s.False(result.Checks.AccountsValid)
	})

	s.Run("missing transfer destination", func() {
		s.accounts.missing = map[string]bool{"acc-dst": true}
		result := s.validate(transfer(100), ctxFromCountry("US"))
		s.Contains(errCodes(result), CodeInvalidDestinationAccount)
	})

	s.Run("self transfer rejected", func() {
		req := transfer(100)
		req.DestinationAccountID = req.SourceAccountID
		result := s.validate(req, ctxFromCountry("US"))
		s.Contains(errCodes(result), CodeSameAccountTransfer)
	})

	s.Run("insufficient funds on debit types", func() {
		s.accounts.insufficient = true
		result := s.validate(transfer(100), ctxFromCountry("US"))
		s.Contains(errCodes(result), CodeInsufficientFunds)
	})

	s.Run("credits skip the funds check", func() {
		s.accounts.insufficient = true
		req := &TransactionRequest{
			TransactionID:   "tx-dep",
			SourceAccountID: "acc-src",
			Amount:          100,
			Currency:        "USD",
			Type:            TypeDeposit,
		}
		result := s.validate(req, ctxFromCountry("US"))
		s.True(result.IsValid)
	})
}

func (s *ChecksSuite) TestVelocityCategory() {
	s.Run("minute ceiling blocks and short-circuits", func() {
		s.history.windows = map[time.Duration]int{
			time.Minute:    s.cfg.Velocity.PerMinute,
			time.Hour:      s.cfg.Velocity.PerHour + 10,
			24 * time.Hour: s.cfg.Velocity.PerDay + 10,
		}
		result := s.validate(transfer(100), ctxFromCountry("US"))
		s.Equal([]string{CodeVelocityExceededMinute}, errCodes(result))
		s.False(result.Checks.VelocityValid)
	})

	s.Run("hour ceiling blocks when minute is under", func() {
		s.history.windows = map[time.Duration]int{
			time.Minute: 1,
			time.Hour:   s.cfg.Velocity.PerHour,
		}
		result := s.validate(transfer(100), ctxFromCountry("US"))
		s.Equal([]string{CodeVelocityExceededHour}, errCodes(result))
	})

	s.Run("day ceiling blocks when shorter windows are under", func() {
		s.history.windows = map[time.Duration]int{
			time.Minute:    1,
			time.Hour:      2,
			24 * time.Hour: s.cfg.Velocity.PerDay,
		}
		result := s.validate(transfer(100), ctxFromCountry("US"))
		s.Equal([]string{CodeVelocityExceededDay}, errCodes(result))
	})

	s.Run("elevated sub-threshold counts warn", func() {
		s.history.windows = map[time.Duration]int{
			time.Minute:    unusualPerMinute + 1,
			time.Hour:      unusualPerMinute + 1,
			24 * time.Hour: unusualPerMinute + 1,
		}
		result := s.validate(transfer(100), ctxFromCountry("US"))
		s.True(result.IsValid)
		s.Contains(warnCodes(result), WarnUnusualVelocity)
	})
}

func (s *ChecksSuite) TestBusinessRulesCategory() {
	s.Run("unapproved loan disbursement", func() {
		s.loans.notApproved = true
		req := &TransactionRequest{
			TransactionID:   "tx-loan",
			SourceAccountID: "acc-src",
			Amount:          5_000,
			Currency:        "USD",
			Type:            TypeLoanDisbursement,
		}
		result := s.validate(req, ctxFromCountry("US"))
		s.Contains(errCodes(result), CodeLoanNotApproved)
		s.False(result.Checks.BusinessRulesValid)
	})

	s.Run("invalid loan repayment", func() {
		s.loans.invalidRepayment = true
		req := &TransactionRequest{
			TransactionID:   "tx-repay",
			SourceAccountID: "acc-src",
			Amount:          500,
			Currency:        "USD",
			Type:            TypeLoanRepayment,
			Reference:       "loan-42",
		}
		result := s.validate(req, ctxFromCountry("US"))
		s.Contains(errCodes(result), CodeInvalidLoanRepayment)
	})

	s.Run("fee without reference", func() {
		req := &TransactionRequest{
			TransactionID:   "tx-fee",
			SourceAccountID: "acc-src",
			Amount:          10,
			Currency:        "USD",
			Type:            TypeFee,
		}
		result := s.validate(req, ctxFromCountry("US"))
		s.Contains(errCodes(result), CodeMissingReference)
	})

	s.Run("unsupported currency", func() {
		req := transfer(100)
		req.Currency = "ZWL"
		result := s.validate(req, ctxFromCountry("US"))
		s.Contains(errCodes(result), CodeUnsupportedCurrency)
	})
}

func (s *ChecksSuite) TestAMLCategory() {
	s.Run("sanctioned country blocks regardless of amount", func() {
		result := s.validate(transfer(1), ctxFromCountry("IR"))
		s.Contains(errCodes(result), CodeSanctionedCountry)
		s.False(result.Checks.AMLValid)
	})

	s.Run("PEP match warns only", func() {
		vctx := &ValidationContext{CountryCode: "US", UserID: "pep-user"}
		result := s.validate(transfer(100), vctx)
		s.True(result.IsValid)
		s.True(result.Checks.AMLValid)
		s.Contains(warnCodes(result), WarnPEPMatch)
	})

	s.Run("disabled toggle skips the whole category", func() {
		s.cfg.Toggles.EnableAMLChecks = false
		s.rebuild()
		result := s.validate(transfer(1), ctxFromCountry("IR"))
		s.NotContains(errCodes(result), CodeSanctionedCountry)
		s.True(result.Checks.AMLValid)
	})
}

func (s *ChecksSuite) TestFraudCategory() {
	s.Run("suspicious IP short-circuits the device check", func() {
		s.reputation.badDevices["also-bad"] = true
		vctx := &ValidationContext{
			CountryCode:       "US",
			IPAddress:         "198.51.100.1",
			DeviceFingerprint: "also-bad",
		}
		result := s.validate(transfer(100), vctx)
		s.Equal([]string{CodeSuspiciousIP}, errCodes(result))
		s.False(result.Checks.FraudValid)
	})

	s.Run("suspicious device blocks", func() {
		vctx := &ValidationContext{CountryCode: "US", DeviceFingerprint: "bad-device"}
		result := s.validate(transfer(100), vctx)
		s.Equal([]string{CodeSuspiciousDevice}, errCodes(result))
	})

	s.Run("account takeover blocks", func() {
		s.behavior.takeover = true
		result := s.validate(transfer(100), ctxFromCountry("US"))
		s.Contains(errCodes(result), CodePotentialAccountTakeover)
	})

	s.Run("disabled toggle skips the whole category", func() {
		s.cfg.Toggles.EnableFraudChecks = false
		s.rebuild()
		vctx := &ValidationContext{CountryCode: "US", IPAddress: "198.51.100.1"}
		result := s.validate(transfer(100), vctx)
		s.True(result.IsValid)
		s.True(result.Checks.FraudValid)
	})

	s.Run("pattern detection off keeps reputation checks on", func() {
		s.cfg.Toggles.EnablePatternDetection = false
		s.rebuild()
		s.behavior.takeover = true // must not be consulted
		vctx := &ValidationContext{CountryCode: "US", IPAddress: "198.51.100.1"}
		result := s.validate(transfer(100), vctx)
		s.Equal([]string{CodeSuspiciousIP}, errCodes(result))
	})
}
