package validation

import (
	"context"
	"fmt"
	"slices"
)

// checkBusinessRules applies type-specific gates and the currency allow-list.
func (s *Service) checkBusinessRules(ctx context.Context, req *TransactionRequest) checkOutcome {
	var out checkOutcome

	switch req.Type {
	case TypeLoanDisbursement:
		approved, err := s.loans.IsApproved(ctx, req.TransactionID, req.SourceAccountID, req.Amount)
		if err != nil {
			s.systemFailure(ctx, &out, "loans.is_approved", err)
		} else if !approved {
			out.fail(CodeLoanNotApproved,
				"loan disbursement requires an approved loan", "transaction_type")
		}
	case TypeLoanRepayment:
		valid, err := s.loans.IsValidRepayment(ctx, req.Reference, req.SourceAccountID, req.Amount)
		if err != nil {
			s.systemFailure(ctx, &out, "loans.is_valid_repayment", err)
		} else if !valid {
			out.fail(CodeInvalidLoanRepayment,
				"repayment does not match an open loan", "reference")
		}
	}

	if req.Type.RequiresReference() && req.Reference == "" {
		out.fail(CodeMissingReference,
			fmt.Sprintf("%s transactions require a reference", req.Type), "reference")
	}

	if !slices.Contains(s.cfg.Lists.AllowedCurrencies, req.Currency) {
		out.fail(CodeUnsupportedCurrency,
			fmt.Sprintf("currency %q is not supported", req.Currency), "currency")
	}

	return out
}
