package validation

import (
	"context"
	"fmt"
)

// checkAccounts validates account existence, transfer topology, and funds.
func (s *Service) checkAccounts(ctx context.Context, req *TransactionRequest) checkOutcome {
	var out checkOutcome

	exists, err := s.accounts.Exists(ctx, req.SourceAccountID)
	if err != nil {
		s.systemFailure(ctx, &out, "accounts.exists", err)
	} else if !exists {
		out.fail(CodeInvalidSourceAccount,
			fmt.Sprintf("source account %s does not exist or is not active", req.SourceAccountID),
			"source_account_id")
	}

	if req.Type == TypeTransfer && req.DestinationAccountID != "" {
		destExists, err := s.accounts.Exists(ctx, req.DestinationAccountID)
		if err != nil {
			s.systemFailure(ctx, &out, "accounts.exists", err)
		} else if !destExists {
			out.fail(CodeInvalidDestinationAccount,
				fmt.Sprintf("destination account %s does not exist", req.DestinationAccountID),
				"destination_account_id")
		}
	}

	if req.Type == TypeTransfer && req.SourceAccountID == req.DestinationAccountID {
		out.fail(CodeSameAccountTransfer,
			"transfer source and destination accounts must differ",
			"destination_account_id")
	}

	if req.Type.IsDebit() && req.Amount > 0 {
		sufficient, err := s.accounts.HasSufficientFunds(ctx, req.SourceAccountID, req.Amount, req.Currency)
		if err != nil {
			s.systemFailure(ctx, &out, "accounts.sufficient_funds", err)
		} else if !sufficient {
			out.fail(CodeInsufficientFunds,
				fmt.Sprintf("account %s cannot cover %.2f %s",
					req.SourceAccountID, req.Amount, req.Currency), "amount")
		}
	}

	return out
}
