package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"riskgate/internal/validation/ports"
)

// PostgresStore implements ports.HistoryStore on a transaction_history table.
// Row inserts and windowed counts are individually atomic, which satisfies
// the per-account contract without explicit locking.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Schema is the DDL the store expects. Migrations are owned by the host; the
// constant is exported so its tests and the host share one definition.
const Schema = `
CREATE TABLE IF NOT EXISTS transaction_history (
	transaction_id TEXT NOT NULL,
	account_id     TEXT NOT NULL,
	amount         DOUBLE PRECISION NOT NULL,
	currency       TEXT NOT NULL,
	type           TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transaction_history_account_time
	ON transaction_history (account_id, created_at);
`

// NewPostgresStore creates a PostgreSQL-backed history store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Append inserts the attempt. Retention is enforced by the host's cleanup
// job, not per insert.
func (s *PostgresStore) Append(ctx context.Context, entry ports.HistoryEntry) error {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO transaction_history (transaction_id, account_id, amount, currency, type, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.TransactionID, entry.AccountID, entry.Amount, entry.Currency, entry.Type, ts,
	)
	if err != nil {
		return fmt.Errorf("append history for %s: %w", entry.AccountID, err)
	}
	return nil
}

// CountInWindow counts the account's attempts newer than now-window.
func (s *PostgresStore) CountInWindow(ctx context.Context, accountID string, window time.Duration) (int, error) {
	cutoff := time.Now().Add(-window)

	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transaction_history WHERE account_id = $1 AND created_at > $2`,
		accountID, cutoff,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count history for %s: %w", accountID, err)
	}
	return count, nil
}
