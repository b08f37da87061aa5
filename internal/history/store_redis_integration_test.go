//go:build integration

package history_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"riskgate/internal/history"
	"riskgate/internal/validation/ports"
	"riskgate/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *history.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = history.NewRedisStore(s.redis.Client, 0)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestAppendAndCount() {
	ctx := context.Background()
	now := time.Now()

	for i := range 3 {
		err := s.store.Append(ctx, ports.HistoryEntry{
			TransactionID: fmt.Sprintf("tx-%d", i),
			AccountID:     "acc-1",
			Amount:        50,
			Currency:      "USD",
			Type:          "PAYMENT",
			Timestamp:     now,
		})
		s.Require().NoError(err)
	}

	count, err := s.store.CountInWindow(ctx, "acc-1", time.Minute)
	s.Require().NoError(err)
	s.Equal(3, count)

	other, err := s.store.CountInWindow(ctx, "acc-2", time.Minute)
	s.Require().NoError(err)
	s.Zero(other)
}

func (s *RedisStoreSuite) TestWindowExcludesOldEntries() {
	ctx := context.Background()

	err := s.store.Append(ctx, ports.HistoryEntry{
		TransactionID: "tx-old",
		AccountID:     "acc-1",
		Amount:        50,
		Currency:      "USD",
		Type:          "PAYMENT",
		Timestamp:     time.Now().Add(-2 * time.Minute),
	})
	s.Require().NoError(err)

	count, err := s.store.CountInWindow(ctx, "acc-1", time.Minute)
	s.Require().NoError(err)
	s.Zero(count)

	count, err = s.store.CountInWindow(ctx, "acc-1", time.Hour)
	s.Require().NoError(err)
	s.Equal(1, count)
}
