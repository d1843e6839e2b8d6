// validation/ratelimit_test.go
package validation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	logger "github.com/talentedge/console-api/logging"
	"github.com/talentedge/console-api/model"
)

type failingStore struct{}

func (failingStore) RecordAndCount(ctx context.Context, key string, window time.Duration) (int64, error) {
	return 0, errors.New("store unavailable")
}

func TestRateLimiter(t *testing.T) {
	logger.InitTestLogger()
	ctx := context.Background()

	t.Run("WithinQuota", func(t *testing.T) {
		limiter := NewRateLimiter(NewMemoryAttemptStore())
		for i := 0; i < 5; i++ {
			decision := limiter.Check(ctx, "CAND_001", model.DataTypeWithdrawal)
			assert.True(t, decision.Allowed, "attempt %d", i+1)
		}
	})

	t.Run("QuotaExceeded", func(t *testing.T) {
		limiter := NewRateLimiter(NewMemoryAttemptStore())
		for i := 0; i < 5; i++ {
			limiter.Check(ctx, "CAND_001", model.DataTypeWithdrawal)
		}
		decision := limiter.Check(ctx, "CAND_001", model.DataTypeWithdrawal)
		assert.False(t, decision.Allowed)
		assert.Equal(t, RateLimitWindow, decision.RetryAfter)
	})

	t.Run("QuotaIsPerDataType", func(t *testing.T) {
		limiter := NewRateLimiter(NewMemoryAttemptStore())
		for i := 0; i < 5; i++ {
			limiter.Check(ctx, "CAND_001", model.DataTypeWithdrawal)
		}
		decision := limiter.Check(ctx, "CAND_001", model.DataTypeJobs)
		assert.True(t, decision.Allowed, "other data types keep their own window")
	})

	t.Run("QuotaIsPerUser", func(t *testing.T) {
		limiter := NewRateLimiter(NewMemoryAttemptStore())
		for i := 0; i < 5; i++ {
			limiter.Check(ctx, "CAND_001", model.DataTypeWithdrawal)
		}
		decision := limiter.Check(ctx, "CAND_002", model.DataTypeWithdrawal)
		assert.True(t, decision.Allowed)
	})

	t.Run("StoreErrorFailsOpen", func(t *testing.T) {
		limiter := NewRateLimiter(failingStore{})
		decision := limiter.Check(ctx, "CAND_001", model.DataTypePayment)
		assert.True(t, decision.Allowed)
	})
}

func TestQuota(t *testing.T) {
	limiter := NewRateLimiter(NewMemoryAttemptStore())
	assert.Equal(t, int64(10), limiter.Quota(model.DataTypePayment))
	assert.Equal(t, int64(5), limiter.Quota(model.DataTypeWithdrawal))
	assert.Equal(t, int64(30), limiter.Quota(model.DataTypeAccount))
	assert.Equal(t, int64(60), limiter.Quota(model.DataTypeJobs))
	assert.Equal(t, DefaultQuota, limiter.Quota("something_else"))
}

func TestMemoryAttemptStoreWindow(t *testing.T) {
	logger.InitTestLogger()
	ctx := context.Background()

	store := NewMemoryAttemptStore()
	current := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		count, err := store.RecordAndCount(ctx, "k", time.Hour)
		assert.NoError(t, err)
		assert.Equal(t, int64(i+1), count)
	}

	// Attempts older than the window fall out.
	current = current.Add(time.Hour + time.Second)
	count, err := store.RecordAndCount(ctx, "k", time.Hour)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
