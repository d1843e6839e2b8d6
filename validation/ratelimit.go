// validation/ratelimit.go

package validation

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	logger "github.com/talentedge/console-api/logging"
	"github.com/talentedge/console-api/model"
)

// RateLimitWindow is the trailing window attempts are counted over.
const RateLimitWindow = time.Hour

// AttemptStore records access attempts and counts them within a trailing
// window. The production implementation is a Redis sorted-set sliding window;
// tests use an in-memory store.
type AttemptStore interface {
	// RecordAndCount appends one attempt under key and returns the number of
	// attempts within the trailing window, including the new one.
	RecordAndCount(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Hourly quotas per data type. Financial types are the tightest.
func defaultQuotas() map[string]int64 {
	return map[string]int64{
		model.DataTypePayment:    10,
		model.DataTypeWithdrawal: 5,
		model.DataTypeAccount:    30,
		model.DataTypeJobs:       60,
		model.DataTypeInterview:  30,
	}
}

// DefaultQuota applies to data types without an explicit entry.
const DefaultQuota int64 = 100

// RateLimiter counts successful and failed attempts per (user, data type)
// against the quota table.
//
// Internal errors fail OPEN: if the store is unavailable the request is
// allowed. Availability was deliberately chosen over strictness here; see the
// fail-open tests before changing this.
type RateLimiter struct {
	store  AttemptStore
	quotas map[string]int64
}

func NewRateLimiter(store AttemptStore) *RateLimiter {
	return &RateLimiter{store: store, quotas: defaultQuotas()}
}

// Quota returns the hourly quota for a data type.
func (r *RateLimiter) Quota(dataType string) int64 {
	if q, ok := r.quotas[dataType]; ok {
		return q
	}
	return DefaultQuota
}

// Check records one attempt and decides whether the caller is within quota.
func (r *RateLimiter) Check(ctx context.Context, userID, dataType string) model.RateLimitDecision {
	key := userID + ":" + dataType
	count, err := r.store.RecordAndCount(ctx, key, RateLimitWindow)
	if err != nil {
		// Fail open: the limiter protects against abuse, not against its own
		// storage being down.
		logger.Warn("Rate limit check failed, allowing request",
			zap.String("key", key), zap.Error(err))
		return model.RateLimitDecision{Allowed: true}
	}

	quota := r.Quota(dataType)
	if count > quota {
		logger.Warn("Rate limit exceeded",
			zap.String("userID", userID),
			zap.String("dataType", dataType),
			zap.Int64("count", count),
			zap.Int64("quota", quota))
		return model.RateLimitDecision{
			Allowed:    false,
			Reason:     "Too many requests for this data type",
			RetryAfter: RateLimitWindow,
		}
	}
	return model.RateLimitDecision{Allowed: true}
}

// MemoryAttemptStore is an in-process AttemptStore used in tests and as a
// fallback when Redis is not configured.
type MemoryAttemptStore struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	now      func() time.Time
}

func NewMemoryAttemptStore() *MemoryAttemptStore {
	return &MemoryAttemptStore{
		attempts: make(map[string][]time.Time),
		now:      time.Now,
	}
}

func (s *MemoryAttemptStore) RecordAndCount(ctx context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	cutoff := now.Add(-window)
	kept := s.attempts[key][:0]
	for _, t := range s.attempts[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	kept = append(kept, now)
	s.attempts[key] = kept
	return int64(len(kept)), nil
}
