// audit/logger_test.go
package audit

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	logger "github.com/talentedge/console-api/logging"
)

func newTestLogger() (*Logger, *time.Time) {
	l := NewLogger(NewMemoryRepository(), nil, nil, 0)
	current := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }
	return l, &current
}

type brokenRepository struct{}

func (brokenRepository) SaveRecord(ctx context.Context, record Record) error {
	return errors.New("elasticsearch down")
}

func (brokenRepository) SaveEvent(ctx context.Context, event SecurityEvent) error {
	return errors.New("elasticsearch down")
}

func (brokenRepository) QueryRecords(ctx context.Context, from, to time.Time, userID string) ([]Record, error) {
	return nil, errors.New("elasticsearch down")
}

func TestLogDataAccess(t *testing.T) {
	logger.InitTestLogger()
	ctx := context.Background()

	t.Run("RecordsAreImmutableAppends", func(t *testing.T) {
		l, _ := newTestLogger()
		l.LogDataAccess(ctx, AccessEntry{
			UserID: "CAND_001", SubjectID: "CAND_001", DataType: "account",
			Source: SourceDatabaseFetch, Success: true,
		})
		l.LogDataAccess(ctx, AccessEntry{
			UserID: "CAND_001", SubjectID: "CAND_001", DataType: "account",
			Source: SourceCacheHit, Success: true,
		})

		stats := l.AccessStatistics(StatisticsFilter{})
		assert.Equal(t, int64(2), stats.TotalRequests)
		assert.Equal(t, int64(2), stats.SuccessfulRequests)
		assert.Equal(t, 0.5, stats.CacheHitRate)
	})

	t.Run("NeverSurfacesRepositoryFailure", func(t *testing.T) {
		l := NewLogger(brokenRepository{}, nil, nil, 0)
		assert.NotPanics(t, func() {
			l.LogDataAccess(ctx, AccessEntry{
				UserID: "CAND_001", SubjectID: "CAND_001", DataType: "account",
				Source: SourceDatabaseFetch, Success: true,
			})
		})
		assert.Equal(t, int64(1), l.AccessStatistics(StatisticsFilter{}).TotalRequests)
	})

	t.Run("AggregateSmoothing", func(t *testing.T) {
		l, _ := newTestLogger()
		l.LogDataAccess(ctx, AccessEntry{
			UserID: "CAND_001", SubjectID: "CAND_001", DataType: "payment",
			Source: SourceDatabaseFetch, Success: true, ResponseTime: 100 * time.Millisecond,
		})
		l.LogDataAccess(ctx, AccessEntry{
			UserID: "CAND_001", SubjectID: "CAND_001", DataType: "payment",
			Source: SourceCacheHit, Success: true, ResponseTime: 20 * time.Millisecond,
		})

		agg := l.aggregates["2026-03-01|payment"]
		assert.NotNil(t, agg)
		assert.Equal(t, int64(2), agg.TotalRequests)
		assert.Equal(t, int64(1), agg.CacheHits)
		assert.Equal(t, int64(1), agg.CacheMisses)
		// smoothing, not a mean: (100+20)/2
		assert.Equal(t, 60.0, agg.AvgResponseTimeMs)
	})

	t.Run("DailyTrendIsASnapshot", func(t *testing.T) {
		l, _ := newTestLogger()
		l.LogDataAccess(ctx, AccessEntry{
			UserID: "CAND_001", SubjectID: "CAND_001", DataType: "payment",
			Source: SourceDatabaseFetch, Success: true,
		})

		stats := l.AccessStatistics(StatisticsFilter{})
		trend := stats.DailyTrend["2026-03-01|payment"]
		assert.NotNil(t, trend)
		assert.NotSame(t, l.aggregates["2026-03-01|payment"], trend)

		l.LogDataAccess(ctx, AccessEntry{
			UserID: "CAND_001", SubjectID: "CAND_001", DataType: "payment",
			Source: SourceCacheHit, Success: true,
		})
		assert.Equal(t, int64(1), trend.TotalRequests, "later accesses must not mutate an issued snapshot")
	})
}

func TestSuspiciousActivityHeuristics(t *testing.T) {
	logger.InitTestLogger()
	ctx := context.Background()

	t.Run("ExcessiveRequestsFiresOncePerHour", func(t *testing.T) {
		l, _ := newTestLogger()
		for i := 0; i < 120; i++ {
			l.LogDataAccess(ctx, AccessEntry{
				UserID: "CAND_001", SubjectID: "CAND_001", DataType: "account",
				Source: SourceCacheHit, Success: true,
			})
		}

		events := l.SecurityEvents()
		assert.Len(t, events, 1, "the event is deduped within the hour bucket")
		assert.Equal(t, EventExcessiveRequests, events[0].EventType)
		assert.Equal(t, SeverityMedium, events[0].Severity)
	})

	t.Run("ExcessiveRequestsFiresAgainNextHour", func(t *testing.T) {
		l, current := newTestLogger()
		for i := 0; i < 101; i++ {
			l.LogDataAccess(ctx, AccessEntry{
				UserID: "CAND_001", SubjectID: "CAND_001", DataType: "account",
				Source: SourceCacheHit, Success: true,
			})
		}
		assert.Len(t, l.SecurityEvents(), 1)

		*current = current.Add(30 * time.Minute)
		for i := 0; i < 60; i++ {
			l.LogDataAccess(ctx, AccessEntry{
				UserID: "CAND_001", SubjectID: "CAND_001", DataType: "account",
				Source: SourceCacheHit, Success: true,
			})
		}
		assert.Len(t, l.SecurityEvents(), 2, "new hour bucket, new event")
	})

	t.Run("MultipleCandidateAccessForNonPrivileged", func(t *testing.T) {
		l, _ := newTestLogger()
		for i := 0; i < 6; i++ {
			l.LogDataAccess(ctx, AccessEntry{
				UserID: "USR_300", SubjectID: fmt.Sprintf("CAND_%03d", i), DataType: "jobs",
				Source: SourceDatabaseFetch, Success: true,
			})
		}

		events := l.SecurityEvents()
		assert.Len(t, events, 1)
		assert.Equal(t, EventMultipleCandidateAccess, events[0].EventType)
		assert.Equal(t, SeverityHigh, events[0].Severity)
	})

	t.Run("MultipleCandidateAccessIgnoredForPrivileged", func(t *testing.T) {
		l, _ := newTestLogger()
		for i := 0; i < 20; i++ {
			l.LogDataAccess(ctx, AccessEntry{
				UserID: "ADM_100", SubjectID: fmt.Sprintf("CAND_%03d", i), DataType: "jobs",
				Source: SourceDatabaseFetch, Success: true, Privileged: true,
			})
		}
		assert.Empty(t, l.SecurityEvents())
	})

	t.Run("ExcessiveFailures", func(t *testing.T) {
		l, _ := newTestLogger()
		for i := 0; i < 21; i++ {
			l.LogDataAccess(ctx, AccessEntry{
				UserID: "USR_300", SubjectID: "CAND_001", DataType: "payment",
				Source: SourceError, Success: false, ErrorMessage: "permission denied",
			})
		}

		events := l.SecurityEvents()
		assert.Len(t, events, 1)
		assert.Equal(t, EventExcessiveFailures, events[0].EventType)
	})

	t.Run("OldRecordsFallOutOfTheWindow", func(t *testing.T) {
		l, current := newTestLogger()
		for i := 0; i < 80; i++ {
			l.LogDataAccess(ctx, AccessEntry{
				UserID: "CAND_001", SubjectID: "CAND_001", DataType: "account",
				Source: SourceCacheHit, Success: true,
			})
		}
		*current = current.Add(2 * time.Hour)
		for i := 0; i < 80; i++ {
			l.LogDataAccess(ctx, AccessEntry{
				UserID: "CAND_001", SubjectID: "CAND_001", DataType: "account",
				Source: SourceCacheHit, Success: true,
			})
		}
		assert.Empty(t, l.SecurityEvents(), "neither hour crossed the threshold on its own")
	})
}

func TestAccessStatistics(t *testing.T) {
	logger.InitTestLogger()
	ctx := context.Background()
	l, _ := newTestLogger()

	l.LogDataAccess(ctx, AccessEntry{
		UserID: "CAND_001", SubjectID: "CAND_001", DataType: "payment",
		Source: SourceDatabaseFetch, Success: true,
	})
	l.LogDataAccess(ctx, AccessEntry{
		UserID: "CAND_001", SubjectID: "CAND_001", DataType: "payment",
		Source: SourceCacheHit, Success: true,
	})
	l.LogDataAccess(ctx, AccessEntry{
		UserID: "SUP_200", SubjectID: "CAND_001", DataType: "jobs",
		Source: SourceError, Success: false, ErrorMessage: "denied",
	})

	t.Run("Unfiltered", func(t *testing.T) {
		stats := l.AccessStatistics(StatisticsFilter{})
		assert.Equal(t, int64(3), stats.TotalRequests)
		assert.Equal(t, int64(2), stats.SuccessfulRequests)
		assert.Equal(t, int64(1), stats.FailedRequests)
		assert.InDelta(t, 2.0/3.0, stats.SuccessRate, 1e-9)
		assert.Equal(t, 0.5, stats.CacheHitRate)
		assert.Equal(t, int64(2), stats.ByDataType["payment"])
		assert.Len(t, stats.RecentActivity, 3)
	})

	t.Run("FilteredByUser", func(t *testing.T) {
		stats := l.AccessStatistics(StatisticsFilter{UserID: "SUP_200"})
		assert.Equal(t, int64(1), stats.TotalRequests)
		assert.Equal(t, int64(1), stats.FailedRequests)
	})

	t.Run("FilteredByDataType", func(t *testing.T) {
		stats := l.AccessStatistics(StatisticsFilter{DataType: "payment"})
		assert.Equal(t, int64(2), stats.TotalRequests)
	})
}

func TestSweepRetention(t *testing.T) {
	logger.InitTestLogger()
	ctx := context.Background()
	l, current := newTestLogger()

	l.LogDataAccess(ctx, AccessEntry{
		UserID: "CAND_001", SubjectID: "CAND_001", DataType: "jobs",
		Source: SourceDatabaseFetch, Success: true,
	})
	l.LogDataAccess(ctx, AccessEntry{
		UserID: "CAND_001", SubjectID: "CAND_001", DataType: "payment",
		Source: SourceDatabaseFetch, Success: true, Sensitive: true,
	})

	*current = current.Add(91 * 24 * time.Hour)
	removed := l.SweepRetention()
	assert.Equal(t, 1, removed, "only the non-sensitive record is swept")

	stats := l.AccessStatistics(StatisticsFilter{})
	assert.Equal(t, int64(1), stats.TotalRequests)
}

func TestRetentionConfiguration(t *testing.T) {
	logger.InitTestLogger()
	ctx := context.Background()

	t.Run("ConfiguredWindowIsHonored", func(t *testing.T) {
		l := NewLogger(NewMemoryRepository(), nil, nil, 24*time.Hour)
		current := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return current }

		l.LogDataAccess(ctx, AccessEntry{
			UserID: "CAND_001", SubjectID: "CAND_001", DataType: "jobs",
			Source: SourceDatabaseFetch, Success: true,
		})

		current = current.Add(2 * 24 * time.Hour)
		assert.Equal(t, 1, l.SweepRetention())
	})

	t.Run("StaleDedupeBucketsArePruned", func(t *testing.T) {
		l, current := newTestLogger()
		for i := 0; i < 101; i++ {
			l.LogDataAccess(ctx, AccessEntry{
				UserID: "CAND_001", SubjectID: "CAND_001", DataType: "account",
				Source: SourceCacheHit, Success: true,
			})
		}
		assert.Len(t, l.raised, 1)

		*current = current.Add(2 * time.Hour)
		l.SweepRetention()
		assert.Empty(t, l.raised)
	})

	t.Run("StopEndsTheSweepLoop", func(t *testing.T) {
		l, _ := newTestLogger()
		assert.NotPanics(t, func() {
			l.Stop()
			l.Stop()
		})
	})
}
