// audit/logger.go

// Package audit maintains the immutable access trail: every data access is
// recorded, rolled into daily aggregates, mirrored to a per-day file when
// sensitive, and scanned by heuristics that raise security events for
// anomalous access patterns. Logging is fire-and-forget by contract: no
// failure in here may ever surface to the caller being audited.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	logger "github.com/talentedge/console-api/logging"
)

// Anomaly thresholds over the trailing hour.
const (
	excessiveRequestThreshold = 100
	multiSubjectThreshold     = 5
	excessiveFailureThreshold = 20
)

// DefaultRetention is how long non-sensitive records stay in the in-memory
// window before the retention sweep removes them.
const DefaultRetention = 90 * 24 * time.Hour

// sweepInterval is how often the background retention sweep runs.
const sweepInterval = time.Hour

// Notifier delivers alerts for critical security events.
type Notifier interface {
	Alert(ctx context.Context, event SecurityEvent)
}

// Logger is the audit trail service.
type Logger struct {
	repo     Repository
	fileLog  *FileLog
	notifier Notifier

	retention time.Duration
	now       func() time.Time
	stopCh    chan struct{}
	stopOnce  sync.Once

	mu         sync.Mutex
	window     []Record
	aggregates map[string]*DailyAggregate
	events     []SecurityEvent
	raised     map[string]bool
}

// NewLogger creates an audit logger and starts the periodic retention sweep.
// repo persistence is best-effort; fileLog and notifier may be nil. A
// non-positive retention falls back to DefaultRetention. Call Stop on
// shutdown.
func NewLogger(repo Repository, fileLog *FileLog, notifier Notifier, retention time.Duration) *Logger {
	if retention <= 0 {
		retention = DefaultRetention
	}
	l := &Logger{
		repo:       repo,
		fileLog:    fileLog,
		notifier:   notifier,
		retention:  retention,
		now:        time.Now,
		stopCh:     make(chan struct{}),
		aggregates: make(map[string]*DailyAggregate),
		raised:     make(map[string]bool),
	}
	go l.sweepLoop()
	return l
}

// Stop terminates the background retention sweep.
func (l *Logger) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

func (l *Logger) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if removed := l.SweepRetention(); removed > 0 {
				logger.Debug("Audit retention sweep removed records", zap.Int("removed", removed))
			}
		case <-l.stopCh:
			return
		}
	}
}

// LogDataAccess records one access attempt. It never returns an error and
// never panics out: on any internal failure it degrades to the emergency log
// and swallows the problem.
func (l *Logger) LogDataAccess(ctx context.Context, entry AccessEntry) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Audit logging panicked", zap.Any("panic", r))
			if l.fileLog != nil {
				l.fileLog.Emergency(fmt.Sprintf("audit panic: %v user=%s subject=%s", r, entry.UserID, entry.SubjectID))
			}
		}
	}()

	record := l.buildRecord(entry)

	l.mu.Lock()
	l.window = append(l.window, record)
	l.updateAggregate(record, entry)
	l.mu.Unlock()

	if l.repo != nil {
		if err := l.repo.SaveRecord(ctx, record); err != nil {
			logger.Warn("Failed to persist audit record", zap.Error(err), zap.String("recordID", record.ID))
			if l.fileLog != nil {
				l.fileLog.Emergency(fmt.Sprintf("persist failed: record=%s err=%v", record.ID, err))
			}
		}
	}

	if l.fileLog != nil && (record.Sensitive || !record.Success) {
		if err := l.fileLog.Append(record); err != nil {
			logger.Warn("Failed to append audit file log", zap.Error(err))
			l.fileLog.Emergency(fmt.Sprintf("file append failed: record=%s err=%v", record.ID, err))
		}
	}

	l.checkSuspiciousActivity(ctx, entry)
}

func (l *Logger) buildRecord(entry AccessEntry) Record {
	metadata, _ := json.Marshal(map[string]interface{}{
		"fields":           entry.Fields,
		"response_time_ms": entry.ResponseTime.Milliseconds(),
	})
	return Record{
		ID:           uuid.NewString(),
		Timestamp:    l.now(),
		EventType:    EventDataAccess,
		UserID:       entry.UserID,
		SubjectID:    entry.SubjectID,
		DataType:     entry.DataType,
		Source:       entry.Source,
		Success:      entry.Success,
		ErrorMessage: entry.ErrorMessage,
		Sensitive:    entry.Sensitive,
		Metadata:     metadata,
	}
}

// updateAggregate folds one access into the per-day, per-type counters.
// Callers hold l.mu. The response-time average is a recency-weighted
// smoothing, not a true mean: avg = avg==0 ? v : (avg+v)/2.
func (l *Logger) updateAggregate(record Record, entry AccessEntry) {
	day := record.Timestamp.Format("2006-01-02")
	key := day + "|" + record.DataType
	agg, ok := l.aggregates[key]
	if !ok {
		agg = &DailyAggregate{Day: day, DataType: record.DataType}
		l.aggregates[key] = agg
	}
	agg.TotalRequests++
	if record.Success {
		agg.SuccessfulRequests++
	} else {
		agg.FailedRequests++
	}
	switch record.Source {
	case SourceCacheHit:
		agg.CacheHits++
	case SourceDatabaseFetch:
		agg.CacheMisses++
	}
	ms := float64(entry.ResponseTime.Milliseconds())
	if agg.AvgResponseTimeMs == 0 {
		agg.AvgResponseTimeMs = ms
	} else {
		agg.AvgResponseTimeMs = (agg.AvgResponseTimeMs + ms) / 2
	}
}

// checkSuspiciousActivity runs the three heuristics over the trailing hour.
// Each fires at most once per user, type and hour.
func (l *Logger) checkSuspiciousActivity(ctx context.Context, entry AccessEntry) {
	now := l.now()
	cutoff := now.Add(-time.Hour)

	l.mu.Lock()
	var total, failures int
	subjects := make(map[string]bool)
	for _, record := range l.window {
		if record.UserID != entry.UserID || record.Timestamp.Before(cutoff) {
			continue
		}
		total++
		if !record.Success {
			failures++
		}
		if record.SubjectID != "" {
			subjects[record.SubjectID] = true
		}
	}
	l.mu.Unlock()

	if total > excessiveRequestThreshold {
		l.raiseEvent(ctx, entry.UserID, EventExcessiveRequests, SeverityMedium,
			fmt.Sprintf("%d requests in the last hour", total))
	}
	if !entry.Privileged && len(subjects) > multiSubjectThreshold {
		l.raiseEvent(ctx, entry.UserID, EventMultipleCandidateAccess, SeverityHigh,
			fmt.Sprintf("accessed %d distinct candidates in the last hour", len(subjects)))
	}
	if failures > excessiveFailureThreshold {
		l.raiseEvent(ctx, entry.UserID, EventExcessiveFailures, SeverityMedium,
			fmt.Sprintf("%d failed requests in the last hour", failures))
	}
}

func (l *Logger) raiseEvent(ctx context.Context, userID, eventType, severity, description string) {
	hourBucket := l.now().Format("2006-01-02T15")
	dedupeKey := userID + "|" + eventType + "|" + hourBucket

	l.mu.Lock()
	if l.raised[dedupeKey] {
		l.mu.Unlock()
		return
	}
	l.raised[dedupeKey] = true
	event := SecurityEvent{
		ID:          uuid.NewString(),
		EventType:   eventType,
		Severity:    severity,
		UserID:      userID,
		Description: description,
		CreatedAt:   l.now(),
	}
	l.events = append(l.events, event)
	l.mu.Unlock()

	logger.Warn("Security event raised",
		zap.String("eventType", eventType),
		zap.String("severity", severity),
		zap.String("userID", userID),
		zap.String("description", description))

	if l.repo != nil {
		if err := l.repo.SaveEvent(ctx, event); err != nil {
			logger.Warn("Failed to persist security event", zap.Error(err))
		}
	}
	if severity == SeverityCritical && l.notifier != nil {
		l.notifier.Alert(ctx, event)
	}
}

// QueryRecords searches the durable trail within a time frame, optionally
// filtered by user.
func (l *Logger) QueryRecords(ctx context.Context, from, to time.Time, userID string) ([]Record, error) {
	if l.repo == nil {
		return nil, nil
	}
	return l.repo.QueryRecords(ctx, from, to, userID)
}

// SecurityEvents returns a copy of the events raised so far.
func (l *Logger) SecurityEvents() []SecurityEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]SecurityEvent, len(l.events))
	copy(out, l.events)
	return out
}

// AccessStatistics aggregates the trail: totals, success and cache-hit
// ratios, per-type volumes, a 24h activity feed, a 30-day security summary
// and the 30-day daily trend.
func (l *Logger) AccessStatistics(filter StatisticsFilter) Statistics {
	now := l.now()
	dayAgo := now.Add(-24 * time.Hour)
	monthAgo := now.Add(-30 * 24 * time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()

	stats := Statistics{
		ByDataType:      make(map[string]int64),
		SecuritySummary: make(map[string]int64),
		DailyTrend:      make(map[string]*DailyAggregate),
	}

	var cacheHits, cacheLookups int64
	for _, record := range l.window {
		if filter.UserID != "" && record.UserID != filter.UserID {
			continue
		}
		if filter.DataType != "" && record.DataType != filter.DataType {
			continue
		}
		stats.TotalRequests++
		if record.Success {
			stats.SuccessfulRequests++
		} else {
			stats.FailedRequests++
		}
		stats.ByDataType[record.DataType]++
		switch record.Source {
		case SourceCacheHit:
			cacheHits++
			cacheLookups++
		case SourceDatabaseFetch:
			cacheLookups++
		}
		if record.Timestamp.After(dayAgo) {
			stats.RecentActivity = append(stats.RecentActivity, record)
		}
	}
	if stats.TotalRequests > 0 {
		stats.SuccessRate = float64(stats.SuccessfulRequests) / float64(stats.TotalRequests)
	}
	if cacheLookups > 0 {
		stats.CacheHitRate = float64(cacheHits) / float64(cacheLookups)
	}

	for _, event := range l.events {
		if event.CreatedAt.After(monthAgo) {
			stats.SecuritySummary[event.EventType]++
		}
	}

	// Copies, not the live pointers: callers read the trend outside l.mu.
	monthAgoDay := monthAgo.Format("2006-01-02")
	for key, agg := range l.aggregates {
		if agg.Day >= monthAgoDay {
			snapshot := *agg
			stats.DailyTrend[key] = &snapshot
		}
	}

	return stats
}

// SweepRetention removes non-sensitive records older than the retention
// window from the in-memory trail and returns the number removed. Sensitive
// rows are never swept here. Dedupe buckets from past hours go in the same
// pass; they are only ever consulted within their own hour.
func (l *Logger) SweepRetention() int {
	cutoff := l.now().Add(-l.retention)
	staleBucket := l.now().Add(-time.Hour).Format("2006-01-02T15")

	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.window[:0]
	removed := 0
	for _, record := range l.window {
		if !record.Sensitive && record.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, record)
	}
	l.window = kept

	for key := range l.raised {
		if bucket := key[strings.LastIndex(key, "|")+1:]; bucket < staleBucket {
			delete(l.raised, key)
		}
	}
	return removed
}
