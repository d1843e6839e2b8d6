// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// Event types recorded on the trail.
const (
	EventDataAccess    = "data_access"
	EventSecurityEvent = "security_event"
)

// Sources of a data access.
const (
	SourceCacheHit      = "cache_hit"
	SourceDatabaseFetch = "database_fetch"
	SourceError         = "error"
)

// Security event severities.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Security event types raised by the anomaly heuristics.
const (
	EventExcessiveRequests       = "excessive_requests"
	EventMultipleCandidateAccess = "multiple_candidate_access"
	EventExcessiveFailures       = "excessive_failures"
)

// Record is one immutable row on the audit trail. Records are never mutated
// or deleted except by the retention sweep, which only removes non-sensitive
// rows older than the retention window.
type Record struct {
	ID           string          `json:"id"`
	Timestamp    time.Time       `json:"timestamp"`
	EventType    string          `json:"event_type"`
	UserID       string          `json:"user_id"`
	SubjectID    string          `json:"subject_id"`
	DataType     string          `json:"data_type"`
	Source       string          `json:"source"`
	Success      bool            `json:"success"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Sensitive    bool            `json:"sensitive"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
}

// SecurityEvent is raised by the anomaly heuristics over the trailing hour.
type SecurityEvent struct {
	ID             string          `json:"id"`
	EventType      string          `json:"event_type"`
	Severity       string          `json:"severity"`
	UserID         string          `json:"user_id"`
	Description    string          `json:"description"`
	AdditionalData json.RawMessage `json:"additional_data,omitempty"`
	Resolved       bool            `json:"resolved"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AccessEntry is the caller-facing input to LogDataAccess.
type AccessEntry struct {
	UserID       string
	SubjectID    string
	DataType     string
	Source       string
	Success      bool
	ErrorMessage string
	Sensitive    bool
	// Privileged marks admin/support requesters; the multi-candidate
	// heuristic does not apply to them.
	Privileged bool
	// Fields touched by the access, recorded in metadata.
	Fields []string
	// ResponseTime of the access, recorded in metadata and folded into the
	// daily aggregate.
	ResponseTime time.Duration
}

// DailyAggregate is the per-day, per-data-type rolling counter set.
type DailyAggregate struct {
	Day                string  `json:"day"`
	DataType           string  `json:"data_type"`
	TotalRequests      int64   `json:"total_requests"`
	SuccessfulRequests int64   `json:"successful_requests"`
	FailedRequests     int64   `json:"failed_requests"`
	CacheHits          int64   `json:"cache_hits"`
	CacheMisses        int64   `json:"cache_misses"`
	AvgResponseTimeMs  float64 `json:"avg_response_time_ms"`
}

// Statistics is the aggregated view returned by AccessStatistics.
type Statistics struct {
	TotalRequests      int64                      `json:"total_requests"`
	SuccessfulRequests int64                      `json:"successful_requests"`
	FailedRequests     int64                      `json:"failed_requests"`
	SuccessRate        float64                    `json:"success_rate"`
	CacheHitRate       float64                    `json:"cache_hit_rate"`
	ByDataType         map[string]int64           `json:"by_data_type"`
	RecentActivity     []Record                   `json:"recent_activity"`
	SecuritySummary    map[string]int64           `json:"security_summary"`
	DailyTrend         map[string]*DailyAggregate `json:"daily_trend"`
}

// StatisticsFilter narrows AccessStatistics.
type StatisticsFilter struct {
	UserID   string
	DataType string
}
