// model/decision.go
package model

import "time"

// PermissionDecision is the outcome of a permission check. It is computed
// fresh per request and never persisted.
type PermissionDecision struct {
	Allowed       bool     `json:"allowed"`
	Reason        string   `json:"reason"`
	Restrictions  []string `json:"restrictions"`
	AuditRequired bool     `json:"audit_required"`
}

// RateLimitDecision is the outcome of a quota check. A denied decision
// carries the duration after which the caller may retry.
type RateLimitDecision struct {
	Allowed    bool          `json:"allowed"`
	Reason     string        `json:"reason,omitempty"`
	RetryAfter time.Duration `json:"retry_after,omitempty"`
}
