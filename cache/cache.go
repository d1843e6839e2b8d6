// cache/cache.go

package cache

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	logger "github.com/talentedge/console-api/logging"
)

// DefaultTTL applies when no entry in the TTL policy table matches the key.
const DefaultTTL = 5 * time.Minute

// DefaultCleanupInterval is how often the background sweep runs.
const DefaultCleanupInterval = 5 * time.Minute

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// ttlRule maps a key substring to a time-to-live. Resolution walks the table
// in order and takes the first match, so it is deterministic for a given key.
type ttlRule struct {
	substring string
	ttl       time.Duration
}

func defaultTTLTable() []ttlRule {
	return []ttlRule{
		{"payment_status", 2 * time.Minute},
		{"withdrawal", 1 * time.Minute},
		{"banking", 1 * time.Minute},
		{"salary", 2 * time.Minute},
		{"payment", 2 * time.Minute},
		{"verification", 30 * time.Minute},
		{"account", 15 * time.Minute},
		{"jobs", 10 * time.Minute},
		{"interview", 5 * time.Minute},
		{"profile", 5 * time.Minute},
	}
}

// Stats is a point-in-time snapshot of the cache contents.
type Stats struct {
	TotalEntries   int   `json:"total_entries"`
	ActiveEntries  int   `json:"active_entries"`
	ExpiredEntries int   `json:"expired_entries"`
	MemoryEstimate int64 `json:"memory_estimate_bytes"`
}

// Manager is an in-process key/value store with per-category TTL. Keys are
// composite "{subjectID}:{dataType}[:{suffix}]"; the subject ID is always the
// first colon-delimited segment, which is what makes prefix invalidation work.
//
// The RWMutex covers every read-then-write sequence on a key, including the
// expiry-triggered delete inside Get.
type Manager struct {
	mu       sync.RWMutex
	entries  map[string]entry
	ttlTable []ttlRule

	defaultTTL      time.Duration
	cleanupInterval time.Duration
	stopCh          chan struct{}
	stopOnce        sync.Once

	now func() time.Time
}

// NewManager creates a cache with the default TTL table and starts the
// periodic sweep. Non-positive durations fall back to the defaults. Call
// Stop on shutdown.
func NewManager(cleanupInterval, defaultTTL time.Duration) *Manager {
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	m := &Manager{
		entries:         make(map[string]entry),
		ttlTable:        defaultTTLTable(),
		defaultTTL:      defaultTTL,
		cleanupInterval: cleanupInterval,
		stopCh:          make(chan struct{}),
		now:             time.Now,
	}
	go m.sweepLoop()
	return m
}

// ResolveTTL returns the TTL for a key by first substring match against the
// policy table, falling back to the configured default.
func (m *Manager) ResolveTTL(key string) time.Duration {
	for _, rule := range m.ttlTable {
		if strings.Contains(key, rule.substring) {
			return rule.ttl
		}
	}
	return m.defaultTTL
}

// Get returns the cached value for key. An entry at or past its expiry is
// treated as absent and removed as a side effect of the read.
func (m *Manager) Get(key string) (interface{}, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !m.now().Before(e.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock; another goroutine may have replaced it.
		if cur, still := m.entries[key]; still && !m.now().Before(cur.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the TTL resolved from the policy table.
func (m *Manager) Set(key string, value interface{}) {
	m.SetWithTTL(key, value, m.ResolveTTL(key))
}

// SetWithTTL stores value under key with an explicit TTL.
func (m *Manager) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	m.mu.Lock()
	m.entries[key] = entry{value: value, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
}

// Delete removes key and reports whether it was present.
func (m *Manager) Delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; !ok {
		return false
	}
	delete(m.entries, key)
	return true
}

// InvalidateSubject removes every key belonging to subjectID, optionally
// narrowed to one data type, and returns the number removed.
func (m *Manager) InvalidateSubject(subjectID string, dataType string) int {
	prefix := subjectID + ":"
	if dataType != "" {
		prefix = subjectID + ":" + dataType
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// InvalidateDataType removes every key whose data-type segment matches and
// returns the number removed.
func (m *Manager) InvalidateDataType(dataType string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key := range m.entries {
		parts := strings.SplitN(key, ":", 3)
		if len(parts) >= 2 && parts[1] == dataType {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// Cleanup sweeps every expired entry and returns the number removed.
func (m *Manager) Cleanup() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// Stats reports entry counts and a rough memory estimate.
func (m *Manager) Stats() Stats {
	now := m.now()
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := Stats{TotalEntries: len(m.entries)}
	for key, e := range m.entries {
		if now.Before(e.expiresAt) {
			s.ActiveEntries++
		} else {
			s.ExpiredEntries++
		}
		s.MemoryEstimate += int64(len(key))
		if data, err := json.Marshal(e.value); err == nil {
			s.MemoryEstimate += int64(len(data))
		}
	}
	return s
}

// Stop terminates the background sweep.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Manager) sweepLoop() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if removed := m.Cleanup(); removed > 0 {
				logger.Debug("Cache sweep removed expired entries", zap.Int("removed", removed))
			}
		case <-m.stopCh:
			return
		}
	}
}

// Key builds a composite cache key from subject ID, data type and optional
// suffix segments.
func Key(subjectID, dataType string, suffix ...string) string {
	parts := append([]string{subjectID, dataType}, suffix...)
	return strings.Join(parts, ":")
}
