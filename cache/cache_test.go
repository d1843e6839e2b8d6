// cache/cache_test.go
package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	logger "github.com/talentedge/console-api/logging"
)

func newTestManager() (*Manager, *time.Time) {
	m := NewManager(time.Hour, 0)
	current := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }
	return m, &current
}

func TestManager(t *testing.T) {
	logger.InitTestLogger()

	t.Run("SetAndGet", func(t *testing.T) {
		m, _ := newTestManager()
		defer m.Stop()

		m.Set(Key("CAND_001", "account"), "payload")
		value, ok := m.Get(Key("CAND_001", "account"))
		assert.True(t, ok)
		assert.Equal(t, "payload", value)
	})

	t.Run("ExpiredEntryIsAbsentAndRemoved", func(t *testing.T) {
		m, current := newTestManager()
		defer m.Stop()

		key := Key("CAND_001", "withdrawal")
		m.Set(key, "payload")

		// withdrawal TTL is one minute; at exactly the expiry the entry is gone
		*current = current.Add(time.Minute)
		_, ok := m.Get(key)
		assert.False(t, ok)
		assert.Equal(t, 0, m.Stats().TotalEntries, "expired entry should be removed on read")
	})

	t.Run("EntryVisibleJustBeforeExpiry", func(t *testing.T) {
		m, current := newTestManager()
		defer m.Stop()

		key := Key("CAND_001", "withdrawal")
		m.Set(key, "payload")

		*current = current.Add(time.Minute - time.Second)
		_, ok := m.Get(key)
		assert.True(t, ok)
	})

	t.Run("SetOverwritesAndRefreshesTTL", func(t *testing.T) {
		m, current := newTestManager()
		defer m.Stop()

		key := Key("CAND_001", "withdrawal")
		m.Set(key, "first")
		*current = current.Add(50 * time.Second)
		m.Set(key, "second")

		*current = current.Add(30 * time.Second)
		value, ok := m.Get(key)
		assert.True(t, ok)
		assert.Equal(t, "second", value)
	})

	t.Run("Delete", func(t *testing.T) {
		m, _ := newTestManager()
		defer m.Stop()

		key := Key("CAND_001", "account")
		m.Set(key, "payload")
		assert.True(t, m.Delete(key))
		assert.False(t, m.Delete(key))
	})

	t.Run("InvalidateSubject", func(t *testing.T) {
		m, _ := newTestManager()
		defer m.Stop()

		m.Set(Key("CAND_001", "account"), 1)
		m.Set(Key("CAND_001", "payment"), 2)
		m.Set(Key("CAND_001", "jobs"), 3)
		m.Set(Key("CAND_002", "account"), 4)

		removed := m.InvalidateSubject("CAND_001", "")
		assert.Equal(t, 3, removed)

		_, ok := m.Get(Key("CAND_002", "account"))
		assert.True(t, ok, "other subjects must be untouched")
	})

	t.Run("InvalidateSubjectNarrowedToType", func(t *testing.T) {
		m, _ := newTestManager()
		defer m.Stop()

		m.Set(Key("CAND_001", "account"), 1)
		m.Set(Key("CAND_001", "payment"), 2)

		removed := m.InvalidateSubject("CAND_001", "payment")
		assert.Equal(t, 1, removed)

		_, ok := m.Get(Key("CAND_001", "account"))
		assert.True(t, ok)
	})

	t.Run("InvalidateDataType", func(t *testing.T) {
		m, _ := newTestManager()
		defer m.Stop()

		m.Set(Key("CAND_001", "jobs"), 1)
		m.Set(Key("CAND_002", "jobs"), 2)
		m.Set(Key("CAND_002", "account"), 3)

		assert.Equal(t, 2, m.InvalidateDataType("jobs"))
		assert.Equal(t, 1, m.Stats().TotalEntries)
	})

	t.Run("Cleanup", func(t *testing.T) {
		m, current := newTestManager()
		defer m.Stop()

		m.Set(Key("CAND_001", "withdrawal"), 1) // 1m TTL
		m.Set(Key("CAND_001", "account"), 2)    // 15m TTL

		*current = current.Add(2 * time.Minute)
		assert.Equal(t, 1, m.Cleanup())

		stats := m.Stats()
		assert.Equal(t, 1, stats.TotalEntries)
		assert.Equal(t, 1, stats.ActiveEntries)
	})

	t.Run("Stats", func(t *testing.T) {
		m, current := newTestManager()
		defer m.Stop()

		m.Set(Key("CAND_001", "withdrawal"), "a")
		m.Set(Key("CAND_001", "account"), "b")
		*current = current.Add(2 * time.Minute)

		stats := m.Stats()
		assert.Equal(t, 2, stats.TotalEntries)
		assert.Equal(t, 1, stats.ActiveEntries)
		assert.Equal(t, 1, stats.ExpiredEntries)
		assert.Greater(t, stats.MemoryEstimate, int64(0))
	})
}

func TestResolveTTL(t *testing.T) {
	logger.InitTestLogger()
	m, _ := newTestManager()
	defer m.Stop()

	tests := []struct {
		key  string
		want time.Duration
	}{
		{"CAND_001:payment_status", 2 * time.Minute},
		{"CAND_001:payment", 2 * time.Minute},
		{"CAND_001:withdrawal", time.Minute},
		{"CAND_001:banking", time.Minute},
		{"CAND_001:salary", 2 * time.Minute},
		{"CAND_001:verification", 30 * time.Minute},
		{"CAND_001:account", 15 * time.Minute},
		{"CAND_001:jobs", 10 * time.Minute},
		{"CAND_001:interview", 5 * time.Minute},
		{"CAND_001:profile", 5 * time.Minute},
		{"CAND_001:something_else", DefaultTTL},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.ResolveTTL(tt.key), "key %s", tt.key)
	}

	// First match wins, so resolution is stable for keys matching several rules.
	assert.Equal(t, 2*time.Minute, m.ResolveTTL("CAND_001:payment_status:recent"))

	t.Run("ConfiguredDefaultTTL", func(t *testing.T) {
		tuned := NewManager(time.Hour, 90*time.Second)
		defer tuned.Stop()
		assert.Equal(t, 90*time.Second, tuned.ResolveTTL("CAND_001:something_else"))
		assert.Equal(t, time.Minute, tuned.ResolveTTL("CAND_001:withdrawal"), "the table still wins over the default")
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "CAND_001:account", Key("CAND_001", "account"))
	assert.Equal(t, "CAND_001:jobs:recent", Key("CAND_001", "jobs", "recent"))
}
