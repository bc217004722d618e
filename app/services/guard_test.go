package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingStore struct {
	inner *MemoryKeyStore
	keys  []string
}

func (s *recordingStore) TrySet(key string) bool {
	s.keys = append(s.keys, key)
	return s.inner.TrySet(key)
}

func TestMemoryKeyStoreTrySet(t *testing.T) {
	store := NewMemoryKeyStore()

	assert.True(t, store.TrySet("a"))
	assert.False(t, store.TrySet("a"))
	assert.True(t, store.TrySet("b"))
}

func TestHourlyGuardShouldRun(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 30, 0, 0, time.UTC)
	store := &recordingStore{inner: NewMemoryKeyStore()}
	guard := &HourlyGuard{Clock: func() time.Time { return now }, Store: store}

	t.Run("FirstClaimOfTheHourWins", func(t *testing.T) {
		assert.True(t, guard.ShouldRun("fee_generation_check"))
		assert.False(t, guard.ShouldRun("fee_generation_check"))
	})

	t.Run("SameHourDifferentMinuteStillBlocked", func(t *testing.T) {
		now = now.Add(25 * time.Minute)
		assert.False(t, guard.ShouldRun("fee_generation_check"))
	})

	t.Run("NextHourReopens", func(t *testing.T) {
		now = now.Add(time.Hour)
		assert.True(t, guard.ShouldRun("fee_generation_check"))
		assert.False(t, guard.ShouldRun("fee_generation_check"))
	})

	t.Run("TasksAreIndependent", func(t *testing.T) {
		assert.True(t, guard.ShouldRun("device_status_check"))
	})

	t.Run("KeyFormat", func(t *testing.T) {
		assert.Contains(t, store.keys, "fee_generation_check_2024-05-01-09")
		assert.Contains(t, store.keys, "fee_generation_check_2024-05-01-10")
	})
}

func TestHourlyGuardDefaultsToWallClock(t *testing.T) {
	guard := &HourlyGuard{Store: NewMemoryKeyStore()}

	assert.True(t, guard.ShouldRun("fee_generation_check"))
	assert.False(t, guard.ShouldRun("fee_generation_check"))
}
