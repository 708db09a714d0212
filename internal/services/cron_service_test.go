package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/railyatra/booking-backend/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPurger struct {
	calls   int32
	removed int
}

func (p *countingPurger) PurgeExpired() int {
	atomic.AddInt32(&p.calls, 1)
	return p.removed
}

// runPurgeNow runs every registered cleanup job synchronously
func runPurgeNow(s *CronService) int {
	total := 0
	for _, job := range s.jobs {
		total += s.runPurgeJob(job)
	}
	return total
}

func TestCronService_RunsEveryPurger(t *testing.T) {
	sessions := &countingPurger{removed: 3}
	limits := &countingPurger{removed: 2}
	service := NewCronService("*/5 * * * *", testLogger())
	service.AddPurger("sessions", sessions)
	service.AddPurger("rate_limits", limits)

	assert.Equal(t, 5, runPurgeNow(service))
	assert.Equal(t, int32(1), atomic.LoadInt32(&sessions.calls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&limits.calls))
}

func TestCronService_MemoryStore(t *testing.T) {
	store := session.NewMemoryStore(time.Millisecond)
	require.NoError(t, store.Set(context.Background(), uuid.New(), session.KeyDraft, "draft"))

	service := NewCronService("*/5 * * * *", testLogger())
	service.AddPurger("sessions", store)

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, runPurgeNow(service))
	assert.Equal(t, 0, store.PurgeExpired())
}

func TestCronService_InvalidSchedule(t *testing.T) {
	service := NewCronService("every five minutes", testLogger())
	service.AddPurger("sessions", &countingPurger{})

	err := service.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to schedule sessions cleanup job")
}

func TestCronService_StartStop(t *testing.T) {
	purger := &countingPurger{}
	service := NewCronService("@every 1s", testLogger())
	service.AddPurger("sessions", purger)

	require.NoError(t, service.Start())
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&purger.calls) > 0
	}, 3*time.Second, 20*time.Millisecond)
	service.Stop()
}
