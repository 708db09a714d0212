package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/railyatra/booking-backend/internal/events"
	"github.com/railyatra/booking-backend/internal/models"
	"github.com/railyatra/booking-backend/internal/session"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// recordingPublisher keeps published events in memory
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BookingConfirmed
	err    error
}

func (p *recordingPublisher) PublishBookingConfirmed(ctx context.Context, event events.BookingConfirmed) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []events.BookingConfirmed {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.BookingConfirmed(nil), p.events...)
}

// recordingAuditor keeps payment audits in memory
type recordingAuditor struct {
	mu     sync.Mutex
	audits []models.PaymentAudit
}

func (a *recordingAuditor) Log(ctx context.Context, audit *models.PaymentAudit) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.audits = append(a.audits, *audit)
	return nil
}

func (a *recordingAuditor) GetBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.PaymentAudit, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []*models.PaymentAudit
	for i := range a.audits {
		if a.audits[i].SessionID == sessionID {
			audit := a.audits[i]
			out = append(out, &audit)
		}
	}
	return out, nil
}

func (a *recordingAuditor) recorded() []models.PaymentAudit {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.PaymentAudit(nil), a.audits...)
}

// sequenceIDs hands out the given codes in order, then repeats the last one
type sequenceIDs struct {
	mu    sync.Mutex
	codes []string
	next  int
}

func newSequenceIDs(codes ...string) *sequenceIDs {
	return &sequenceIDs{codes: codes}
}

func (g *sequenceIDs) NewCode() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.codes) == 0 {
		return "00000000"
	}
	if g.next >= len(g.codes) {
		return g.codes[len(g.codes)-1]
	}
	code := g.codes[g.next]
	g.next++
	return code
}

// faultyStore wraps a store with a read latency, like a remote store, and
// per-key write failures
type faultyStore struct {
	session.Store
	readDelay time.Duration

	mu          sync.Mutex
	writeErrors map[string]error
}

func (s *faultyStore) failWrites(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErrors == nil {
		s.writeErrors = make(map[string]error)
	}
	s.writeErrors[key] = err
}

func (s *faultyStore) Get(ctx context.Context, sessionID uuid.UUID, key string, dest interface{}) error {
	if s.readDelay > 0 {
		time.Sleep(s.readDelay)
	}
	return s.Store.Get(ctx, sessionID, key, dest)
}

func (s *faultyStore) Set(ctx context.Context, sessionID uuid.UUID, key string, value interface{}) error {
	s.mu.Lock()
	err := s.writeErrors[key]
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Store.Set(ctx, sessionID, key, value)
}
