package services

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// RateLimitService limits session creation per IP and payment attempts per session.
// Counters live in process memory.
type RateLimitService struct {
	mu       sync.Mutex
	config   RateLimitConfig
	requests map[string][]time.Time // "<type>:<identifier>" -> request times, oldest first
	now      func() time.Time
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	MaxSessionsPerIP int           // Max sessions started per IP
	SessionWindow    time.Duration // Time window for the session limit
	MaxPayments      int           // Max payment attempts per session
	PaymentWindow    time.Duration // Time window for the payment limit
}

// DefaultRateLimitConfig returns the default rate limit configuration
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxSessionsPerIP: 30,               // 30 sessions
		SessionWindow:    1 * time.Hour,    // per hour
		MaxPayments:      5,                // 5 attempts
		PaymentWindow:    10 * time.Minute, // per 10 minutes
	}
}

const (
	limitSession = "session"
	limitPayment = "payment"
)

// RateLimitError represents a rate limit exceeded error
type RateLimitError struct {
	Message    string
	RetryAfter time.Time
	Type       string // "session" or "payment"
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// NewRateLimitService creates a new rate limit service
func NewRateLimitService(config RateLimitConfig) *RateLimitService {
	return &RateLimitService{
		config:   config,
		requests: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// AllowSession records a session start from ip, or returns a *RateLimitError
func (s *RateLimitService) AllowSession(ip string) error {
	if ip == "" {
		return nil
	}
	return s.allow(limitSession, ip, s.config.MaxSessionsPerIP, s.config.SessionWindow,
		"Too many sessions started from this IP address. Please try again after %s")
}

// AllowPayment records a payment attempt for a session, or returns a *RateLimitError
func (s *RateLimitService) AllowPayment(sessionID string) error {
	return s.allow(limitPayment, sessionID, s.config.MaxPayments, s.config.PaymentWindow,
		"Too many payment attempts. Please try again after %s")
}

func (s *RateLimitService) allow(limitType, identifier string, max int, window time.Duration, message string) error {
	if max <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	key := limitType + ":" + identifier
	recent := pruneBefore(s.requests[key], now.Add(-window))

	if len(recent) >= max {
		s.requests[key] = recent
		retryAfter := recent[0].Add(window)
		return &RateLimitError{
			Message:    fmt.Sprintf(message, retryAfter.Format("15:04:05")),
			RetryAfter: retryAfter,
			Type:       limitType,
		}
	}

	s.requests[key] = append(recent, now)
	return nil
}

// PurgeExpired drops identifiers with no request inside their window and
// returns how many were removed
func (s *RateLimitService) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, times := range s.requests {
		window := s.config.SessionWindow
		if strings.HasPrefix(key, limitPayment+":") {
			window = s.config.PaymentWindow
		}

		recent := pruneBefore(times, now.Add(-window))
		if len(recent) == 0 {
			delete(s.requests, key)
			removed++
			continue
		}
		s.requests[key] = recent
	}
	return removed
}

// pruneBefore drops request times at or before cutoff. The kept times are
// copied so the dropped prefix does not pin the old backing array.
func pruneBefore(times []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(times) && !times[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return times
	}
	return append([]time.Time(nil), times[i:]...)
}
