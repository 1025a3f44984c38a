// Package memstore provides the in-process ports.OTPStore implementation: an
// expiring map with an active timer per key and a periodic sweep. State is
// non-durable and process-local; deployments running more than one instance
// should use the Redis backend instead.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/officecorner/hr-system/internal/core/domain"
)

const sweepInterval = time.Minute

type entry struct {
	record domain.OTPRecord
	expiry *time.Timer
}

// OTPStore is an in-memory expiring key-value store for OTP records.
type OTPStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	done    chan struct{}
	closed  bool
}

// NewOTPStore creates the store and starts its background sweep.
func NewOTPStore() *OTPStore {
	s := &OTPStore{
		entries: make(map[string]*entry),
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Put stores the record under key, replacing any prior entry and its timer.
func (s *OTPStore) Put(_ context.Context, key string, record domain.OTPRecord, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.entries[key]; ok {
		prev.expiry.Stop()
	}
	if ttl <= 0 {
		ttl = time.Second
	}

	e := &entry{record: record}
	e.expiry = time.AfterFunc(ttl, func() { s.expire(key, e) })
	s.entries[key] = e
	return nil
}

// Get returns a copy of the record, or domain.ErrOTPNotFound when the key is
// absent or the record is already past its expiry.
func (s *OTPStore) Get(_ context.Context, key string) (*domain.OTPRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, domain.ErrOTPNotFound
	}
	// The timer may not have fired yet; never hand out a stale record.
	if !e.record.ExpiresAt.IsZero() && time.Now().After(e.record.ExpiresAt) {
		e.expiry.Stop()
		delete(s.entries, key)
		return nil, domain.ErrOTPNotFound
	}

	record := e.record
	return &record, nil
}

// Delete removes the entry and stops its timer. Deleting an absent key is a no-op.
func (s *OTPStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.expiry.Stop()
		delete(s.entries, key)
	}
	return nil
}

// Close stops the background sweep and all pending timers.
func (s *OTPStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	for key, e := range s.entries {
		e.expiry.Stop()
		delete(s.entries, key)
	}
}

// expire removes the entry the fired timer was armed for. A timer that
// already fired while Put was replacing the same key must not delete the
// replacement, so the entry identity is checked under the lock.
func (s *OTPStore) expire(key string, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.entries[key]; ok && cur == e {
		delete(s.entries, key)
	}
}

// sweep periodically clears entries whose timers were lost (e.g. replaced
// records whose expiry passed while the process was suspended).
func (s *OTPStore) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for key, e := range s.entries {
				if !e.record.ExpiresAt.IsZero() && now.After(e.record.ExpiresAt) {
					e.expiry.Stop()
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
