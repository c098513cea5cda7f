package otp

import (
	"errors"
	"sync"
	"time"
)

// codeTTL is how long a one-time code stays valid after it is saved.
const codeTTL = 10 * time.Minute

var (
	// ErrNotFound means no active code exists for the email.
	ErrNotFound = errors.New("no otp found")
	// ErrExpired means the code's validity window has passed. The record is
	// purged on the attempt that observes this.
	ErrExpired = errors.New("otp expired")
	// ErrMismatch means the submitted code does not match. The record is
	// kept so further attempts within the window remain possible.
	ErrMismatch = errors.New("otp mismatch")
)

// Record is one outstanding code for an email.
type Record struct {
	Code      string
	ExpiresAt time.Time
}

// Store holds short-lived verification codes keyed by email. At most one
// code is outstanding per email; saving overwrites any prior code.
//
// Consume is the only verification entry point: separate Get and Delete
// calls would race between two concurrent verifies of the same code, so the
// whole check-and-purge runs under one lock.
type Store interface {
	Save(email, code string)
	Get(email string) (Record, bool)
	Delete(email string)
	Consume(email, code string) error
}

// MemoryStore is a process-local Store. Codes are lost on restart; expiry
// is lazy, checked on the next verify attempt rather than by a sweeper.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]Record
	now   func() time.Time
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithClock substitutes the time source. Used by tests to simulate expiry.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		codes: make(map[string]Record),
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Save stores a fresh code for email, replacing any outstanding one.
func (s *MemoryStore) Save(email, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[email] = Record{
		Code:      code,
		ExpiresAt: s.now().Add(codeTTL),
	}
}

// Get returns the outstanding record for email, if any.
func (s *MemoryStore) Get(email string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.codes[email]
	return rec, ok
}

// Delete removes the record for email.
func (s *MemoryStore) Delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.codes, email)
}

// Consume runs the verify state machine atomically: a missing record fails
// with ErrNotFound; an expired record is purged and fails with ErrExpired; a
// wrong code fails with ErrMismatch and keeps the record; a correct code
// purges the record and succeeds. Codes are single-use along the success
// path.
func (s *MemoryStore) Consume(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.codes[email]
	if !ok {
		return ErrNotFound
	}

	if s.now().After(rec.ExpiresAt) {
		delete(s.codes, email)
		return ErrExpired
	}

	if code != rec.Code {
		return ErrMismatch
	}

	delete(s.codes, email)
	return nil
}
