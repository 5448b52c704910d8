package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/platzio/platz-go/pkg/platz"
)

// Store holds the active credentials of one client and refreshes them through
// the resolver chain when they expire. It is safe for concurrent use; at most
// one refresh runs at a time and concurrent callers reuse its result.
type Store struct {
	resolver platz.Resolver
	logger   platz.Logger
	now      func() time.Time

	mutex   sync.Mutex
	current *platz.Credentials
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithStoreLogger sets the logger for refresh outcomes.
func WithStoreLogger(logger platz.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty store. Nothing is resolved until the first call to
// Credentials.
func NewStore(resolver platz.Resolver, opts ...StoreOption) *Store {
	store := &Store{
		resolver: resolver,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Credentials returns the held credentials, resolving them on first use and
// again once they have expired.
func (s *Store) Credentials(ctx context.Context) (*platz.Credentials, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	if s.current != nil && !s.current.ExpiredAt(now) {
		return s.current, nil
	}

	refreshing := s.current != nil

	creds, err := s.resolver.Resolve(ctx)
	if err != nil {
		s.log(refreshing, err)

		return nil, err
	}

	if creds.ExpiredAt(now) {
		expiresAt, _ := creds.ExpiresAt()
		err = fmt.Errorf("%w: %s credentials expired at %s", platz.ErrCredentialsExpired, creds.Source(), expiresAt.Format(time.RFC3339))
		s.log(refreshing, err)

		return nil, err
	}

	s.current = creds

	if refreshing && s.logger != nil {
		s.logger.Info("Refreshed expired credentials", map[string]interface{}{"source": creds.Source()})
	}

	return creds, nil
}

// AuthorizationHeader returns the header name and value for the current credentials.
func (s *Store) AuthorizationHeader(ctx context.Context) (string, string, error) {
	creds, err := s.Credentials(ctx)
	if err != nil {
		return "", "", err
	}

	name, value := creds.AuthorizationHeader()

	return name, value, nil
}

// Invalidate drops the held credentials so the next call resolves again.
func (s *Store) Invalidate() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.current = nil
}

func (s *Store) log(refreshing bool, err error) {
	if s.logger == nil {
		return
	}

	msg := "Failed to resolve credentials"
	if refreshing {
		msg = "Failed to refresh expired credentials"
	}

	s.logger.Warn(msg, map[string]interface{}{"error": err.Error()})
}
