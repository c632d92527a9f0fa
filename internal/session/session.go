// Package session holds the admin identity for the process's single upstream
// session. The store is injected into everything that needs it; nothing here
// is package-global.
package session

import (
	"context"
	"sync"

	"github.com/Skotchmaster/foodcourt-admin/internal/backend"
	"github.com/Skotchmaster/foodcourt-admin/internal/models"
)

// Store tracks two independent axes: whether a session check has completed at
// least once (checked) and who is authenticated (admin, nil when nobody).
type Store struct {
	api *backend.Client

	mu      sync.Mutex
	admin   *models.Admin
	checked bool

	// assumeSuccess is the logout policy: when true, local state is cleared
	// and no error is reported even if the termination call failed. The
	// backend session may outlive us in that case, which is accepted.
	assumeSuccess bool
}

func New(api *backend.Client) *Store {
	return &Store{api: api, assumeSuccess: true}
}

// Check asks the backend for the current identity. Any failure, a 401
// included, is absorbed into the signed-out state; Check always finishes
// with checked=true and never reports an error.
func (s *Store) Check(ctx context.Context) {
	admin, err := s.api.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.admin = nil
	} else {
		s.admin = admin
	}
	s.checked = true
}

// Login submits credentials and, on success, re-runs the identity lookup to
// populate the admin. It does not touch checked; only Check does. On failure
// the stored admin is left as it was and the error goes back to the form.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if _, err := s.api.Login(ctx, email, password); err != nil {
		return err
	}

	admin, err := s.api.Me(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.admin = admin
	s.mu.Unlock()
	return nil
}

// Logout calls the termination endpoint and then clears the local identity
// no matter how the call went. Logout is optimistic: with assumeSuccess set
// (the default) a failed network call is swallowed.
func (s *Store) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)

	s.mu.Lock()
	s.admin = nil
	s.mu.Unlock()

	if s.assumeSuccess {
		return nil
	}
	return err
}

// Clear drops the identity without a network call. The 401 hook uses it.
func (s *Store) Clear() {
	s.mu.Lock()
	s.admin = nil
	s.mu.Unlock()
}

func (s *Store) Admin() *models.Admin {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin
}

func (s *Store) Checked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checked
}
