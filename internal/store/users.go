// Package store holds the in-memory user and product stores. All mutation
// goes through Update, which runs the mutator under the write lock so
// read-modify-write sequences cannot interleave.
package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/fairyhunter13/vending-machine-service/internal/model"
)

// Users is a mutex-guarded map of users keyed by username.
type Users struct {
	mu sync.RWMutex
	m  map[string]model.User
}

// NewUsers returns an empty user store.
func NewUsers() *Users {
	return &Users{m: make(map[string]model.User)}
}

// Get returns a copy of the stored user.
func (s *Users) Get(username string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.m[username]
	return u, ok
}

// List returns all users sorted by username.
func (s *Users) List() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, 0, len(s.m))
	for _, u := range s.m {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// Create inserts a new user, failing when the username is taken.
func (s *Users) Create(u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[u.Username]; ok {
		return fmt.Errorf("user %s: %w", u.Username, model.ErrAlreadyExists)
	}
	s.m[u.Username] = u
	return nil
}

// Update applies fn to the stored user under the write lock and returns the
// committed value. A non-nil error from fn aborts the update with no state
// change.
func (s *Users) Update(username string, fn func(*model.User) error) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.m[username]
	if !ok {
		return model.User{}, fmt.Errorf("user %s: %w", username, model.ErrNotFound)
	}
	if err := fn(&u); err != nil {
		return model.User{}, err
	}
	s.m[username] = u
	return u, nil
}

// Delete removes the user, failing when absent.
func (s *Users) Delete(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[username]; !ok {
		return fmt.Errorf("user %s: %w", username, model.ErrNotFound)
	}
	delete(s.m, username)
	return nil
}

// Len returns the number of stored users.
func (s *Users) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
