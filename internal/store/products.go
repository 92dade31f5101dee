package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/fairyhunter13/vending-machine-service/internal/model"
)

// Products is a mutex-guarded map of products keyed by ID.
type Products struct {
	mu sync.RWMutex
	m  map[int64]model.Product
}

// NewProducts returns an empty product store.
func NewProducts() *Products {
	return &Products{m: make(map[int64]model.Product)}
}

// Get returns a copy of the stored product.
func (s *Products) Get(id int64) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	return p, ok
}

// List returns all products sorted by ID.
func (s *Products) List() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create inserts a new product, failing when the ID is taken.
func (s *Products) Create(p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[p.ID]; ok {
		return fmt.Errorf("product %d: %w", p.ID, model.ErrAlreadyExists)
	}
	s.m[p.ID] = p
	return nil
}

// Update applies fn to the stored product under the write lock and returns
// the committed value. A non-nil error from fn aborts the update with no
// state change.
func (s *Products) Update(id int64, fn func(*model.Product) error) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return model.Product{}, fmt.Errorf("product %d: %w", id, model.ErrNotFound)
	}
	if err := fn(&p); err != nil {
		return model.Product{}, err
	}
	s.m[id] = p
	return p, nil
}

// Delete removes the product, failing when absent.
func (s *Products) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return fmt.Errorf("product %d: %w", id, model.ErrNotFound)
	}
	delete(s.m, id)
	return nil
}

// CountBySeller returns how many products reference the seller.
func (s *Products) CountBySeller(seller string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, p := range s.m {
		if p.Seller == seller {
			n++
		}
	}
	return n
}

// Len returns the number of stored products.
func (s *Products) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
