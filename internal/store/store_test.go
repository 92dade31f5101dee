package store

import (
	"sync"
	"testing"

	"github.com/fairyhunter13/vending-machine-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersCreateGetDelete(t *testing.T) {
	s := NewUsers()
	require.NoError(t, s.Create(model.User{Username: "alice"}))
	require.ErrorIs(t, s.Create(model.User{Username: "alice"}), model.ErrAlreadyExists)

	u, ok := s.Get("alice")
	require.True(t, ok)
	assert.Equal(t, "alice", u.Username)

	_, ok = s.Get("bob")
	assert.False(t, ok)

	require.NoError(t, s.Delete("alice"))
	require.ErrorIs(t, s.Delete("alice"), model.ErrNotFound)
}

func TestUsersUpdateMutatorAborts(t *testing.T) {
	s := NewUsers()
	require.NoError(t, s.Create(model.User{Username: "alice", BalanceInCents: 100}))

	_, err := s.Update("alice", func(u *model.User) error {
		u.BalanceInCents = 0
		return model.ErrInsufficientFunds
	})
	require.ErrorIs(t, err, model.ErrInsufficientFunds)

	u, _ := s.Get("alice")
	assert.Equal(t, int64(100), u.BalanceInCents, "aborted mutator must not commit")

	_, err = s.Update("bob", func(u *model.User) error { return nil })
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestUsersGetReturnsCopy(t *testing.T) {
	s := NewUsers()
	require.NoError(t, s.Create(model.User{Username: "alice", BalanceInCents: 10}))
	u, _ := s.Get("alice")
	u.BalanceInCents = 999
	fresh, _ := s.Get("alice")
	assert.Equal(t, int64(10), fresh.BalanceInCents, "callers must not mutate through the returned value")
}

func TestUsersListSorted(t *testing.T) {
	s := NewUsers()
	for _, n := range []string{"carol", "alice", "bob"} {
		require.NoError(t, s.Create(model.User{Username: n}))
	}
	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, "alice", list[0].Username)
	assert.Equal(t, "bob", list[1].Username)
	assert.Equal(t, "carol", list[2].Username)
	assert.Equal(t, 3, s.Len())
}

func TestUsersConcurrentUpdates(t *testing.T) {
	s := NewUsers()
	require.NoError(t, s.Create(model.User{Username: "alice"}))
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update("alice", func(u *model.User) error {
				u.BalanceInCents += 5
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	u, _ := s.Get("alice")
	assert.Equal(t, int64(500), u.BalanceInCents)
}

func newProduct(id int64, seller string) model.Product {
	return model.Product{
		ID:       id,
		Name:     "Water",
		Price:    decimal.RequireFromString("1.00"),
		Quantity: 5,
		Seller:   seller,
	}
}

func TestProductsCreateUpdateDelete(t *testing.T) {
	s := NewProducts()
	require.NoError(t, s.Create(newProduct(1, "alice")))
	require.ErrorIs(t, s.Create(newProduct(1, "bob")), model.ErrAlreadyExists)

	p, err := s.Update(1, func(p *model.Product) error {
		p.Quantity -= 2
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.Quantity)

	_, err = s.Update(2, func(p *model.Product) error { return nil })
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, s.Delete(1))
	require.ErrorIs(t, s.Delete(1), model.ErrNotFound)
}

func TestProductsListSortedByID(t *testing.T) {
	s := NewProducts()
	for _, id := range []int64{3, 1, 2} {
		require.NoError(t, s.Create(newProduct(id, "alice")))
	}
	list := s.List()
	require.Len(t, list, 3)
	for i, p := range list {
		assert.Equal(t, int64(i+1), p.ID)
	}
}

func TestProductsCountBySeller(t *testing.T) {
	s := NewProducts()
	require.NoError(t, s.Create(newProduct(1, "alice")))
	require.NoError(t, s.Create(newProduct(2, "alice")))
	require.NoError(t, s.Create(newProduct(3, "bob")))
	assert.Equal(t, 2, s.CountBySeller("alice"))
	assert.Equal(t, 1, s.CountBySeller("bob"))
	assert.Zero(t, s.CountBySeller("carol"))
}
