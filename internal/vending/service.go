package vending

import (
	"fmt"
	"sync/atomic"

	"github.com/fairyhunter13/vending-machine-service/internal/model"
	"github.com/fairyhunter13/vending-machine-service/internal/obs"
	"github.com/fairyhunter13/vending-machine-service/internal/store"
)

// Service executes vending transactions against the shared stores. Each
// operation is all-or-nothing relative to its own preconditions.
type Service struct {
	ledger   *Ledger
	guard    *Guard
	products *store.Products

	deposits  atomic.Uint64
	purchases atomic.Uint64
}

// NewService wires the ledger and guard over the given stores.
func NewService(users *store.Users, products *store.Products) *Service {
	return &Service{
		ledger:   NewLedger(users),
		guard:    NewGuard(products),
		products: products,
	}
}

// Deposit credits the coin total to the identity's balance and returns the
// new balance. Coin counts are validated upstream.
func (s *Service) Deposit(identity string, d model.Deposit) (int64, error) {
	balance, err := s.ledger.Deposit(identity, d.Cents())
	if err != nil {
		return 0, err
	}
	s.deposits.Add(1)
	return balance, nil
}

// Buy settles a purchase of quantity units of the product for the identity:
// guard checks, debit, stock decrement. The change breakdown covers the
// buyer's remaining balance after the debit, not overpayment on this
// purchase; the machine treats the balance itself as the changeable amount.
func (s *Service) Buy(identity string, productID, quantity int64) (model.Receipt, error) {
	p, err := s.guard.Check(productID, identity, quantity)
	if err != nil {
		return model.Receipt{}, err
	}
	priceCents := p.PriceCents()
	totalCost := priceCents * quantity
	// A cost that overflows int64 can never be covered by any balance.
	if quantity > 0 && priceCents > 0 && totalCost/quantity != priceCents {
		return model.Receipt{}, fmt.Errorf("total cost exceeds the representable amount: %w", model.ErrInsufficientFunds)
	}

	balance, err := s.ledger.Debit(identity, totalCost)
	if err != nil {
		return model.Receipt{}, err
	}

	// Stock may have raced away since the guard check; re-check under the
	// store lock and refund the debit if the decrement loses.
	if _, err := s.products.Update(productID, func(p *model.Product) error {
		if quantity > p.Quantity {
			return model.ErrInsufficientStock
		}
		p.Quantity -= quantity
		return nil
	}); err != nil {
		if rerr := s.ledger.Refund(identity, totalCost); rerr != nil {
			obs.Logger.Error("refund_failed", "username", identity, "amount_cents", totalCost, "error", rerr)
		}
		return model.Receipt{}, err
	}

	s.purchases.Add(1)
	return model.Receipt{
		Message:           fmt.Sprintf("ProductId %d purchased successfully", productID),
		QuantityPurchased: quantity,
		TotalCost:         totalCost,
		Change:            ComputeChange(balance),
	}, nil
}

// Reset zeroes the named user's balance. Any authenticated caller may reset
// any user; there is no self-check.
func (s *Service) Reset(username string) error {
	return s.ledger.Reset(username)
}

// Metrics returns operation counters for observability.
func (s *Service) Metrics() (deposits, purchases uint64) {
	return s.deposits.Load(), s.purchases.Load()
}
