package vending

import (
	"fmt"

	"github.com/fairyhunter13/vending-machine-service/internal/model"
	"github.com/fairyhunter13/vending-machine-service/internal/store"
)

// Guard validates catalog preconditions for a purchase. It never mutates.
type Guard struct {
	products *store.Products
}

// NewGuard returns a Guard over the given product store.
func NewGuard(products *store.Products) *Guard {
	return &Guard{products: products}
}

// Check returns the product when it exists, carries at least quantity units
// of stock, and is not sold by the buyer. The checks run in that order.
func (g *Guard) Check(productID int64, buyer string, quantity int64) (model.Product, error) {
	p, ok := g.products.Get(productID)
	if !ok {
		return model.Product{}, fmt.Errorf("product %d: %w", productID, model.ErrNotFound)
	}
	if quantity > p.Quantity {
		return model.Product{}, model.ErrInsufficientStock
	}
	if p.Seller == buyer {
		return model.Product{}, model.ErrSelfPurchase
	}
	return p, nil
}
