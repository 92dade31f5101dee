package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fairyhunter13/vending-machine-service/internal/model"
	"github.com/fairyhunter13/vending-machine-service/internal/obs"
	"github.com/shopspring/decimal"
)

type productRequest struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// Bounds on price and quantity keep cost arithmetic within int64.
var maxPrice = decimal.NewFromInt(1_000_000)

const maxQuantity = 1_000_000

// validateProductFields checks the mutable product fields shared by create
// and update. Prices are limited to two decimal places so the cent
// conversion is exact.
func validateProductFields(name string, price decimal.Decimal, quantity int64) string {
	if name == "" {
		return "name is required"
	}
	if !price.IsPositive() {
		return "price must be > 0"
	}
	if price.Exponent() < -2 {
		return "price must have at most two decimal places"
	}
	if price.GreaterThan(maxPrice) {
		return "price must be <= 1000000"
	}
	if quantity < 0 {
		return "quantity must be >= 0"
	}
	if quantity > maxQuantity {
		return "quantity must be <= 1000000"
	}
	return ""
}

func productIDFromPath(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("product id must be an integer")
	}
	return id, nil
}

// createProductHandler registers a product owned by the authenticated
// seller. The seller reference always comes from the identity, never from
// the request body.
func (a *App) createProductHandler(w http.ResponseWriter, r *http.Request, identity model.User) {
	if !identity.IsSeller {
		WriteError(w, fmt.Errorf("user must be a seller: %w", model.ErrForbidden))
		return
	}
	var req productRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	if req.ID <= 0 {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "id must be > 0")
		return
	}
	if msg := validateProductFields(req.Name, req.Price, req.Quantity); msg != "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}
	p := model.Product{
		ID:       req.ID,
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
		Seller:   identity.Username,
	}
	a.ownerMu.Lock()
	defer a.ownerMu.Unlock()
	// The identity was resolved at auth time; the account may have been
	// deleted since.
	if _, ok := a.Users.Get(identity.Username); !ok {
		WriteError(w, fmt.Errorf("seller %s: %w", identity.Username, model.ErrNotFound))
		return
	}
	if err := a.Products.Create(p); err != nil {
		WriteError(w, err)
		return
	}
	obs.Logger.Info("product_created", "product_id", p.ID, "seller", p.Seller)
	writeJSON(w, http.StatusCreated, p)
}

func (a *App) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Products.List())
}

func (a *App) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productIDFromPath(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	p, ok := a.Products.Get(id)
	if !ok {
		WriteError(w, fmt.Errorf("product %d: %w", id, model.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// guardOwnership enforces that the identity is a seller and owns the
// product. Existence is checked first so unknown IDs stay 404.
func (a *App) guardOwnership(id int64, identity model.User) error {
	p, ok := a.Products.Get(id)
	if !ok {
		return fmt.Errorf("product %d: %w", id, model.ErrNotFound)
	}
	if !identity.IsSeller {
		return fmt.Errorf("user must be a seller: %w", model.ErrForbidden)
	}
	if p.Seller != identity.Username {
		return fmt.Errorf("user is not seller of product %d: %w", id, model.ErrForbidden)
	}
	return nil
}

type productUpdateRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

func (a *App) updateProductHandler(w http.ResponseWriter, r *http.Request, identity model.User) {
	id, err := productIDFromPath(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := a.guardOwnership(id, identity); err != nil {
		WriteError(w, err)
		return
	}
	var req productUpdateRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	if msg := validateProductFields(req.Name, req.Price, req.Quantity); msg != "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}
	p, err := a.Products.Update(id, func(p *model.Product) error {
		p.Name = req.Name
		p.Price = req.Price
		p.Quantity = req.Quantity
		return nil
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *App) deleteProductHandler(w http.ResponseWriter, r *http.Request, identity model.User) {
	id, err := productIDFromPath(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := a.guardOwnership(id, identity); err != nil {
		WriteError(w, err)
		return
	}
	if err := a.Products.Delete(id); err != nil {
		WriteError(w, err)
		return
	}
	obs.Logger.Info("product_deleted", "product_id", id, "seller", identity.Username)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("ProductId %d was deleted", id),
	})
}
