package httpapi

import (
	"net/http"

	"github.com/fairyhunter13/vending-machine-service/internal/model"
	"github.com/fairyhunter13/vending-machine-service/internal/obs"
)

// depositHandler credits the authenticated user's balance with the coin
// total. Any user may deposit, seller or not.
func (a *App) depositHandler(w http.ResponseWriter, r *http.Request, identity model.User) {
	var dep model.Deposit
	if !a.decodeJSON(w, r, &dep) {
		return
	}
	if err := dep.Validate(); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	balance, err := a.Vending.Deposit(identity.Username, dep)
	if err != nil {
		WriteError(w, err)
		return
	}
	obs.Logger.Info("deposit_accepted",
		"request_id", RequestIDFromContext(r.Context()),
		"username", identity.Username,
		"amount_cents", dep.Cents(),
		"balance_in_cents", balance,
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"message":          "Deposit successful",
		"balance_in_cents": balance,
	})
}

type buyRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

func (a *App) buyHandler(w http.ResponseWriter, r *http.Request, identity model.User) {
	var req buyRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID <= 0 {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "product_id must be > 0")
		return
	}
	if req.Quantity < 1 {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "quantity must be >= 1")
		return
	}
	receipt, err := a.Vending.Buy(identity.Username, req.ProductID, req.Quantity)
	if err != nil {
		WriteError(w, err)
		return
	}
	obs.Logger.Info("purchase_settled",
		"request_id", RequestIDFromContext(r.Context()),
		"username", identity.Username,
		"product_id", req.ProductID,
		"quantity", req.Quantity,
		"total_cost", receipt.TotalCost,
	)
	writeJSON(w, http.StatusOK, receipt)
}

// resetHandler zeroes the balance of the user named in the path, which need
// not be the caller.
func (a *App) resetHandler(w http.ResponseWriter, r *http.Request, identity model.User) {
	username := r.PathValue("username")
	if err := a.Vending.Reset(username); err != nil {
		WriteError(w, err)
		return
	}
	obs.Logger.Info("deposit_reset",
		"request_id", RequestIDFromContext(r.Context()),
		"username", username,
		"requested_by", identity.Username,
	)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deposit reset successful"})
}
