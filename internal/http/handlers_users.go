package httpapi

import (
	"fmt"
	"net/http"

	"github.com/fairyhunter13/vending-machine-service/internal/auth"
	"github.com/fairyhunter13/vending-machine-service/internal/model"
	"github.com/fairyhunter13/vending-machine-service/internal/obs"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsSeller bool   `json:"is_seller"`
}

func (a *App) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "username is required")
		return
	}
	if req.Password == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "password is required")
		return
	}
	hash, err := auth.HashPassword(req.Password, a.Cfg.BcryptCost)
	if err != nil {
		WriteError(w, err)
		return
	}
	u := model.User{Username: req.Username, PasswordHash: hash, IsSeller: req.IsSeller}
	if err := a.Users.Create(u); err != nil {
		WriteError(w, err)
		return
	}
	obs.Logger.Info("user_registered", "username", req.Username, "is_seller", req.IsSeller)
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("User %s was added successfully", req.Username),
	})
}

func (a *App) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Users.List())
}

func (a *App) getUserHandler(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	u, ok := a.Users.Get(username)
	if !ok {
		WriteError(w, fmt.Errorf("user %s: %w", username, model.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

type sellerRequest struct {
	IsSeller bool `json:"is_seller"`
}

// updateSellerHandler toggles the seller flag. Only the account owner may
// change it; setting the flag to its current value is acknowledged without
// an update.
func (a *App) updateSellerHandler(w http.ResponseWriter, r *http.Request, identity model.User) {
	username := r.PathValue("username")
	if username != identity.Username {
		WriteError(w, fmt.Errorf("cannot change another user's seller status: %w", model.ErrForbidden))
		return
	}
	var req sellerRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	if identity.IsSeller == req.IsSeller {
		msg := fmt.Sprintf("User %s is already not a seller", username)
		if req.IsSeller {
			msg = fmt.Sprintf("User %s is already a seller", username)
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": msg})
		return
	}
	u, err := a.Users.Update(username, func(u *model.User) error {
		u.IsSeller = req.IsSeller
		return nil
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"username":  u.Username,
		"is_seller": u.IsSeller,
	})
}

// deleteUserHandler removes the account. Only the owner may delete it, and
// accounts still referenced by products are refused rather than leaving
// dangling seller references.
func (a *App) deleteUserHandler(w http.ResponseWriter, r *http.Request, identity model.User) {
	username := r.PathValue("username")
	if username != identity.Username {
		WriteError(w, fmt.Errorf("cannot delete another user: %w", model.ErrForbidden))
		return
	}
	a.ownerMu.Lock()
	defer a.ownerMu.Unlock()
	if n := a.Products.CountBySeller(username); n > 0 {
		WriteError(w, fmt.Errorf("user %s still has %d products: %w", username, n, model.ErrConflict))
		return
	}
	if err := a.Users.Delete(username); err != nil {
		WriteError(w, err)
		return
	}
	obs.Logger.Info("user_deleted", "username", username)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("User %s was deleted successfully", username),
	})
}
