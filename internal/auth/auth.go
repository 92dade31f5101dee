// Package auth verifies request credentials against the user store.
package auth

import (
	"github.com/fairyhunter13/vending-machine-service/internal/model"
	"github.com/fairyhunter13/vending-machine-service/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Authenticator resolves basic-auth credentials to a stored user.
type Authenticator struct {
	users *store.Users
}

// New returns an Authenticator over the given user store.
func New(users *store.Users) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate returns the user matching the credentials. Unknown users and
// wrong passwords both fail with ErrUnauthorized; the caller cannot tell
// which.
func (a *Authenticator) Authenticate(username, password string) (model.User, error) {
	u, ok := a.users.Get(username)
	if !ok {
		return model.User{}, model.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return model.User{}, model.ErrUnauthorized
	}
	return u, nil
}
