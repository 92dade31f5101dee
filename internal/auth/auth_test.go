package auth

import (
	"testing"

	"github.com/fairyhunter13/vending-machine-service/internal/model"
	"github.com/fairyhunter13/vending-machine-service/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}

func TestAuthenticate(t *testing.T) {
	users := store.NewUsers()
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(model.User{Username: "alice", PasswordHash: hash, IsSeller: true}))

	a := New(users)

	u, err := a.Authenticate("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.True(t, u.IsSeller)

	_, err = a.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, model.ErrUnauthorized)

	_, err = a.Authenticate("nobody", "s3cret")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}
