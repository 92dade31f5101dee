package model

import "errors"

// Domain errors surfaced by the stores and the vending engine. The HTTP
// layer maps these to status codes; everything else matches with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrSelfPurchase      = errors.New("seller can't buy their own products")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrInsufficientStock = errors.New("not enough products available")
	ErrConflict          = errors.New("conflict")
)
