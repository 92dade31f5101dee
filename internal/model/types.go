// Package model defines domain types and errors used by the service.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Denominations lists the accepted coin values in cents, largest first.
// Change computation iterates this slice in order.
var Denominations = []int64{100, 50, 20, 10, 5}

// User is an account known to the machine. The password hash is opaque to
// everything except the auth package and never appears in responses.
type User struct {
	Username       string `json:"username"`
	PasswordHash   string `json:"-"`
	IsSeller       bool   `json:"is_seller"`
	BalanceInCents int64  `json:"balance_in_cents"`
}

// Product is an item offered by a seller. Price is a decimal amount in the
// machine's single currency; all settlement math uses integer cents.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Seller   string          `json:"seller"`
}

// PriceCents returns the product price in integer cents. Prices are
// validated to at most two decimal places, so the shift is exact.
func (p Product) PriceCents() int64 {
	return p.Price.Shift(2).IntPart()
}

// MaxCoinCount bounds a single denomination's count in one deposit call so
// the cents total stays far from int64 overflow.
const MaxCoinCount = 1_000_000

// Deposit carries coin counts for a single deposit call. It is not stored;
// it is converted to a cents delta and applied to the user's balance.
type Deposit struct {
	Coins5   int64 `json:"coins_5"`
	Coins10  int64 `json:"coins_10"`
	Coins20  int64 `json:"coins_20"`
	Coins50  int64 `json:"coins_50"`
	Coins100 int64 `json:"coins_100"`
}

// Cents returns the total value of the deposited coins.
func (d Deposit) Cents() int64 {
	return d.Coins5*5 + d.Coins10*10 + d.Coins20*20 + d.Coins50*50 + d.Coins100*100
}

// Validate rejects negative and oversized coin counts.
func (d Deposit) Validate() error {
	for _, c := range []int64{d.Coins5, d.Coins10, d.Coins20, d.Coins50, d.Coins100} {
		if c < 0 {
			return fmt.Errorf("coin counts must be >= 0")
		}
		if c > MaxCoinCount {
			return fmt.Errorf("coin counts must be <= %d", MaxCoinCount)
		}
	}
	return nil
}

// ChangeGiven maps a denomination to the number of coins returned.
type ChangeGiven map[int64]int64

// MarshalJSON emits denominations in strictly descending order, which a
// plain map would not guarantee.
func (c ChangeGiven) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, d := range Denominations {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `"%d":%d`, d, c[d])
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON accepts the object form produced by MarshalJSON.
func (c *ChangeGiven) UnmarshalJSON(data []byte) error {
	raw := map[string]int64{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(ChangeGiven, len(raw))
	for k, v := range raw {
		d, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return fmt.Errorf("denomination %q: %w", k, err)
		}
		out[d] = v
	}
	*c = out
	return nil
}

// ChangeResult is the coin breakdown of an amount. UnpaidCents is the
// remainder below the smallest denomination, always in [0,5).
type ChangeResult struct {
	ChangeGiven ChangeGiven `json:"change_given"`
	UnpaidCents int64       `json:"unpaid_cents"`
}

// Receipt confirms a settled purchase.
type Receipt struct {
	Message           string       `json:"message"`
	QuantityPurchased int64        `json:"quantity_purchased"`
	TotalCost         int64        `json:"total_cost"`
	Change            ChangeResult `json:"change"`
}
