// Package vending implements the transaction engine: deposit accumulation,
// purchase settlement, and greedy change computation.
package vending

import "github.com/fairyhunter13/vending-machine-service/internal/model"

// ComputeChange breaks amountCents into coins, largest denomination first.
// Whatever remains below the smallest coin is reported as unpaid cents.
// Greedy is exact for this denomination set, so the coin count is minimal.
func ComputeChange(amountCents int64) model.ChangeResult {
	coins := make(model.ChangeGiven, len(model.Denominations))
	for _, d := range model.Denominations {
		coins[d] = amountCents / d
		amountCents -= coins[d] * d
	}
	return model.ChangeResult{ChangeGiven: coins, UnpaidCents: amountCents}
}
