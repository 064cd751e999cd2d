// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "math"

// HousingDevalFactor is the per-period fractional price decay the game
// applies to an unsold plot.
const HousingDevalFactor = 0.0042

// NumDevals returns how many devaluation periods a plot has undergone,
// inferred from its observed price against the catalog base price.
//
// Returns nil when the price is unknown (and when basePrice is not a
// positive number, which only happens on corrupt reference data). A price
// at or above base means no decay has been observed. Rounding is
// half-up so the externally visible count is deterministic.
func NumDevals(housePrice *int, basePrice int) *int {
	if housePrice == nil || basePrice <= 0 {
		return nil
	}
	if *housePrice >= basePrice {
		zero := 0
		return &zero
	}
	n := int(math.Floor(float64(basePrice-*housePrice)/(HousingDevalFactor*float64(basePrice)) + 0.5))
	return &n
}
