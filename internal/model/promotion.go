package model

import (
	"math"
	"time"
)

// Promotion is a percentage discount that staff can attach to a screening.
// A screening carries at most one promotion; that rule is enforced by the
// promotion repository.
//
// Fields:
//  ID              – registry identifier, assigned on creation.
//  Name            – label shown on receipts; must be non-empty.
//  DiscountPercent – percentage taken off the base price, in (0, 100].
//  ExpiresAt       – promotions cannot be applied after this instant.
type Promotion struct {
	ID              uint64    `json:"id"`
	Name            string    `json:"name"`
	DiscountPercent float64   `json:"discount_percent"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// Validate checks the promotion's invariants.
func (p *Promotion) Validate() error {
	if p.Name == "" {
		return invalidf("promotion name cannot be empty")
	}
	if p.DiscountPercent <= 0 || p.DiscountPercent > 100 {
		return invalidf("discount percent must be in (0, 100]")
	}
	if p.ExpiresAt.IsZero() {
		return invalidf("expiry must be set")
	}
	return nil
}

// Expired reports whether the promotion can no longer be applied.
func (p *Promotion) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// DiscountedCents returns the price after taking the discount off, rounded
// to the nearest cent.
func (p *Promotion) DiscountedCents(baseCents uint32) uint32 {
	return uint32(math.Round(float64(baseCents) * (100 - p.DiscountPercent) / 100))
}

// ScreeningKind classifies special showings and adjusts the base price
// before ticket type multipliers and promotions apply.
type ScreeningKind string

const (
	KindRegular   ScreeningKind = "REGULAR"
	KindPremiere  ScreeningKind = "PREMIERE"
	KindMidnight  ScreeningKind = "MIDNIGHT"
	KindMatinee   ScreeningKind = "MATINEE"
	KindSeniorDay ScreeningKind = "SENIOR_DAY"
)

var kindMultiplier = map[ScreeningKind]float64{
	KindRegular:   1.0,
	KindPremiere:  1.5,
	KindMidnight:  0.8,
	KindMatinee:   0.7,
	KindSeniorDay: 0.6,
}

// Multiplier returns the base-price multiplier for the kind and whether the
// kind is known.
func (k ScreeningKind) Multiplier() (float64, bool) {
	m, ok := kindMultiplier[k]
	return m, ok
}

// KindPriceCents applies a screening kind's multiplier to a base price.
func KindPriceCents(baseCents uint32, k ScreeningKind) (uint32, error) {
	m, ok := k.Multiplier()
	if !ok {
		return 0, invalidf("unknown screening kind %q", k)
	}
	return uint32(math.Round(float64(baseCents) * m)), nil
}
