package model

import (
	"math"
	"time"
)

// TicketType selects the price multiplier applied to a screening's base
// price when a ticket is issued.
type TicketType string

const (
	TicketRegular TicketType = "REGULAR"
	TicketStudent TicketType = "STUDENT"
	TicketSenior  TicketType = "SENIOR"
	TicketChild   TicketType = "CHILD"
	TicketVIP     TicketType = "VIP"
)

// ticketMultiplier maps every ticket type to its price multiplier.
var ticketMultiplier = map[TicketType]float64{
	TicketRegular: 1.0,
	TicketStudent: 0.8,
	TicketSenior:  0.7,
	TicketChild:   0.5,
	TicketVIP:     1.5,
}

// TicketTypes lists every accepted ticket type in a stable order, used by
// reporting when building the type distribution.
func TicketTypes() []TicketType {
	return []TicketType{TicketRegular, TicketStudent, TicketSenior, TicketChild, TicketVIP}
}

// Multiplier returns the price multiplier for the ticket type and whether
// the type is known.
func (t TicketType) Multiplier() (float64, bool) {
	m, ok := ticketMultiplier[t]
	return m, ok
}

// TicketPriceCents applies the ticket type multiplier to a base price in
// cents, rounding to the nearest cent.
func TicketPriceCents(baseCents uint32, t TicketType) (uint32, error) {
	m, ok := t.Multiplier()
	if !ok {
		return 0, invalidf("unknown ticket type %q", t)
	}
	return uint32(math.Round(float64(baseCents) * m)), nil
}

// Ticket represents an issued cinema ticket.
//
// Fields:
//  ID          – issuance identifier, assigned when the ticket is sold.
//  FilmID      – film being shown.
//  Screening   – the showing (hall + start time).
//  Type        – ticket type that priced the ticket.
//  SeatNumber  – seat within the hall; must be positive.
//  PriceCents  – final price in cents after multipliers and discounts.
//  PurchasedAt – when the ticket was sold.
type Ticket struct {
	ID          uint64     `json:"id"`
	FilmID      uint64     `json:"film_id"`
	Screening   Screening  `json:"screening"`
	Type        TicketType `json:"type"`
	SeatNumber  uint32     `json:"seat_number"`
	PriceCents  uint32     `json:"price_cents"`
	PurchasedAt time.Time  `json:"purchased_at"`
}

// Validate checks the ticket's invariants.
func (t *Ticket) Validate() error {
	if _, ok := t.Type.Multiplier(); !ok {
		return invalidf("unknown ticket type %q", t.Type)
	}
	if t.SeatNumber == 0 {
		return invalidf("seat number must be positive")
	}
	if t.PriceCents == 0 {
		return invalidf("price must be positive")
	}
	return nil
}

// Usable reports whether the ticket can still be used, i.e. its showing has
// not started yet.
func (t *Ticket) Usable(now time.Time) bool {
	return t.Screening.StartsAt.After(now)
}
