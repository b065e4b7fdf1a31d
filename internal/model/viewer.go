package model

import (
	"sort"
	"strings"
	"time"
)

// Loyalty status thresholds for a viewer's accumulated points.
const (
	statusSilverAt   = 100
	statusGoldAt     = 500
	statusPlatinumAt = 1000
)

// Points awarded to a viewer for every purchased ticket.
const PointsPerTicket = 10

// Viewer represents a cinema-goer together with their purchase history.
//
// Fields:
//  ID              – registry identifier, assigned on registration.
//  Name            – viewer's name; must be non-empty.
//  Email           – contact address; must look like local@domain.tld.
//  Age             – viewer's age in years; non-negative.
//  FavoriteGenres  – optional genre preferences.
//  PurchaseHistory – tickets bought by the viewer, in purchase order.
//  LoyaltyPoints   – accumulated points (PointsPerTicket per ticket).
//  RegisteredAt    – registration timestamp.
type Viewer struct {
	ID              uint64    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Age             int       `json:"age"`
	FavoriteGenres  []string  `json:"favorite_genres,omitempty"`
	PurchaseHistory []Ticket  `json:"purchase_history,omitempty"`
	LoyaltyPoints   int       `json:"loyalty_points"`
	RegisteredAt    time.Time `json:"registered_at"`
}

// Validate checks the viewer's invariants.
func (v *Viewer) Validate() error {
	if v.Name == "" {
		return invalidf("name cannot be empty")
	}
	if !validEmail(v.Email) {
		return invalidf("invalid email format")
	}
	if v.Age < 0 {
		return invalidf("age must be non-negative")
	}
	if v.LoyaltyPoints < 0 {
		return invalidf("loyalty points must be non-negative")
	}
	return nil
}

// validEmail accepts addresses of the shape local@domain.tld.  The check is
// deliberately shallow; deliverability is not this system's problem.
func validEmail(email string) bool {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	return strings.Contains(domain, ".")
}

// AddTicket appends a purchased ticket to the history and accrues the
// per-ticket loyalty points.
func (v *Viewer) AddTicket(t Ticket) {
	v.PurchaseHistory = append(v.PurchaseHistory, t)
	v.LoyaltyPoints += PointsPerTicket
}

// TicketsForFilm returns the viewer's tickets for one film.
func (v *Viewer) TicketsForFilm(filmID uint64) []Ticket {
	var out []Ticket
	for _, t := range v.PurchaseHistory {
		if t.FilmID == filmID {
			out = append(out, t)
		}
	}
	return out
}

// TotalSpentCents sums the prices of all purchased tickets.
func (v *Viewer) TotalSpentCents() uint64 {
	var sum uint64
	for _, t := range v.PurchaseHistory {
		sum += uint64(t.PriceCents)
	}
	return sum
}

// FavoriteFilmIDs lists the films the viewer has bought tickets for, most
// watched first.  Ties break on film ID to keep the order stable.
func (v *Viewer) FavoriteFilmIDs() []uint64 {
	counts := map[uint64]int{}
	for _, t := range v.PurchaseHistory {
		counts[t.FilmID]++
	}
	ids := make([]uint64, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

// CanWatch reports whether the viewer meets the age requirement of a film's
// rating.
func (v *Viewer) CanWatch(f *Film) bool {
	return v.Age >= MinAgeForRating(f.Rating)
}

// LoyaltyStatus returns the viewer's status band for their current points.
func (v *Viewer) LoyaltyStatus() string {
	switch {
	case v.LoyaltyPoints >= statusPlatinumAt:
		return "PLATINUM"
	case v.LoyaltyPoints >= statusGoldAt:
		return "GOLD"
	case v.LoyaltyPoints >= statusSilverAt:
		return "SILVER"
	default:
		return "BRONZE"
	}
}
