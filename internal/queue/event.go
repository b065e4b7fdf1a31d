// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into a sales log.
package queue

// TicketIssuedEvent is published when a ticket is sold.  It carries enough
// context for downstream consumers to log, notify or feed analytics without
// querying the box office.
type TicketIssuedEvent struct {
	TicketID   uint64 `json:"ticket_id"`
	ViewerID   uint64 `json:"viewer_id"`
	FilmID     uint64 `json:"film_id"`
	FilmTitle  string `json:"film_title"`
	CinemaName string `json:"cinema_name"`
	HallID     uint64 `json:"hall_id"`
	HallName   string `json:"hall_name"`
	StartsAt   string `json:"starts_at"`
	TicketType string `json:"ticket_type"`
	SeatNumber uint32 `json:"seat_number"`
	PriceCents uint32 `json:"price_cents"`
	Method     string `json:"payment_method"`
	Promotion  string `json:"promotion,omitempty"`
	IssuedAt   string `json:"issued_at"`
}
