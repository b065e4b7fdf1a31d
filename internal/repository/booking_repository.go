package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// ledgerRow is the per-showing reservation state.
type ledgerRow struct {
	screening model.Screening
	reserved  uint32
}

// BookingRepo tracks reserved seat counts per showing and issues tickets.
// The count for a showing never exceeds the hall's capacity and never goes
// negative; those two checks are the heart of the box office.
type BookingRepo struct {
	mu        sync.Mutex
	rows      map[string]*ledgerRow
	ticketSeq uint64
}

// NewBookingRepo constructs an empty booking ledger.
func NewBookingRepo() *BookingRepo {
	return &BookingRepo{rows: make(map[string]*ledgerRow)}
}

// row returns the ledger row for a showing, creating it when absent.  The
// caller must hold the mutex.
func (r *BookingRepo) row(s model.Screening) *ledgerRow {
	key := s.Key()
	row, ok := r.rows[key]
	if !ok {
		row = &ledgerRow{screening: s}
		r.rows[key] = row
	}
	return row
}

// Reserve books seats for a showing in the given hall.  With commit false
// the call is a dry run: it validates without changing the ledger.  The
// caller verifies that the screening belongs to the film being sold and
// that the hall is the one referenced by the screening.
func (r *BookingRepo) Reserve(hall *model.Hall, s model.Screening, seats uint32, commit bool) error {
	if seats == 0 {
		return model.ErrValidation
	}
	if hall == nil || hall.ID != s.HallID {
		return ErrHallNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	row := r.row(s)
	// reserved can sit above capacity after staff shrink a hall in place;
	// guard before subtracting so the unsigned difference cannot wrap.
	if row.reserved >= hall.Capacity || seats > hall.Capacity-row.reserved {
		return ErrCapacityExceeded
	}
	if commit {
		row.reserved += seats
	}
	return nil
}

// Cancel releases previously reserved seats for a showing.  Releasing more
// seats than are currently reserved yields ErrNotReserved and leaves the
// ledger untouched.
func (r *BookingRepo) Cancel(s model.Screening, seats uint32) error {
	if seats == 0 {
		return model.ErrValidation
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[s.Key()]
	if !ok || seats > row.reserved {
		return ErrNotReserved
	}
	row.reserved -= seats
	if row.reserved == 0 {
		delete(r.rows, s.Key())
	}
	return nil
}

// Reserved returns the number of seats currently reserved for a showing.
func (r *BookingRepo) Reserved(s model.Screening) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[s.Key()]; ok {
		return row.reserved
	}
	return 0
}

// Available returns the number of seats still open for a showing.
func (r *BookingRepo) Available(hall *model.Hall, s model.Screening) uint32 {
	reserved := r.Reserved(s)
	if reserved > hall.Capacity {
		return 0
	}
	return hall.Capacity - reserved
}

// IssueTicket reserves one seat for the showing and returns a validated
// ticket.  The seat number handed out is the running count after the
// reservation, which is unique per showing because seats are only ever
// counted, never picked.
func (r *BookingRepo) IssueTicket(hall *model.Hall, filmID uint64, s model.Screening, tt model.TicketType, priceCents uint32, now time.Time) (*model.Ticket, error) {
	if hall == nil || hall.ID != s.HallID {
		return nil, ErrHallNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	row := r.row(s)
	if row.reserved >= hall.Capacity {
		return nil, ErrCapacityExceeded
	}
	t := &model.Ticket{
		FilmID:      filmID,
		Screening:   s,
		Type:        tt,
		SeatNumber:  row.reserved + 1,
		PriceCents:  priceCents,
		PurchasedAt: now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	row.reserved++
	r.ticketSeq++
	t.ID = r.ticketSeq
	return t, nil
}

// ReservationRecord is one ledger row as stored in snapshots.
type ReservationRecord struct {
	Screening model.Screening `json:"screening"`
	Reserved  uint32          `json:"reserved"`
}

// Export returns the ledger rows ordered by screening key.
func (r *BookingRepo) Export() []ReservationRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.rows))
	for key := range r.rows {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]ReservationRecord, 0, len(keys))
	for _, key := range keys {
		row := r.rows[key]
		out = append(out, ReservationRecord{Screening: row.screening, Reserved: row.reserved})
	}
	return out
}

// Restore replaces the ledger with snapshot rows.
func (r *BookingRepo) Restore(records []ReservationRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = make(map[string]*ledgerRow, len(records))
	for _, rec := range records {
		if rec.Reserved > 0 {
			r.rows[rec.Screening.Key()] = &ledgerRow{screening: rec.Screening, reserved: rec.Reserved}
		}
	}
}
