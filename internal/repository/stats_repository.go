package repository

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// ScreeningStats aggregates sales for one showing.
//
// Fields:
//  Screening    – the showing the numbers belong to.
//  HallCapacity – hall capacity captured at sale time, for occupancy.
//  TicketsSold  – number of tickets recorded.
//  RevenueCents – summed ticket prices.
type ScreeningStats struct {
	Screening    model.Screening `json:"screening"`
	HallCapacity uint32          `json:"hall_capacity"`
	TicketsSold  uint32          `json:"tickets_sold"`
	RevenueCents uint64          `json:"revenue_cents"`
}

// AveragePriceCents returns the mean ticket price for the showing.
func (s *ScreeningStats) AveragePriceCents() uint32 {
	if s.TicketsSold == 0 {
		return 0
	}
	return uint32(math.Round(float64(s.RevenueCents) / float64(s.TicketsSold)))
}

// OccupancyRate returns sold seats over capacity, in [0, 1].
func (s *ScreeningStats) OccupancyRate() float64 {
	if s.HallCapacity == 0 {
		return 0
	}
	return float64(s.TicketsSold) / float64(s.HallCapacity)
}

// StatsRepo aggregates ticket sales per showing and per ticket type.
type StatsRepo struct {
	mu         sync.Mutex
	screenings map[string]*ScreeningStats
	typeCounts map[model.TicketType]uint32
}

// NewStatsRepo constructs an empty statistics store.
func NewStatsRepo() *StatsRepo {
	r := &StatsRepo{}
	r.resetLocked()
	return r
}

func (r *StatsRepo) resetLocked() {
	r.screenings = make(map[string]*ScreeningStats)
	r.typeCounts = make(map[model.TicketType]uint32, len(model.TicketTypes()))
	for _, t := range model.TicketTypes() {
		r.typeCounts[t] = 0
	}
}

// RecordSale folds one sold ticket into the aggregates.  The hall capacity
// is captured on first sale for the showing so occupancy stays meaningful
// even if the hall is later edited.
func (r *StatsRepo) RecordSale(t *model.Ticket, hallCapacity uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := t.Screening.Key()
	st, ok := r.screenings[key]
	if !ok {
		st = &ScreeningStats{Screening: t.Screening, HallCapacity: hallCapacity}
		r.screenings[key] = st
	}
	st.TicketsSold++
	st.RevenueCents += uint64(t.PriceCents)
	r.typeCounts[t.Type]++
}

// For returns the aggregates for one showing, or nil when nothing has been
// sold for it yet.
func (r *StatsRepo) For(s model.Screening) *ScreeningStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.screenings[s.Key()]
	if !ok {
		return nil
	}
	cp := *st
	return &cp
}

// TypeDistribution returns the share of each ticket type in percent,
// rounded to two decimals.  With no sales every share is zero.
func (r *StatsRepo) TypeDistribution() map[model.TicketType]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total uint32
	for _, n := range r.typeCounts {
		total += n
	}
	out := make(map[model.TicketType]float64, len(r.typeCounts))
	for t, n := range r.typeCounts {
		if total == 0 {
			out[t] = 0
			continue
		}
		out[t] = math.Round(float64(n)/float64(total)*100*100) / 100
	}
	return out
}

// Top returns up to limit showings ordered by revenue, highest first.
func (r *StatsRepo) Top(limit int) []ScreeningStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]ScreeningStats, 0, len(r.screenings))
	for _, st := range r.screenings {
		all = append(all, *st)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].RevenueCents != all[j].RevenueCents {
			return all[i].RevenueCents > all[j].RevenueCents
		}
		return all[i].Screening.Key() < all[j].Screening.Key()
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// OccupancyReport returns the occupancy rate of every showing whose start
// falls inside [from, to], ordered by start time.
func (r *StatsRepo) OccupancyReport(from, to time.Time) []ScreeningStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ScreeningStats
	for _, st := range r.screenings {
		start := st.Screening.StartsAt
		if start.Before(from) || start.After(to) {
			continue
		}
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Screening.StartsAt.Before(out[j].Screening.StartsAt)
	})
	return out
}

// RevenueReport returns the total and per-showing average revenue of
// showings whose start falls inside [from, to].
func (r *StatsRepo) RevenueReport(from, to time.Time) (totalCents uint64, averageCents uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count uint64
	for _, st := range r.screenings {
		start := st.Screening.StartsAt
		if start.Before(from) || start.After(to) {
			continue
		}
		totalCents += st.RevenueCents
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return totalCents, totalCents / count
}

// Reset clears every aggregate.
func (r *StatsRepo) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetLocked()
}
