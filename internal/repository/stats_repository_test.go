package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

func soldTicket(s model.Screening, tt model.TicketType, priceCents uint32) *model.Ticket {
	return &model.Ticket{
		FilmID:      1,
		Screening:   s,
		Type:        tt,
		SeatNumber:  1,
		PriceCents:  priceCents,
		PurchasedAt: testNow,
	}
}

func TestRecordSaleAggregates(t *testing.T) {
	r := NewStatsRepo()
	s := at(1, 2)

	r.RecordSale(soldTicket(s, model.TicketRegular, 1000), 100)
	r.RecordSale(soldTicket(s, model.TicketVIP, 1500), 100)
	r.RecordSale(soldTicket(s, model.TicketChild, 500), 100)

	st := r.For(s)
	require.NotNil(t, st)
	assert.Equal(t, uint32(3), st.TicketsSold)
	assert.Equal(t, uint64(3000), st.RevenueCents)
	assert.Equal(t, uint32(1000), st.AveragePriceCents())
	assert.InDelta(t, 0.03, st.OccupancyRate(), 1e-9)

	assert.Nil(t, r.For(at(2, 2)))
}

func TestTypeDistribution(t *testing.T) {
	r := NewStatsRepo()
	s := at(1, 2)

	// No sales yet: every share is zero.
	dist := r.TypeDistribution()
	for _, tt := range model.TicketTypes() {
		assert.Zero(t, dist[tt])
	}

	r.RecordSale(soldTicket(s, model.TicketRegular, 1000), 100)
	r.RecordSale(soldTicket(s, model.TicketRegular, 1000), 100)
	r.RecordSale(soldTicket(s, model.TicketStudent, 800), 100)

	dist = r.TypeDistribution()
	assert.InDelta(t, 66.67, dist[model.TicketRegular], 1e-9)
	assert.InDelta(t, 33.33, dist[model.TicketStudent], 1e-9)
	assert.Zero(t, dist[model.TicketVIP])
}

func TestTopScreeningsByRevenue(t *testing.T) {
	r := NewStatsRepo()
	low := at(1, 2)
	high := at(2, 2)
	mid := at(3, 2)

	r.RecordSale(soldTicket(low, model.TicketChild, 500), 50)
	r.RecordSale(soldTicket(high, model.TicketVIP, 1500), 50)
	r.RecordSale(soldTicket(high, model.TicketVIP, 1500), 50)
	r.RecordSale(soldTicket(mid, model.TicketRegular, 1000), 50)

	top := r.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, uint64(3000), top[0].RevenueCents)
	assert.Equal(t, uint64(1000), top[1].RevenueCents)

	all := r.Top(0)
	assert.Len(t, all, 3)
}

func TestOccupancyAndRevenueReports(t *testing.T) {
	r := NewStatsRepo()
	early := at(1, 1)
	late := at(1, 48)

	r.RecordSale(soldTicket(early, model.TicketRegular, 1000), 10)
	r.RecordSale(soldTicket(early, model.TicketRegular, 1000), 10)
	r.RecordSale(soldTicket(late, model.TicketRegular, 2000), 10)

	from := testNow
	to := testNow.Add(24 * time.Hour)

	occ := r.OccupancyReport(from, to)
	require.Len(t, occ, 1)
	assert.InDelta(t, 0.2, occ[0].OccupancyRate(), 1e-9)

	total, avg := r.RevenueReport(from, to)
	assert.Equal(t, uint64(2000), total)
	assert.Equal(t, uint64(2000), avg)

	total, avg = r.RevenueReport(from, testNow.Add(72*time.Hour))
	assert.Equal(t, uint64(4000), total)
	assert.Equal(t, uint64(2000), avg)

	total, avg = r.RevenueReport(testNow.Add(100*time.Hour), testNow.Add(200*time.Hour))
	assert.Zero(t, total)
	assert.Zero(t, avg)
}

func TestStatsReset(t *testing.T) {
	r := NewStatsRepo()
	s := at(1, 2)
	r.RecordSale(soldTicket(s, model.TicketRegular, 1000), 100)
	require.NotNil(t, r.For(s))

	r.Reset()
	assert.Nil(t, r.For(s))
	assert.Empty(t, r.Top(0))
}
