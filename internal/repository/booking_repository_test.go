package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

func testHall(capacity uint32) *model.Hall {
	return &model.Hall{ID: 1, Name: "Main", Capacity: capacity}
}

func TestReserveEnforcesCapacity(t *testing.T) {
	r := NewBookingRepo()
	hall := testHall(10)
	s := at(1, 2)

	require.NoError(t, r.Reserve(hall, s, 6, true))
	assert.Equal(t, uint32(6), r.Reserved(s))

	assert.ErrorIs(t, r.Reserve(hall, s, 5, true), ErrCapacityExceeded)
	require.NoError(t, r.Reserve(hall, s, 4, true))
	assert.Equal(t, uint32(10), r.Reserved(s))
	assert.Equal(t, uint32(0), r.Available(hall, s))

	assert.ErrorIs(t, r.Reserve(hall, s, 1, true), ErrCapacityExceeded)
}

func TestReserveDryRunLeavesLedgerUntouched(t *testing.T) {
	r := NewBookingRepo()
	hall := testHall(10)
	s := at(1, 2)

	require.NoError(t, r.Reserve(hall, s, 10, false))
	assert.Equal(t, uint32(0), r.Reserved(s))

	// A dry run still reports a capacity violation.
	require.NoError(t, r.Reserve(hall, s, 8, true))
	assert.ErrorIs(t, r.Reserve(hall, s, 3, false), ErrCapacityExceeded)
	assert.Equal(t, uint32(8), r.Reserved(s))
}

func TestReserveValidatesInput(t *testing.T) {
	r := NewBookingRepo()
	hall := testHall(10)
	s := at(1, 2)

	assert.ErrorIs(t, r.Reserve(hall, s, 0, true), model.ErrValidation)
	assert.ErrorIs(t, r.Reserve(nil, s, 1, true), ErrHallNotFound)

	wrongHall := testHall(10)
	wrongHall.ID = 2
	assert.ErrorIs(t, r.Reserve(wrongHall, s, 1, true), ErrHallNotFound)
}

func TestReserveAfterHallShrink(t *testing.T) {
	r := NewBookingRepo()
	big := testHall(100)
	s := at(1, 2)
	require.NoError(t, r.Reserve(big, s, 50, true))

	// Staff re-registered the hall with a smaller capacity; the ledger row
	// survives.  No further seats may be sold, large or small.
	small := testHall(10)
	assert.ErrorIs(t, r.Reserve(small, s, 1000, true), ErrCapacityExceeded)
	assert.ErrorIs(t, r.Reserve(small, s, 1, true), ErrCapacityExceeded)
	assert.Equal(t, uint32(50), r.Reserved(s))
	assert.Equal(t, uint32(0), r.Available(small, s))

	_, err := r.IssueTicket(small, 1, s, model.TicketRegular, 1000, testNow)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// Cancelling back under the new capacity reopens sales.
	require.NoError(t, r.Cancel(s, 45))
	require.NoError(t, r.Reserve(small, s, 5, true))
	assert.Equal(t, uint32(10), r.Reserved(s))
}

func TestCancelReleasesExactlyWhatWasReserved(t *testing.T) {
	r := NewBookingRepo()
	hall := testHall(10)
	s := at(1, 2)

	require.NoError(t, r.Reserve(hall, s, 7, true))
	require.NoError(t, r.Cancel(s, 3))
	assert.Equal(t, uint32(4), r.Reserved(s))
	assert.Equal(t, uint32(6), r.Available(hall, s))

	assert.ErrorIs(t, r.Cancel(s, 5), ErrNotReserved)
	assert.Equal(t, uint32(4), r.Reserved(s))

	require.NoError(t, r.Cancel(s, 4))
	assert.Equal(t, uint32(0), r.Reserved(s))
	assert.ErrorIs(t, r.Cancel(s, 1), ErrNotReserved)
	assert.ErrorIs(t, r.Cancel(s, 0), model.ErrValidation)
}

func TestIssueTicketCountsSeats(t *testing.T) {
	r := NewBookingRepo()
	hall := testHall(2)
	s := at(1, 2)

	t1, err := r.IssueTicket(hall, 1, s, model.TicketRegular, 1000, testNow)
	require.NoError(t, err)
	t2, err := r.IssueTicket(hall, 1, s, model.TicketVIP, 1500, testNow)
	require.NoError(t, err)

	assert.Equal(t, uint32(1), t1.SeatNumber)
	assert.Equal(t, uint32(2), t2.SeatNumber)
	assert.Equal(t, uint64(1), t1.ID)
	assert.Equal(t, uint64(2), t2.ID)

	_, err = r.IssueTicket(hall, 1, s, model.TicketRegular, 1000, testNow)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestIssueTicketRejectsInvalid(t *testing.T) {
	r := NewBookingRepo()
	hall := testHall(5)
	s := at(1, 2)

	_, err := r.IssueTicket(hall, 1, s, model.TicketType("BALCONY"), 1000, testNow)
	assert.ErrorIs(t, err, model.ErrValidation)
	// A rejected ticket must not consume a seat.
	assert.Equal(t, uint32(0), r.Reserved(s))

	_, err = r.IssueTicket(nil, 1, s, model.TicketRegular, 1000, testNow)
	assert.ErrorIs(t, err, ErrHallNotFound)
}

func TestBookingExportRestore(t *testing.T) {
	r := NewBookingRepo()
	hall := testHall(10)
	s1 := at(1, 2)
	s2 := at(1, 6)
	require.NoError(t, r.Reserve(hall, s1, 3, true))
	require.NoError(t, r.Reserve(hall, s2, 5, true))

	records := r.Export()
	require.Len(t, records, 2)

	fresh := NewBookingRepo()
	fresh.Restore(records)
	assert.Equal(t, uint32(3), fresh.Reserved(s1))
	assert.Equal(t, uint32(5), fresh.Reserved(s2))
}
