package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

func TestViewerCreateUniqueEmail(t *testing.T) {
	r := NewViewerRepo()

	v := &model.Viewer{Name: "Dana", Email: "dana@example.com", Age: 30}
	require.NoError(t, r.Create(v))
	assert.Equal(t, uint64(1), v.ID)
	assert.False(t, v.RegisteredAt.IsZero())

	dup := &model.Viewer{Name: "Other", Email: "dana@example.com", Age: 25}
	assert.ErrorIs(t, r.Create(dup), ErrConflict)

	bad := &model.Viewer{Name: "NoMail", Email: "nope", Age: 25}
	assert.ErrorIs(t, r.Create(bad), model.ErrValidation)
}

func TestViewerAddTicketPersists(t *testing.T) {
	r := NewViewerRepo()
	v := &model.Viewer{Name: "Dana", Email: "dana@example.com", Age: 30}
	require.NoError(t, r.Create(v))

	tk := model.Ticket{
		ID:         1,
		FilmID:     4,
		Screening:  at(1, 2),
		Type:       model.TicketRegular,
		SeatNumber: 1,
		PriceCents: 1000,
	}
	require.NoError(t, r.AddTicket(v.ID, tk))
	assert.ErrorIs(t, r.AddTicket(99, tk), ErrViewerNotFound)

	got, err := r.GetByID(v.ID)
	require.NoError(t, err)
	require.Len(t, got.PurchaseHistory, 1)
	assert.Equal(t, model.PointsPerTicket, got.LoyaltyPoints)

	// The returned copy is detached from the stored viewer.
	got.PurchaseHistory[0].PriceCents = 9
	again, _ := r.GetByID(v.ID)
	assert.Equal(t, uint32(1000), again.PurchaseHistory[0].PriceCents)
}

func TestViewerListStripsHistories(t *testing.T) {
	r := NewViewerRepo()
	v := &model.Viewer{Name: "Dana", Email: "dana@example.com", Age: 30}
	require.NoError(t, r.Create(v))
	require.NoError(t, r.AddTicket(v.ID, model.Ticket{
		FilmID: 1, Screening: at(1, 2), Type: model.TicketRegular, SeatNumber: 1, PriceCents: 1000,
	}))

	list := r.List()
	require.Len(t, list, 1)
	assert.Nil(t, list[0].PurchaseHistory)
	assert.Equal(t, model.PointsPerTicket, list[0].LoyaltyPoints)
}
