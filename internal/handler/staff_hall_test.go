package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/repository"
)

func newHallHandler(t *testing.T) *StaffHandler {
	t.Helper()
	return &StaffHandler{
		Halls: repository.NewHallRepo(),
		Films: repository.NewFilmRepo(),
		Staff: repository.NewStaffRepo(4),
		Audit: repository.NewAuditRepo(),
	}
}

func getWithID(t *testing.T, id string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestGetHall(t *testing.T) {
	h := newHallHandler(t)
	hall := &model.Hall{Name: "Main", Capacity: 120}
	require.NoError(t, h.Halls.Create(hall, false))

	c, rec := getWithID(t, "1")
	require.NoError(t, h.GetHall(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Hall
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Main", got.Name)

	// Unknown and malformed IDs.
	c, rec = getWithID(t, "42")
	require.NoError(t, h.GetHall(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = getWithID(t, "abc")
	require.NoError(t, h.GetHall(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
