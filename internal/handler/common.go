package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/repository"
)

// getStaffID extracts the authenticated staff ID stored in the context by
// the JWT middleware.  The claim arrives as whatever type the JWT decoder
// produced, usually float64.
func getStaffID(c echo.Context) (uint64, error) {
	switch v := c.Get("staff_id").(type) {
	case float64:
		return uint64(v), nil
	case uint64:
		return v, nil
	case string:
		return strconv.ParseUint(v, 10, 64)
	}
	return 0, errors.New("no staff id in context")
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// screeningReq is the wire shape used everywhere a request addresses one
// showing.
type screeningReq struct {
	HallID   uint64    `json:"hall_id"`
	StartsAt time.Time `json:"starts_at"`
}

func (r screeningReq) toModel() model.Screening {
	return model.Screening{HallID: r.HallID, StartsAt: r.StartsAt.UTC()}
}

// writeDomainError translates a repository/model error into an HTTP
// response.  Every handler funnels its failures through here so the status
// mapping stays in one place.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrPayment):
		return c.JSON(http.StatusPaymentRequired, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrFilmNotFound),
		errors.Is(err, repository.ErrHallNotFound),
		errors.Is(err, repository.ErrViewerNotFound),
		errors.Is(err, repository.ErrScreeningNotFound),
		errors.Is(err, repository.ErrPromotionNotFound),
		errors.Is(err, repository.ErrStaffNotFound),
		errors.Is(err, repository.ErrNotMember):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrScheduleConflict),
		errors.Is(err, repository.ErrCapacityExceeded),
		errors.Is(err, repository.ErrNotReserved),
		errors.Is(err, repository.ErrConflict),
		errors.Is(err, repository.ErrRewardCooldown):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrInsufficientPoints):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
