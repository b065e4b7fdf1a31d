package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/repository"
)

// BrowseHandler serves the public, read-only catalog endpoints.  These are
// the routes the response cache sits in front of.
type BrowseHandler struct {
	Halls      *repository.HallRepo
	Films      *repository.FilmRepo
	Bookings   *repository.BookingRepo
	Promotions *repository.PromotionRepo
}

// NewBrowseHandler wires the browse endpoints to the catalogs.
func NewBrowseHandler(halls *repository.HallRepo, films *repository.FilmRepo, bookings *repository.BookingRepo, promotions *repository.PromotionRepo) *BrowseHandler {
	return &BrowseHandler{Halls: halls, Films: films, Bookings: bookings, Promotions: promotions}
}

// ListFilms handles GET /v1/films.
func (h *BrowseHandler) ListFilms(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Films.List())
}

// GetFilm handles GET /v1/films/:id.
func (h *BrowseHandler) GetFilm(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	film, err := h.Films.GetByID(id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, film)
}

// showingResp is one screening as the public sees it: where and when, how
// many seats are left, and any promotion currently attached.
type showingResp struct {
	HallID          uint64    `json:"hall_id"`
	HallName        string    `json:"hall_name"`
	StartsAt        time.Time `json:"starts_at"`
	AvailableSeats  uint32    `json:"available_seats"`
	Promotion       string    `json:"promotion,omitempty"`
	DiscountPercent float64   `json:"discount_percent,omitempty"`
}

// FilmScreenings handles GET /v1/films/:id/screenings.  By default only
// upcoming showings are listed; ?all=true includes past ones.
func (h *BrowseHandler) FilmScreenings(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	list, err := h.Films.Upcoming(id, time.Now().UTC())
	if c.QueryParam("all") == "true" {
		list, err = h.Films.Screenings(id)
	}
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]showingResp, 0, len(list))
	for _, s := range list {
		row := showingResp{HallID: s.HallID, StartsAt: s.StartsAt}
		if hall, err := h.Halls.GetByID(s.HallID); err == nil {
			row.HallName = hall.Name
			row.AvailableSeats = h.Bookings.Available(hall, s)
		}
		if p := h.Promotions.ForScreening(s); p != nil {
			row.Promotion = p.Name
			row.DiscountPercent = p.DiscountPercent
		}
		out = append(out, row)
	}
	return c.JSON(http.StatusOK, out)
}

// Availability handles GET /v1/screenings/availability?hall_id=..&starts_at=..
// and returns the seat counts for one showing.
func (h *BrowseHandler) Availability(c echo.Context) error {
	hallID, err := strconv.ParseUint(c.QueryParam("hall_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall_id"})
	}
	startsAt, err := time.Parse(time.RFC3339, c.QueryParam("starts_at"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be RFC3339"})
	}
	hall, err := h.Halls.GetByID(hallID)
	if err != nil {
		return writeDomainError(c, err)
	}
	s := screeningReq{HallID: hallID, StartsAt: startsAt}.toModel()
	reserved := h.Bookings.Reserved(s)
	return c.JSON(http.StatusOK, echo.Map{
		"capacity":  hall.Capacity,
		"reserved":  reserved,
		"available": h.Bookings.Available(hall, s),
	})
}
