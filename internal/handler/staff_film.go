package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// CreateFilm handles POST /v1/admin/films.
func (h *StaffHandler) CreateFilm(c echo.Context) error {
	var body struct {
		Title       string   `json:"title"`
		DurationMin uint32   `json:"duration_min"`
		Rating      string   `json:"rating"`
		Genres      []string `json:"genres"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	film := &model.Film{
		Title:       strings.TrimSpace(body.Title),
		DurationMin: body.DurationMin,
		Rating:      strings.TrimSpace(body.Rating),
		Genres:      body.Genres,
	}
	if err := h.Films.Create(film); err != nil {
		return writeDomainError(c, err)
	}
	h.Audit.Append(fmt.Sprintf("film created: %q (%s, %d min)", film.Title, film.Rating, film.DurationMin), h.actor(c))
	return c.JSON(http.StatusCreated, film)
}

// DeleteFilm handles DELETE /v1/admin/films/:id and removes the film with
// all of its screenings.
func (h *StaffHandler) DeleteFilm(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Films.Delete(id); err != nil {
		return writeDomainError(c, err)
	}
	h.Audit.Append(fmt.Sprintf("film %d deleted", id), h.actor(c))
	return c.NoContent(http.StatusNoContent)
}

// ListFilms handles GET /v1/admin/films.
func (h *StaffHandler) ListFilms(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Films.List())
}

// AddScreening handles POST /v1/admin/films/:id/screenings.  The hall must
// exist and the slot must be free of overlaps across all films.
func (h *StaffHandler) AddScreening(c echo.Context) error {
	filmID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body screeningReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s := body.toModel()
	if _, err := h.Halls.GetByID(s.HallID); err != nil {
		return writeDomainError(c, err)
	}
	if err := h.Films.AddScreening(filmID, s, time.Now().UTC()); err != nil {
		return writeDomainError(c, err)
	}
	h.Audit.Append(fmt.Sprintf("screening added: film %d, %s", filmID, s), h.actor(c))
	return c.JSON(http.StatusCreated, s)
}

// RemoveScreening handles DELETE /v1/admin/films/:id/screenings.  Showings
// with live reservations keep their seats; the booking ledger is not
// touched here so a re-added screening sees the same counts.
func (h *StaffHandler) RemoveScreening(c echo.Context) error {
	filmID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body screeningReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s := body.toModel()
	if err := h.Films.RemoveScreening(filmID, s); err != nil {
		return writeDomainError(c, err)
	}
	h.Audit.Append(fmt.Sprintf("screening removed: film %d, %s", filmID, s), h.actor(c))
	return c.NoContent(http.StatusNoContent)
}

// ListScreenings handles GET /v1/admin/films/:id/screenings.  With
// ?upcoming=true only future showings are returned.
func (h *StaffHandler) ListScreenings(c echo.Context) error {
	filmID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var list []model.Screening
	if c.QueryParam("upcoming") == "true" {
		list, err = h.Films.Upcoming(filmID, time.Now().UTC())
	} else {
		list, err = h.Films.Screenings(filmID)
	}
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
