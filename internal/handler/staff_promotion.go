package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// CreatePromotion handles POST /v1/admin/promotions.
func (h *StaffHandler) CreatePromotion(c echo.Context) error {
	var body struct {
		Name            string    `json:"name"`
		DiscountPercent float64   `json:"discount_percent"`
		ExpiresAt       time.Time `json:"expires_at"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	p := &model.Promotion{
		Name:            strings.TrimSpace(body.Name),
		DiscountPercent: body.DiscountPercent,
		ExpiresAt:       body.ExpiresAt.UTC(),
	}
	if err := h.Promotions.Create(p); err != nil {
		return writeDomainError(c, err)
	}
	h.Audit.Append(fmt.Sprintf("promotion created: %q (%.1f%%)", p.Name, p.DiscountPercent), h.actor(c))
	return c.JSON(http.StatusCreated, p)
}

// ListPromotions handles GET /v1/admin/promotions.
func (h *StaffHandler) ListPromotions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Promotions.List())
}

// ApplyPromotion handles POST /v1/admin/promotions/:id/apply and attaches
// the promotion to one showing.  The showing must belong to the given film
// and must not carry a promotion already.
func (h *StaffHandler) ApplyPromotion(c echo.Context) error {
	promoID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		FilmID    uint64       `json:"film_id"`
		Screening screeningReq `json:"screening"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s := body.Screening.toModel()
	if !h.Films.HasScreening(body.FilmID, s) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
	}
	if err := h.Promotions.Apply(promoID, s, time.Now().UTC()); err != nil {
		return writeDomainError(c, err)
	}
	h.Audit.Append(fmt.Sprintf("promotion %d applied to %s", promoID, s), h.actor(c))
	return c.NoContent(http.StatusNoContent)
}

// RemovePromotion handles POST /v1/admin/promotions/remove and detaches
// whatever promotion a showing carries.
func (h *StaffHandler) RemovePromotion(c echo.Context) error {
	var body struct {
		Screening screeningReq `json:"screening"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s := body.Screening.toModel()
	if err := h.Promotions.Remove(s); err != nil {
		return writeDomainError(c, err)
	}
	h.Audit.Append(fmt.Sprintf("promotion removed from %s", s), h.actor(c))
	return c.NoContent(http.StatusNoContent)
}
