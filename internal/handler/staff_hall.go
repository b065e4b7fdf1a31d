package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// CreateHall handles POST /v1/admin/halls.  With overwrite=true an existing
// hall of the same name is replaced, keeping its ID.
func (h *StaffHandler) CreateHall(c echo.Context) error {
	var body struct {
		Name      string `json:"name"`
		Capacity  uint32 `json:"capacity"`
		Overwrite bool   `json:"overwrite"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	hall := &model.Hall{Name: strings.TrimSpace(body.Name), Capacity: body.Capacity}
	if err := h.Halls.Create(hall, body.Overwrite); err != nil {
		return writeDomainError(c, err)
	}
	h.Audit.Append(fmt.Sprintf("hall created: %s (capacity %d)", hall.Name, hall.Capacity), h.actor(c))
	return c.JSON(http.StatusCreated, hall)
}

// DeleteHall handles DELETE /v1/admin/halls/:id.  A hall with screenings
// still scheduled in it cannot be removed.
func (h *StaffHandler) DeleteHall(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if h.Films.HallInUse(id) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "hall has scheduled screenings"})
	}
	if err := h.Halls.Delete(id); err != nil {
		return writeDomainError(c, err)
	}
	h.Audit.Append(fmt.Sprintf("hall %d deleted", id), h.actor(c))
	return c.NoContent(http.StatusNoContent)
}

// ListHalls handles GET /v1/admin/halls.
func (h *StaffHandler) ListHalls(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Halls.List())
}

// GetHall handles GET /v1/admin/halls/:id.
func (h *StaffHandler) GetHall(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	hall, err := h.Halls.GetByID(id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, hall)
}
