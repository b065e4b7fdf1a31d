package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SetStaffActive handles PATCH /v1/admin/staff/:id/active and toggles an
// account.  Deactivated accounts cannot log in, refresh or read the audit
// log; deactivation does not revoke already issued access tokens, which
// simply expire.
func (h *StaffHandler) SetStaffActive(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Staff.SetActive(id, body.Active); err != nil {
		return writeDomainError(c, err)
	}
	h.Audit.Append(fmt.Sprintf("staff %d active=%t", id, body.Active), h.actor(c))
	return c.NoContent(http.StatusNoContent)
}

// ListViewers handles GET /v1/admin/viewers.  Purchase histories are
// omitted; staff drill into a single viewer through the public endpoint.
func (h *StaffHandler) ListViewers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Viewers.List())
}
