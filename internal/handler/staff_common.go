package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/config"
	"github.com/iliyamo/cinema-box-office/internal/repository"
)

// StaffHandler aggregates everything the catalog administration endpoints
// touch: the catalogs themselves, reporting, the audit log and the staff
// registry (for audit attribution).
type StaffHandler struct {
	Cfg        config.Config
	Halls      *repository.HallRepo
	Films      *repository.FilmRepo
	Bookings   *repository.BookingRepo
	Promotions *repository.PromotionRepo
	Viewers    *repository.ViewerRepo
	Stats      *repository.StatsRepo
	Staff      *repository.StaffRepo
	Audit      *repository.AuditRepo
}

// actor resolves the authenticated staff account for audit entries.  When
// resolution fails the operation is still logged, just anonymously; the
// JWT middleware already established that the caller is staff.
func (h *StaffHandler) actor(c echo.Context) string {
	id, err := getStaffID(c)
	if err != nil {
		return "unknown"
	}
	u, err := h.Staff.GetByID(id)
	if err != nil {
		return "unknown"
	}
	return u.Username
}
