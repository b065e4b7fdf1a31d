package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/store"
)

// SaveSnapshot handles POST /v1/admin/snapshot/save and writes the current
// catalog state (halls, films with screenings, reservation counts) to the
// configured snapshot path.
func (h *StaffHandler) SaveSnapshot(c echo.Context) error {
	if h.Cfg.SnapshotPath == "" {
		return c.JSON(http.StatusNotImplemented, echo.Map{"error": "snapshot path not configured"})
	}
	snap := store.Capture(h.Cfg.CinemaName, h.Halls, h.Films, h.Bookings)
	if err := store.Save(h.Cfg.SnapshotPath, snap); err != nil {
		log.Printf("snapshot save failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "snapshot save failed"})
	}
	h.Audit.Append(fmt.Sprintf("snapshot saved to %s", h.Cfg.SnapshotPath), h.actor(c))
	return c.JSON(http.StatusOK, echo.Map{
		"saved_at": snap.Meta.SavedAt,
		"halls":    len(snap.Halls),
		"films":    len(snap.Films),
	})
}

// LoadSnapshot handles POST /v1/admin/snapshot/load and replaces the live
// catalog with the snapshot on disk.  Statistics and the audit log are not
// part of the snapshot and survive the restore.
func (h *StaffHandler) LoadSnapshot(c echo.Context) error {
	if h.Cfg.SnapshotPath == "" {
		return c.JSON(http.StatusNotImplemented, echo.Map{"error": "snapshot path not configured"})
	}
	snap, err := store.Load(h.Cfg.SnapshotPath)
	if err != nil {
		log.Printf("snapshot load failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "snapshot load failed"})
	}
	snap.Apply(h.Halls, h.Films, h.Bookings)
	h.Audit.Append(fmt.Sprintf("snapshot loaded from %s", h.Cfg.SnapshotPath), h.actor(c))
	return c.JSON(http.StatusOK, echo.Map{
		"saved_at": snap.Meta.SavedAt,
		"name":     snap.Meta.Name,
		"halls":    len(snap.Halls),
		"films":    len(snap.Films),
	})
}
