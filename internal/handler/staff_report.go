package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// screeningStatsResp extends the stored aggregates with the derived
// averages for the wire.
type screeningStatsResp struct {
	Screening    screeningReq `json:"screening"`
	TicketsSold  uint32       `json:"tickets_sold"`
	RevenueCents uint64       `json:"revenue_cents"`
	AveragePrice uint32       `json:"average_price_cents"`
	Occupancy    float64      `json:"occupancy_rate"`
}

// ScreeningStats handles GET /v1/admin/reports/screening and returns the
// sales aggregates for one showing.
func (h *StaffHandler) ScreeningStats(c echo.Context) error {
	var body screeningReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	st := h.Stats.For(body.toModel())
	if st == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no sales recorded for screening"})
	}
	return c.JSON(http.StatusOK, screeningStatsResp{
		Screening:    screeningReq{HallID: st.Screening.HallID, StartsAt: st.Screening.StartsAt},
		TicketsSold:  st.TicketsSold,
		RevenueCents: st.RevenueCents,
		AveragePrice: st.AveragePriceCents(),
		Occupancy:    st.OccupancyRate(),
	})
}

// TopScreenings handles GET /v1/admin/reports/top?limit=N, highest revenue
// first.
func (h *StaffHandler) TopScreenings(c echo.Context) error {
	limit := 5
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	top := h.Stats.Top(limit)
	out := make([]screeningStatsResp, 0, len(top))
	for _, st := range top {
		out = append(out, screeningStatsResp{
			Screening:    screeningReq{HallID: st.Screening.HallID, StartsAt: st.Screening.StartsAt},
			TicketsSold:  st.TicketsSold,
			RevenueCents: st.RevenueCents,
			AveragePrice: st.AveragePriceCents(),
			Occupancy:    st.OccupancyRate(),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// TypeDistribution handles GET /v1/admin/reports/ticket-types and returns
// the share of each ticket type in percent.
func (h *StaffHandler) TypeDistribution(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Stats.TypeDistribution())
}

// reportRange parses the from/to query parameters shared by the date-range
// reports.
func reportRange(c echo.Context) (time.Time, time.Time, bool) {
	from, err1 := time.Parse(time.RFC3339, c.QueryParam("from"))
	to, err2 := time.Parse(time.RFC3339, c.QueryParam("to"))
	if err1 != nil || err2 != nil || to.Before(from) {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// OccupancyReport handles GET /v1/admin/reports/occupancy?from=..&to=..
func (h *StaffHandler) OccupancyReport(c echo.Context) error {
	from, to, ok := reportRange(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from/to must be RFC3339 with to >= from"})
	}
	stats := h.Stats.OccupancyReport(from, to)
	out := make([]screeningStatsResp, 0, len(stats))
	for _, st := range stats {
		out = append(out, screeningStatsResp{
			Screening:    screeningReq{HallID: st.Screening.HallID, StartsAt: st.Screening.StartsAt},
			TicketsSold:  st.TicketsSold,
			RevenueCents: st.RevenueCents,
			AveragePrice: st.AveragePriceCents(),
			Occupancy:    st.OccupancyRate(),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// RevenueReport handles GET /v1/admin/reports/revenue?from=..&to=..
func (h *StaffHandler) RevenueReport(c echo.Context) error {
	from, to, ok := reportRange(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from/to must be RFC3339 with to >= from"})
	}
	total, avg := h.Stats.RevenueReport(from, to)
	return c.JSON(http.StatusOK, echo.Map{
		"total_cents":   total,
		"average_cents": avg,
	})
}

// ResetStats handles POST /v1/admin/reports/reset.
func (h *StaffHandler) ResetStats(c echo.Context) error {
	h.Stats.Reset()
	h.Audit.Append("statistics reset", h.actor(c))
	return c.NoContent(http.StatusNoContent)
}

// AuditLog handles GET /v1/admin/audit.  Only active staff accounts may
// read the log.
func (h *StaffHandler) AuditLog(c echo.Context) error {
	id, err := getStaffID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u, err := h.Staff.GetByID(id)
	if err != nil {
		return writeDomainError(c, err)
	}
	entries, err := h.Audit.List(u)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}
