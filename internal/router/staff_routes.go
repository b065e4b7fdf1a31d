package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/handler"
	"github.com/iliyamo/cinema-box-office/internal/middleware"
	"github.com/iliyamo/cinema-box-office/internal/model"
)

// RegisterStaff registers the administration endpoints under /v1/admin.
// Every route requires a staff JWT; snapshot handling and the statistics
// reset are reserved for the manager.
func RegisterStaff(e *echo.Echo, s *handler.StaffHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	admin := e.Group("/v1/admin",
		limit,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleManager, model.RoleStaff),
	)

	admin.POST("/halls", s.CreateHall)
	admin.GET("/halls", s.ListHalls)
	admin.GET("/halls/:id", s.GetHall)
	admin.DELETE("/halls/:id", s.DeleteHall)

	admin.POST("/films", s.CreateFilm)
	admin.GET("/films", s.ListFilms)
	admin.DELETE("/films/:id", s.DeleteFilm)
	admin.POST("/films/:id/screenings", s.AddScreening)
	admin.GET("/films/:id/screenings", s.ListScreenings)
	admin.DELETE("/films/:id/screenings", s.RemoveScreening)

	admin.POST("/promotions", s.CreatePromotion)
	admin.GET("/promotions", s.ListPromotions)
	admin.POST("/promotions/:id/apply", s.ApplyPromotion)
	admin.POST("/promotions/remove", s.RemovePromotion)

	// The per-screening lookup takes the screening in the body, hence POST.
	admin.POST("/reports/screening", s.ScreeningStats)
	admin.GET("/reports/top", s.TopScreenings)
	admin.GET("/reports/ticket-types", s.TypeDistribution)
	admin.GET("/reports/occupancy", s.OccupancyReport)
	admin.GET("/reports/revenue", s.RevenueReport)

	admin.GET("/audit", s.AuditLog)
	admin.GET("/viewers", s.ListViewers)

	mgr := admin.Group("", middleware.RequireRole(model.RoleManager))
	mgr.PATCH("/staff/:id/active", s.SetStaffActive)
	mgr.POST("/reports/reset", s.ResetStats)
	mgr.POST("/snapshot/save", s.SaveSnapshot)
	mgr.POST("/snapshot/load", s.LoadSnapshot)
}
