package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/handler"
)

// RegisterPublic registers the guest-facing endpoints: catalog browsing,
// viewer registration, the loyalty program and the booking flow.  The
// read-only browse routes additionally sit behind the response cache; both
// middlewares pass requests through untouched when Redis is unavailable.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler, v *handler.ViewerHandler, bk *handler.BookingHandler, cache, limit echo.MiddlewareFunc) {
	browse := e.Group("/v1", limit, cache)
	browse.GET("/films", b.ListFilms)
	browse.GET("/films/:id", b.GetFilm)
	browse.GET("/films/:id/screenings", b.FilmScreenings)
	browse.GET("/screenings/availability", b.Availability)

	pub := e.Group("/v1", limit)
	pub.POST("/viewers", v.Register)
	pub.GET("/viewers/:id", v.Get)
	pub.GET("/viewers/:id/tickets", v.Tickets)
	pub.POST("/viewers/:id/loyalty", v.Enroll)
	pub.GET("/viewers/:id/loyalty", v.LoyaltyStatus)
	pub.POST("/viewers/:id/loyalty/claim", v.ClaimReward)

	pub.POST("/bookings/reserve", bk.Reserve)
	pub.POST("/bookings/cancel", bk.Cancel)
	pub.POST("/bookings/quote", bk.Quote)
	pub.POST("/bookings/purchase", bk.Purchase)
}
