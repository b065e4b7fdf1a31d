package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/config"
	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/queue"
	"github.com/iliyamo/cinema-box-office/internal/repository"
	queuepub "github.com/iliyamo/cinema-box-office/internal/service"
)

// BookingHandler serves seat reservations, cancellations and ticket sales.
// A sale runs the full pipeline: eligibility, pricing, payment, issuance,
// history, loyalty accrual, statistics and the ticket.issued event.
type BookingHandler struct {
	Cfg        config.Config
	Halls      *repository.HallRepo
	Films      *repository.FilmRepo
	Bookings   *repository.BookingRepo
	Promotions *repository.PromotionRepo
	Viewers    *repository.ViewerRepo
	Loyalty    *repository.LoyaltyProgram
	Stats      *repository.StatsRepo
}

// NewBookingHandler wires the booking endpoints to their stores.
func NewBookingHandler(cfg config.Config, halls *repository.HallRepo, films *repository.FilmRepo, bookings *repository.BookingRepo, promotions *repository.PromotionRepo, viewers *repository.ViewerRepo, loyalty *repository.LoyaltyProgram, stats *repository.StatsRepo) *BookingHandler {
	return &BookingHandler{
		Cfg:        cfg,
		Halls:      halls,
		Films:      films,
		Bookings:   bookings,
		Promotions: promotions,
		Viewers:    viewers,
		Loyalty:    loyalty,
		Stats:      stats,
	}
}

// showing resolves a request's film and screening against the catalog and
// returns the film plus the hall the screening runs in.
func (h *BookingHandler) showing(filmID uint64, s model.Screening) (*model.Film, *model.Hall, error) {
	film, err := h.Films.GetByID(filmID)
	if err != nil {
		return nil, nil, err
	}
	if !h.Films.HasScreening(filmID, s) {
		return nil, nil, repository.ErrScreeningNotFound
	}
	hall, err := h.Halls.GetByID(s.HallID)
	if err != nil {
		return nil, nil, err
	}
	return film, hall, nil
}

// Reserve handles POST /v1/bookings/reserve.  With dry_run=true the request
// is validated against capacity without reserving anything.
func (h *BookingHandler) Reserve(c echo.Context) error {
	var body struct {
		FilmID    uint64       `json:"film_id"`
		Screening screeningReq `json:"screening"`
		Seats     uint32       `json:"seats"`
		DryRun    bool         `json:"dry_run"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s := body.Screening.toModel()
	_, hall, err := h.showing(body.FilmID, s)
	if err != nil {
		return writeDomainError(c, err)
	}
	if err := h.Bookings.Reserve(hall, s, body.Seats, !body.DryRun); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"dry_run":   body.DryRun,
		"seats":     body.Seats,
		"available": h.Bookings.Available(hall, s),
	})
}

// Cancel handles POST /v1/bookings/cancel and releases reserved seats.
func (h *BookingHandler) Cancel(c echo.Context) error {
	var body struct {
		Screening screeningReq `json:"screening"`
		Seats     uint32       `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s := body.Screening.toModel()
	if err := h.Bookings.Cancel(s, body.Seats); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// purchaseReq is the wire shape of a ticket sale.  The base price is quoted
// per sale; the screening kind, any attached promotion and the ticket type
// then derive the final price in that order.
type purchaseReq struct {
	ViewerID       uint64        `json:"viewer_id"`
	FilmID         uint64        `json:"film_id"`
	Screening      screeningReq  `json:"screening"`
	Kind           string        `json:"kind"`
	TicketType     string        `json:"ticket_type"`
	BasePriceCents uint32        `json:"base_price_cents"`
	Payment        model.Payment `json:"payment"`
}

// price derives the final ticket price from the request and the promotion
// attached to the showing, if any.
func (r purchaseReq) price(promo *model.Promotion) (uint32, model.TicketType, error) {
	if r.BasePriceCents == 0 {
		return 0, "", model.ErrValidation
	}
	kind := model.ScreeningKind(strings.ToUpper(strings.TrimSpace(r.Kind)))
	if kind == "" {
		kind = model.KindRegular
	}
	cents, err := model.KindPriceCents(r.BasePriceCents, kind)
	if err != nil {
		return 0, "", err
	}
	if promo != nil {
		cents = promo.DiscountedCents(cents)
	}
	tt := model.TicketType(strings.ToUpper(strings.TrimSpace(r.TicketType)))
	cents, err = model.TicketPriceCents(cents, tt)
	if err != nil {
		return 0, "", err
	}
	return cents, tt, nil
}

// Quote handles POST /v1/bookings/quote and returns the price a purchase
// request would settle at, without selling anything.
func (h *BookingHandler) Quote(c echo.Context) error {
	var body purchaseReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s := body.Screening.toModel()
	if _, _, err := h.showing(body.FilmID, s); err != nil {
		return writeDomainError(c, err)
	}
	promo := h.Promotions.ForScreening(s)
	cents, tt, err := body.price(promo)
	if err != nil {
		return writeDomainError(c, err)
	}
	resp := echo.Map{
		"price_cents": cents,
		"ticket_type": tt,
	}
	if promo != nil {
		resp["promotion"] = promo.Name
	}
	return c.JSON(http.StatusOK, resp)
}

// Purchase handles POST /v1/bookings/purchase.  The viewer must meet the
// film's age rating and the payment must cover the derived price exactly.
// On success the ticket lands in the viewer's history, loyalty points
// accrue for enrolled members, the sale is folded into the statistics and a
// ticket.issued event is published.
func (h *BookingHandler) Purchase(c echo.Context) error {
	var body purchaseReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s := body.Screening.toModel()
	film, hall, err := h.showing(body.FilmID, s)
	if err != nil {
		return writeDomainError(c, err)
	}
	viewer, err := h.Viewers.GetByID(body.ViewerID)
	if err != nil {
		return writeDomainError(c, err)
	}
	if !viewer.CanWatch(film) {
		return c.JSON(http.StatusForbidden, echo.Map{
			"error": "viewer does not meet the age rating " + film.Rating,
		})
	}

	promo := h.Promotions.ForScreening(s)
	cents, tt, err := body.price(promo)
	if err != nil {
		return writeDomainError(c, err)
	}
	if err := body.Payment.Settle(cents); err != nil {
		return writeDomainError(c, err)
	}

	now := time.Now().UTC()
	ticket, err := h.Bookings.IssueTicket(hall, film.ID, s, tt, cents, now)
	if err != nil {
		return writeDomainError(c, err)
	}
	if err := h.Viewers.AddTicket(viewer.ID, *ticket); err != nil {
		return writeDomainError(c, err)
	}
	// Loyalty accrual only applies to enrolled members.
	if err := h.Loyalty.RecordPurchase(viewer.ID, cents); err != nil && err != repository.ErrNotMember {
		return writeDomainError(c, err)
	}
	h.Stats.RecordSale(ticket, hall.Capacity)

	event := queue.TicketIssuedEvent{
		TicketID:   ticket.ID,
		ViewerID:   viewer.ID,
		FilmID:     film.ID,
		FilmTitle:  film.Title,
		CinemaName: h.Cfg.CinemaName,
		HallID:     hall.ID,
		HallName:   hall.Name,
		StartsAt:   s.StartsAt.Format(time.RFC3339),
		TicketType: string(tt),
		SeatNumber: ticket.SeatNumber,
		PriceCents: cents,
		Method:     string(body.Payment.Method),
		IssuedAt:   now.Format(time.RFC3339),
	}
	if promo != nil {
		event.Promotion = promo.Name
	}
	// Fire and forget; a broker outage must not fail the sale.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queuepub.PublishTicketIssued(ctx, event)
	}()

	return c.JSON(http.StatusCreated, ticket)
}
