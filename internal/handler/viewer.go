package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/repository"
)

// ViewerHandler serves viewer registration, profile lookups and the loyalty
// program endpoints.
type ViewerHandler struct {
	Viewers *repository.ViewerRepo
	Loyalty *repository.LoyaltyProgram
}

// NewViewerHandler wires the viewer endpoints to their stores.
func NewViewerHandler(viewers *repository.ViewerRepo, loyalty *repository.LoyaltyProgram) *ViewerHandler {
	return &ViewerHandler{Viewers: viewers, Loyalty: loyalty}
}

// Register handles POST /v1/viewers.
func (h *ViewerHandler) Register(c echo.Context) error {
	var body struct {
		Name           string   `json:"name"`
		Email          string   `json:"email"`
		Age            int      `json:"age"`
		FavoriteGenres []string `json:"favorite_genres"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	v := &model.Viewer{
		Name:           strings.TrimSpace(body.Name),
		Email:          strings.ToLower(strings.TrimSpace(body.Email)),
		Age:            body.Age,
		FavoriteGenres: body.FavoriteGenres,
	}
	if err := h.Viewers.Create(v); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

// viewerResp adds the derived history figures to the stored viewer.
type viewerResp struct {
	*model.Viewer
	LoyaltyStatus   string   `json:"loyalty_status"`
	TotalSpentCents uint64   `json:"total_spent_cents"`
	FavoriteFilmIDs []uint64 `json:"favorite_film_ids,omitempty"`
}

// Get handles GET /v1/viewers/:id.
func (h *ViewerHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	v, err := h.Viewers.GetByID(id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, viewerResp{
		Viewer:          v,
		LoyaltyStatus:   v.LoyaltyStatus(),
		TotalSpentCents: v.TotalSpentCents(),
		FavoriteFilmIDs: v.FavoriteFilmIDs(),
	})
}

// Tickets handles GET /v1/viewers/:id/tickets.  With ?film_id=N only the
// tickets for that film are returned.
func (h *ViewerHandler) Tickets(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	v, err := h.Viewers.GetByID(id)
	if err != nil {
		return writeDomainError(c, err)
	}
	tickets := v.PurchaseHistory
	if raw := c.QueryParam("film_id"); raw != "" {
		filmID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid film_id"})
		}
		tickets = v.TicketsForFilm(filmID)
	}
	if tickets == nil {
		tickets = []model.Ticket{}
	}
	return c.JSON(http.StatusOK, tickets)
}

// Enroll handles POST /v1/viewers/:id/loyalty and adds the viewer to the
// loyalty program at bronze tier.
func (h *ViewerHandler) Enroll(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.Viewers.GetByID(id); err != nil {
		return writeDomainError(c, err)
	}
	m, err := h.Loyalty.Enroll(id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// LoyaltyStatus handles GET /v1/viewers/:id/loyalty and returns the member
// state together with the rewards claimable right now.
func (h *ViewerHandler) LoyaltyStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	m, err := h.Loyalty.Member(id)
	if err != nil {
		return writeDomainError(c, err)
	}
	available, err := h.Loyalty.AvailableRewards(id, time.Now().UTC())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"member":            m,
		"available_rewards": available,
	})
}

// ClaimReward handles POST /v1/viewers/:id/loyalty/claim.
func (h *ViewerHandler) ClaimReward(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Reward string `json:"reward"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	reward := model.RewardType(strings.ToUpper(strings.TrimSpace(body.Reward)))
	if err := h.Loyalty.Claim(id, reward, time.Now().UTC()); err != nil {
		return writeDomainError(c, err)
	}
	m, err := h.Loyalty.Member(id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}
