package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/newsphere/content-service/internal/api/metrics"
	"github.com/newsphere/content-service/internal/core/ports"
)

// SubscriptionHandler handles entitlement reads and plan activation.
type SubscriptionHandler struct {
	service ports.SubscriptionService
}

func NewSubscriptionHandler(service ports.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

type activateRequest struct {
	Plan string `json:"plan" validate:"required,oneof=1m 5d 10d"`
}

type entitlementResponse struct {
	IsPremium      bool       `json:"is_premium"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	RemainingDays  int        `json:"remaining_days"`
	RemainingHours int        `json:"remaining_hours"`
}

type activateResponse struct {
	Plan      string    `json:"plan"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Entitlement handles GET /v1/subscription — the caller's premium status.
//
// @Summary      Get premium entitlement status
// @Tags         subscription
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entitlementResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/subscription [get]
func (h *SubscriptionHandler) Entitlement(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	ent, err := h.service.Entitlement(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entitlementResponse{
		IsPremium:      ent.IsPremium,
		ExpiresAt:      ent.ExpiresAt,
		RemainingDays:  ent.RemainingDays,
		RemainingHours: ent.RemainingHours,
	})
}

// Activate handles POST /v1/subscription/activate. Payment confirmation is
// the client's responsibility before calling this.
//
// @Summary      Activate a premium plan
// @Tags         subscription
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      activateRequest  true  "Plan identifier"
// @Success      200   {object}  activateResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/subscription/activate [post]
func (h *SubscriptionHandler) Activate(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req activateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	expiry, err := h.service.Activate(c.Request().Context(), principal, req.Plan)
	if err != nil {
		return err
	}

	metrics.SubscriptionsActivatedTotal.WithLabelValues(req.Plan).Inc()
	return c.JSON(http.StatusOK, activateResponse{Plan: req.Plan, ExpiresAt: expiry})
}
