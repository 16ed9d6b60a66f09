package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newsphere/content-service/internal/core/ports"
)

// PaymentHandler creates payment authorizations through the provider port.
type PaymentHandler struct {
	provider ports.PaymentProvider
}

func NewPaymentHandler(provider ports.PaymentProvider) *PaymentHandler {
	return &PaymentHandler{provider: provider}
}

type createIntentRequest struct {
	// Amount in the smallest currency unit (e.g. cents).
	Amount   int64  `json:"amount"   validate:"required,gt=0"`
	Currency string `json:"currency" validate:"required,len=3"`
}

type createIntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
}

// CreateIntent handles POST /v1/payments/intent.
//
// @Summary      Create a payment authorization
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createIntentRequest  true  "Amount and currency"
// @Success      201   {object}  createIntentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/payments/intent [post]
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	if _, err := ctxPrincipal(c); err != nil {
		return err
	}

	var req createIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	intent, err := h.provider.CreateIntent(c.Request().Context(), req.Amount, req.Currency)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createIntentResponse{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
	})
}
