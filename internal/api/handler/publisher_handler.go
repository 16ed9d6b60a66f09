package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newsphere/content-service/internal/core/domain"
	"github.com/newsphere/content-service/internal/core/ports"
)

// PublisherHandler handles the publisher registry.
type PublisherHandler struct {
	service ports.PublisherService
}

func NewPublisherHandler(service ports.PublisherService) *PublisherHandler {
	return &PublisherHandler{service: service}
}

type createPublisherRequest struct {
	Name string `json:"name" validate:"required"`
	Logo string `json:"logo"`
}

type publisherResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

func toPublisherResponse(p *domain.Publisher) publisherResponse {
	return publisherResponse{ID: p.ID, Name: p.Name, Logo: p.Logo}
}

// List handles GET /publishers.
//
// @Summary      List publishers
// @Tags         publishers
// @Produce      json
// @Success      200  {array}  publisherResponse
// @Router       /publishers [get]
func (h *PublisherHandler) List(c echo.Context) error {
	publishers, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]publisherResponse, 0, len(publishers))
	for _, p := range publishers {
		out = append(out, toPublisherResponse(p))
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /v1/admin/publishers.
//
// @Summary      Register a publisher
// @Tags         publishers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPublisherRequest  true  "Publisher details"
// @Success      201   {object}  publisherResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/admin/publishers [post]
func (h *PublisherHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createPublisherRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	publisher, err := h.service.Create(c.Request().Context(), principal, req.Name, req.Logo)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPublisherResponse(publisher))
}
