package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newsphere/content-service/internal/api/middleware"
	"github.com/newsphere/content-service/internal/core/domain"
)

// ctxPrincipal extracts the verified principal injected by the Auth
// middleware. Its presence proves the middleware ran; a handler reached
// without it is a wiring error and rejects with 401.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.Principal(c)
	if !ok || p.Email == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}
