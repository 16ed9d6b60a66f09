package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/newsphere/content-service/internal/core/domain"
)

const principalKey = "principal"

// Auth verifies the bearer credential and injects the verified principal
// into the request context. It performs pure validation: signature and expiry
// against the pre-shared secret, plus presence of the sub and email claims.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credential")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credential")
			}

			subject, _ := claims["sub"].(string)
			email, _ := claims["email"].(string)
			if subject == "" || email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credential")
			}

			c.Set(principalKey, domain.Principal{Subject: subject, Email: email})

			return next(c)
		}
	}
}

// Principal extracts the verified principal injected by Auth.
func Principal(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}
