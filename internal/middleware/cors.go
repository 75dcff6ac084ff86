package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CORS attaches the permissive cross-origin headers the map client
// relies on to every response, errors included, and short-circuits
// preflight OPTIONS requests with a bare 200. Echo's bundled CORS
// middleware answers preflights with 204, so the original contract
// (200, no body) is kept with this small hand-rolled version instead.
func CORS() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}
