package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const HeaderRequestID = "X-Request-ID"

// RequestID assigns every request a unique id, honoring one supplied by
// the client, and echoes it back in the response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.New().String()
			}
			c.Set("request_id", id)
			c.Response().Header().Set(HeaderRequestID, id)
			return next(c)
		}
	}
}
