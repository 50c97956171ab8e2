package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Recovery returns middleware that recovers from panics, logs the stack
// trace, and responds with a 500.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}

					stack := make([]byte, 4<<10)
					length := runtime.Stack(stack, false)

					requestID, _ := c.Get("request_id").(string)
					logger.Error().
						Err(err).
						Str("request_id", requestID).
						Str("path", c.Request().URL.Path).
						Bytes("stack", stack[:length]).
						Msg("panic recovered")

					c.JSON(http.StatusInternalServerError, map[string]string{
						"error": "internal server error",
					})
				}
			}()
			return next(c)
		}
	}
}
