package routes

import (
	"time"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response shape for every read operation: success
// flag, payload, item count where applicable, and elapsed processing time.
// On failure, success is false and an error message replaces the payload.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	TookMs  int64  `json:"took_ms"`
	Error   string `json:"error,omitempty"`
}

func ok(c echo.Context, start time.Time, data any) error {
	return c.JSON(200, Envelope{
		Success: true,
		Data:    data,
		TookMs:  time.Since(start).Milliseconds(),
	})
}

func okCount(c echo.Context, start time.Time, data any, count int) error {
	return c.JSON(200, Envelope{
		Success: true,
		Data:    data,
		Count:   &count,
		TookMs:  time.Since(start).Milliseconds(),
	})
}

func fail(c echo.Context, start time.Time, status int, message string) error {
	return c.JSON(status, Envelope{
		Success: false,
		Error:   message,
		TookMs:  time.Since(start).Milliseconds(),
	})
}
