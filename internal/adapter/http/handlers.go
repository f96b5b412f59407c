package http

import (
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/labstack/echo/v4"
)

type Handler struct{ clock clock.Clock }

func NewHandler(c clock.Clock) *Handler {
	if c == nil {
		c = clock.New()
	}
	return &Handler{clock: c}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   h.clock.Now().UTC().Format(time.RFC3339Nano),
	})
}
