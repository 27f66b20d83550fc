package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type healthResponse struct {
	Status    string     `json:"status"`
	FetchedAt *time.Time `json:"racesFetchedAt,omitempty"`
}

// Health reports liveness and when the race list was last loaded from the sheet.
func (h *Handler) Health(c echo.Context) error {
	resp := healthResponse{Status: "ok"}
	if t := h.races.FetchedAt(); !t.IsZero() {
		resp.FetchedAt = &t
	}
	return c.JSON(http.StatusOK, resp)
}
