package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/racecal/calendar"
)

type calendarResponse struct {
	Year        int                  `json:"year"`
	Weeks       []calendar.WeekGroup `json:"weeks"`
	MonthStarts [12]int              `json:"monthStarts"`
}

// Calendar returns the races of a year grouped by week. Multi-valued filters
// (province, format, modality) take comma-separated lists.
func (h *Handler) Calendar(c echo.Context) error {
	year := h.now().In(h.loc).Year()
	if y := c.QueryParam("year"); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil || n < 2001 || n > 9999 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
		}
		year = n
	}

	q := calendar.Query{
		Search:     c.QueryParam("q"),
		Country:    strings.TrimSpace(c.QueryParam("country")),
		Provinces:  splitParam(c.QueryParam("province")),
		Discipline: strings.TrimSpace(c.QueryParam("discipline")),
		Formats:    splitParam(c.QueryParam("format")),
		Modalities: splitParam(c.QueryParam("modality")),
	}

	races, err := h.races.Races(c.Request().Context())
	if err != nil {
		h.log.Error("load races", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	weeks := calendar.Weeks(races, year, q, h.loc)
	if weeks == nil {
		weeks = []calendar.WeekGroup{}
	}
	return c.JSON(http.StatusOK, calendarResponse{
		Year:        year,
		Weeks:       weeks,
		MonthStarts: calendar.MonthStarts(weeks, year),
	})
}

func splitParam(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
