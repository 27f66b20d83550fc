package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/racecal/catalog"
)

// Races returns all races, optionally filtered by discipline, province and
// an inclusive startDate/endDate window.
func (h *Handler) Races(c echo.Context) error {
	filter := catalog.Filter{
		Discipline: strings.TrimSpace(c.QueryParam("discipline")),
		Province:   strings.TrimSpace(c.QueryParam("province")),
	}

	var err error
	if filter.From, err = h.parseDateParam(c.QueryParam("startDate"), false); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid startDate: "+err.Error())
	}
	if filter.To, err = h.parseDateParam(c.QueryParam("endDate"), true); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid endDate: "+err.Error())
	}

	races, err := h.races.Races(c.Request().Context())
	if err != nil {
		h.log.Error("load races", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, filter.Apply(races))
}

// Race returns a single race by id.
func (h *Handler) Race(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	races, err := h.races.Races(c.Request().Context())
	if err != nil {
		h.log.Error("load races", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	race, ok := catalog.Find(races, id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	}
	return c.JSON(http.StatusOK, race)
}

// parseDateParam accepts YYYY-MM-DD (local midnight, or the last instant of
// that day when endOfDay is set) or an RFC 3339 instant. Empty means unset.
func (h *Handler) parseDateParam(v string, endOfDay bool) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", v, h.loc); err == nil {
		if endOfDay {
			return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
		}
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}
