package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mw "github.com/padraicbc/racecal/middleware"
	"github.com/padraicbc/racecal/sheets"
)

// Import reloads the sheet, bypassing the cache, and stores the result as a
// new snapshot.
func (h *Handler) Import(c echo.Context) error {
	ctx := c.Request().Context()
	operator, _ := c.Get(mw.UsernameKey).(string)

	exportURL, err := sheets.ResolveExportURL(h.SheetURL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	races, err := h.races.Refresh(ctx)
	if err != nil {
		h.log.Error("import refresh", zap.String("operator", operator), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	imp, err := h.store.SaveSnapshot(ctx, h.SheetURL, exportURL, races)
	if err != nil {
		h.log.Error("import save", zap.String("operator", operator), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.log.Info("races imported",
		zap.String("operator", operator),
		zap.Int64("import", imp.ID),
		zap.Int("races", imp.RaceCount),
	)
	return c.JSON(http.StatusCreated, imp)
}
