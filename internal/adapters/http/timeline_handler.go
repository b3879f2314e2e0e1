package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Vamap91/ROADMAP/internal/application/services"
	"github.com/Vamap91/ROADMAP/internal/domain/entities"
	"github.com/Vamap91/ROADMAP/internal/infrastructure/logger"
)

// TimelineHandler handles chart and palette requests
type TimelineHandler struct {
	timelineService *services.TimelineService
	logger          *logger.Logger
}

// NewTimelineHandler creates a new timeline handler
func NewTimelineHandler(timelineService *services.TimelineService, appLogger *logger.Logger) *TimelineHandler {
	return &TimelineHandler{
		timelineService: timelineService,
		logger:          appLogger,
	}
}

// GetTimeline godoc
// @Summary Gantt chart payload: bars, today marker, fortnightly gridlines
// @Tags timeline
// @Produce json
// @Param as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Router /timeline [get]
func (h *TimelineHandler) GetTimeline(c echo.Context) error {
	asOf, err := asOfQuery(c)
	if err != nil {
		return err
	}

	timeline, err := h.timelineService.Timeline(c.Request().Context(), asOf)
	if err != nil {
		h.logger.Error("Timeline failed", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, timeline)
}

// GetPalette godoc
// @Summary Owner color preferences
// @Tags timeline
// @Produce json
// @Router /palette [get]
func (h *TimelineHandler) GetPalette(c echo.Context) error {
	palette, err := h.timelineService.Palette(c.Request().Context())
	if err != nil {
		h.logger.Error("Get palette failed", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, palette)
}

// PutPalette godoc
// @Summary Replace owner color preferences
// @Tags timeline
// @Accept json
// @Produce json
// @Router /palette [put]
func (h *TimelineHandler) PutPalette(c echo.Context) error {
	palette := map[string]string{}
	if err := c.Bind(&palette); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	if err := h.timelineService.SetPalette(c.Request().Context(), palette); err != nil {
		h.logger.Error("Set palette failed", "error", err)
		if errors.Is(err, entities.ErrPersistenceFailure) {
			return toHTTPError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "palette saved"})
}
