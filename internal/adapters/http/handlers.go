package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Vamap91/ROADMAP/internal/domain/entities"
)

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse is the JSON body for informational responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// toHTTPError maps the domain error taxonomy onto HTTP statuses, keeping
// each failure mode's specific message so the operator can correct the
// offending input.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, entities.ErrProjectNotFound):
		return echo.NewHTTPError(http.StatusNotFound, entities.ErrProjectNotFound.Error())
	case errors.Is(err, entities.ErrDuplicateName):
		return echo.NewHTTPError(http.StatusConflict, entities.ErrDuplicateName.Error())
	case errors.Is(err, entities.ErrEmptyName):
		return echo.NewHTTPError(http.StatusBadRequest, entities.ErrEmptyName.Error())
	case errors.Is(err, entities.ErrEmptyOwner):
		return echo.NewHTTPError(http.StatusBadRequest, entities.ErrEmptyOwner.Error())
	case errors.Is(err, entities.ErrInvertedDateRange):
		return echo.NewHTTPError(http.StatusBadRequest, entities.ErrInvertedDateRange.Error())
	case errors.Is(err, entities.ErrPersistenceFailure):
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save project data, the previous state was kept; please retry")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// idParam parses the :id path parameter.
func idParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}
	return id, nil
}

// asOfQuery parses the optional as_of query parameter, defaulting to today.
func asOfQuery(c echo.Context) (entities.Date, error) {
	raw := c.QueryParam("as_of")
	if raw == "" {
		return entities.Today(), nil
	}
	asOf, err := entities.ParseDate(raw)
	if err != nil {
		return entities.Date{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return asOf, nil
}
