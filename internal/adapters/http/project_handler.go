package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Vamap91/ROADMAP/internal/application/services"
	"github.com/Vamap91/ROADMAP/internal/domain/entities"
	"github.com/Vamap91/ROADMAP/internal/infrastructure/logger"
	"github.com/Vamap91/ROADMAP/internal/ports"
)

// ProjectHandler handles project-related requests
type ProjectHandler struct {
	projectService *services.ProjectService
	logger         *logger.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *services.ProjectService, appLogger *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         appLogger,
	}
}

// ListProjects godoc
// @Summary List all projects
// @Tags projects
// @Produce json
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	projects, err := h.projectService.ListProjects(c.Request().Context())
	if err != nil {
		h.logger.Error("List projects failed", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, projects)
}

// GetProject godoc
// @Summary Get project by ID
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	project, err := h.projectService.GetProject(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, project)
}

// CreateProject godoc
// @Summary Create a new project
// @Tags projects
// @Accept json
// @Produce json
// @Param request body ports.CreateProjectRequest true "Project data"
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req ports.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create project failed", "error", err, "name", req.Name)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, project)
}

// UpdateProject godoc
// @Summary Update a project
// @Description Applies only the supplied fields; omitted fields are kept.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body ports.UpdateProjectRequest true "Fields to update"
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req ports.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	project, err := h.projectService.UpdateProject(c.Request().Context(), id, req)
	if err != nil {
		h.logger.Error("Update project failed", "error", err, "project_id", id)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, project)
}

// DeleteProject godoc
// @Summary Delete a project
// @Tags projects
// @Param id path int true "Project ID"
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.projectService.DeleteProject(c.Request().Context(), id); err != nil {
		h.logger.Error("Delete project failed", "error", err, "project_id", id)
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSummary godoc
// @Summary Project counts by schedule position
// @Tags projects
// @Produce json
// @Param as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Router /projects/summary [get]
func (h *ProjectHandler) GetSummary(c echo.Context) error {
	asOf, err := asOfQuery(c)
	if err != nil {
		return err
	}

	summary, err := h.projectService.Summary(c.Request().Context(), asOf)
	if err != nil {
		h.logger.Error("Summary failed", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

// ExportProjects godoc
// @Summary Download the record set as CSV
// @Tags projects
// @Produce text/csv
// @Router /projects/export [get]
func (h *ProjectHandler) ExportProjects(c echo.Context) error {
	data, err := h.projectService.ExportCSV(c.Request().Context())
	if err != nil {
		h.logger.Error("Export failed", "error", err)
		return toHTTPError(err)
	}

	filename := services.ExportFilename(entities.Today())
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ListOwners godoc
// @Summary Selectable owner labels
// @Tags projects
// @Produce json
// @Router /owners [get]
func (h *ProjectHandler) ListOwners(c echo.Context) error {
	owners, err := h.projectService.Owners(c.Request().Context())
	if err != nil {
		h.logger.Error("List owners failed", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, owners)
}
