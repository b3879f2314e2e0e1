package ports

import (
	"github.com/Vamap91/ROADMAP/internal/domain/entities"
)

// CreateProjectRequest carries the fields for a new project.
type CreateProjectRequest struct {
	Name  string        `json:"name" validate:"required"`
	Start entities.Date `json:"start_date" validate:"required"`
	End   entities.Date `json:"end_date" validate:"required"`
	Owner string        `json:"owner" validate:"required"`
}

// UpdateProjectRequest carries a partial update; nil fields are retained
// from the stored record.
type UpdateProjectRequest struct {
	Name  *string        `json:"name"`
	Start *entities.Date `json:"start_date"`
	End   *entities.Date `json:"end_date"`
	Owner *string        `json:"owner"`
}

// ProjectSummary aggregates schedule counts for the dashboard metrics row.
type ProjectSummary struct {
	AsOf      entities.Date  `json:"as_of"`
	Total     int            `json:"total"`
	Active    int            `json:"active"`
	Upcoming  int            `json:"upcoming"`
	Completed int            `json:"completed"`
	ByOwner   map[string]int `json:"by_owner"`
}

// TimelineBar is one rendered bar on the Gantt chart.
type TimelineBar struct {
	ID     int             `json:"id"`
	Name   string          `json:"name"`
	Start  entities.Date   `json:"start_date"`
	End    entities.Date   `json:"end_date"`
	Owner  string          `json:"owner"`
	Color  string          `json:"color"`
	Status entities.Status `json:"status"`
}

// Timeline is the full chart payload: bars, the today marker and the
// fortnightly gridlines spanning the projects' date range.
type Timeline struct {
	Bars      []TimelineBar   `json:"bars"`
	Today     entities.Date   `json:"today"`
	Gridlines []entities.Date `json:"gridlines"`
}
