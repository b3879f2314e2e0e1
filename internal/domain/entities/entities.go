package entities

import (
	"errors"
)

// Common errors
var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrEmptyName          = errors.New("project name must not be empty")
	ErrEmptyOwner         = errors.New("project owner must not be empty")
	ErrDuplicateName      = errors.New("a project with this name already exists")
	ErrInvertedDateRange  = errors.New("start date must not be after end date")
	ErrPersistenceFailure = errors.New("failed to persist project data")
)

// Status is the schedule position of a project relative to a reference date.
// It is derived on demand and never persisted.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Project represents one entry on the roadmap timeline.
type Project struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Start Date   `json:"start_date"`
	End   Date   `json:"end_date"`
	Owner string `json:"owner"`
}

// Validate checks the record-level invariants: non-empty name and owner,
// and start date not after end date.
func (p *Project) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Owner == "" {
		return ErrEmptyOwner
	}
	if p.Start.After(p.End) {
		return ErrInvertedDateRange
	}
	return nil
}

// DeriveStatus classifies a project relative to asOf: upcoming before the
// start date, completed after the end date, active in between (inclusive on
// both boundaries).
func DeriveStatus(p *Project, asOf Date) Status {
	switch {
	case asOf.Before(p.Start):
		return StatusUpcoming
	case asOf.After(p.End):
		return StatusCompleted
	default:
		return StatusActive
	}
}
