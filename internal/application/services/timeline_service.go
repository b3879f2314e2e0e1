package services

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/Vamap91/ROADMAP/internal/domain/entities"
	"github.com/Vamap91/ROADMAP/internal/infrastructure/logger"
	"github.com/Vamap91/ROADMAP/internal/ports"
)

// fallbackColors are assigned to owners with no stored preference. The
// choice is a stable hash of the label so a given owner keeps its color
// across renders.
var fallbackColors = []string{
	"#636efa", "#ef553b", "#00cc96", "#ab63fa",
	"#ffa15a", "#19d3f3", "#ff6692", "#b6e880",
}

// TimelineService assembles the Gantt chart payload the dashboard renders.
type TimelineService struct {
	projectRepo ports.ProjectRepository
	paletteRepo ports.PaletteRepository
	logger      *logger.Logger
}

// NewTimelineService creates a new timeline service
func NewTimelineService(projectRepo ports.ProjectRepository, paletteRepo ports.PaletteRepository, appLogger *logger.Logger) *TimelineService {
	return &TimelineService{
		projectRepo: projectRepo,
		paletteRepo: paletteRepo,
		logger:      appLogger,
	}
}

// Timeline returns one bar per record, the today marker, and fortnightly
// gridlines spanning the full date range of the record set.
func (s *TimelineService) Timeline(ctx context.Context, asOf entities.Date) (*ports.Timeline, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	palette, err := s.paletteRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load palette: %w", err)
	}

	timeline := &ports.Timeline{
		Bars:  make([]ports.TimelineBar, 0, len(projects)),
		Today: asOf,
	}
	for i := range projects {
		p := &projects[i]
		timeline.Bars = append(timeline.Bars, ports.TimelineBar{
			ID:     p.ID,
			Name:   p.Name,
			Start:  p.Start,
			End:    p.End,
			Owner:  p.Owner,
			Color:  ownerColor(palette, p.Owner),
			Status: entities.DeriveStatus(p, asOf),
		})
	}
	timeline.Gridlines = fortnightGridlines(projects)

	return timeline, nil
}

// Palette returns the stored owner color preferences.
func (s *TimelineService) Palette(ctx context.Context) (map[string]string, error) {
	return s.paletteRepo.Load(ctx)
}

// SetPalette replaces the stored owner color preferences.
func (s *TimelineService) SetPalette(ctx context.Context, palette map[string]string) error {
	if err := s.paletteRepo.Save(ctx, palette); err != nil {
		return err
	}

	s.logger.Info("Palette updated", "owners", len(palette))

	return nil
}

// ownerColor prefers the stored palette and falls back to a stable hash of
// the owner label.
func ownerColor(palette map[string]string, owner string) string {
	if color, ok := palette[owner]; ok {
		return color
	}
	h := fnv.New32a()
	h.Write([]byte(owner))
	return fallbackColors[h.Sum32()%uint32(len(fallbackColors))]
}

// fortnightGridlines returns the 1st and 15th of every month between the
// earliest start and the latest end, inclusive on both months.
func fortnightGridlines(projects []entities.Project) []entities.Date {
	if len(projects) == 0 {
		return nil
	}

	min, max := projects[0].Start, projects[0].End
	for i := range projects {
		if projects[i].Start.Before(min) {
			min = projects[i].Start
		}
		if projects[i].End.After(max) {
			max = projects[i].End
		}
	}

	var lines []entities.Date
	cursor := entities.NewDate(min.Time().Year(), min.Time().Month(), 1)
	for !cursor.After(max) {
		year, month := cursor.Time().Year(), cursor.Time().Month()
		for _, day := range []int{1, 15} {
			line := entities.NewDate(year, month, day)
			if !line.Before(min) && !line.After(max) {
				lines = append(lines, line)
			}
		}
		cursor = entities.DateOf(cursor.Time().AddDate(0, 1, 0))
	}
	return lines
}
