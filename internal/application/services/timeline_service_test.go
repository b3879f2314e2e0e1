package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vamap91/ROADMAP/internal/adapters/repository"
	"github.com/Vamap91/ROADMAP/internal/domain/entities"
	"github.com/Vamap91/ROADMAP/internal/infrastructure/logger"
	"github.com/Vamap91/ROADMAP/internal/ports"
)

func newTimelineFixture(t *testing.T) (*TimelineService, *ProjectService, *repository.PaletteRepository) {
	t.Helper()

	dir := t.TempDir()
	projectRepo, err := repository.NewProjectRepository(filepath.Join(dir, "projetos.csv"), logger.NewNop())
	require.NoError(t, err)
	paletteRepo := repository.NewPaletteRepository(filepath.Join(dir, "cores.json"))

	return NewTimelineService(projectRepo, paletteRepo, logger.NewNop()),
		NewProjectService(projectRepo, logger.NewNop()),
		paletteRepo
}

func TestTimelineBars(t *testing.T) {
	tl, _, palettes := newTimelineFixture(t)
	ctx := context.Background()

	require.NoError(t, palettes.Save(ctx, map[string]string{"Backend Team": "#123abc"}))

	asOf := entities.Today()
	timeline, err := tl.Timeline(ctx, asOf)
	require.NoError(t, err)

	require.Len(t, timeline.Bars, 4)
	assert.True(t, timeline.Today.Equal(asOf))

	first := timeline.Bars[0]
	assert.Equal(t, "Sistema de Login", first.Name)
	assert.Equal(t, entities.StatusActive, first.Status)
	// Stored preference wins over the fallback color
	assert.Equal(t, "#123abc", first.Color)

	// Unconfigured owners get a stable fallback color
	second := timeline.Bars[1]
	assert.NotEmpty(t, second.Color)
	again, err := tl.Timeline(ctx, asOf)
	require.NoError(t, err)
	assert.Equal(t, second.Color, again.Bars[1].Color)
}

func TestTimelineGridlines(t *testing.T) {
	tl, projects, _ := newTimelineFixture(t)
	ctx := context.Background()

	// Pin the record set to a fixed range: one project spanning Jan 10 to
	// Mar 20. Gridlines fall on the 15th of January, the 1st and 15th of
	// February, and the 1st and 15th of March.
	for id := 1; id <= 4; id++ {
		require.NoError(t, projects.DeleteProject(ctx, id))
	}
	_, err := projects.CreateProject(ctx, ports.CreateProjectRequest{
		Name:  "Janela Fixa",
		Start: entities.NewDate(2025, time.January, 10),
		End:   entities.NewDate(2025, time.March, 20),
		Owner: "QA Team",
	})
	require.NoError(t, err)

	timeline, err := tl.Timeline(ctx, entities.NewDate(2025, time.February, 1))
	require.NoError(t, err)

	var got []string
	for _, g := range timeline.Gridlines {
		got = append(got, g.String())
	}
	assert.Equal(t, []string{
		"2025-01-15",
		"2025-02-01", "2025-02-15",
		"2025-03-01", "2025-03-15",
	}, got)
}

func TestTimelineEmptyStore(t *testing.T) {
	tl, projects, _ := newTimelineFixture(t)
	ctx := context.Background()

	for id := 1; id <= 4; id++ {
		require.NoError(t, projects.DeleteProject(ctx, id))
	}

	timeline, err := tl.Timeline(ctx, entities.Today())
	require.NoError(t, err)
	assert.Empty(t, timeline.Bars)
	assert.Empty(t, timeline.Gridlines)
}

func TestSetPalette(t *testing.T) {
	tl, _, _ := newTimelineFixture(t)
	ctx := context.Background()

	require.NoError(t, tl.SetPalette(ctx, map[string]string{"Data Team": "#2ca02c"}))

	palette, err := tl.Palette(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Data Team": "#2ca02c"}, palette)

	assert.Error(t, tl.SetPalette(ctx, map[string]string{"Data Team": "green"}))
}
