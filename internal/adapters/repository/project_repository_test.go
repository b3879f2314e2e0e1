package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vamap91/ROADMAP/internal/domain/entities"
	"github.com/Vamap91/ROADMAP/internal/infrastructure/logger"
)

func newTestRepo(t *testing.T) (*ProjectRepository, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "roadmap_projetos.csv")
	repo, err := NewProjectRepository(path, logger.NewNop())
	require.NoError(t, err)
	return repo, path
}

func testProject(name, owner string) *entities.Project {
	return &entities.Project{
		Name:  name,
		Start: entities.NewDate(2025, time.January, 1),
		End:   entities.NewDate(2025, time.January, 15),
		Owner: owner,
	}
}

func TestFirstRunSeedsBackingFile(t *testing.T) {
	repo, path := newTestRepo(t)
	ctx := context.Background()

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 4)

	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Sistema de Login", "API de Pagamentos", "Dashboard", "App Mobile"}, names)

	// Seed is persisted immediately
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "ID,Nome do Projeto,Início,Fim,Responsável\n"))

	// A second store over the same file sees the identical set
	again, err := NewProjectRepository(path, logger.NewNop())
	require.NoError(t, err)
	reloaded, err := again.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, reloaded)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo, path := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &entities.Project{
		Name:  "Migração de Dados",
		Start: entities.NewDate(2025, time.June, 1),
		End:   entities.NewDate(2025, time.August, 31),
		Owner: "Data Team",
	})
	require.NoError(t, err)

	before, err := repo.List(ctx)
	require.NoError(t, err)

	second, err := NewProjectRepository(path, logger.NewNop())
	require.NoError(t, err)
	after, err := second.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, before, after)

	found, err := second.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Migração de Dados", found.Name)
	assert.Equal(t, "2025-06-01", found.Start.String())
	assert.Equal(t, "2025-08-31", found.End.String())
}

func TestCreate(t *testing.T) {
	t.Run("assigns strictly increasing ids, never reused", func(t *testing.T) {
		repo, _ := newTestRepo(t)
		ctx := context.Background()

		first, err := repo.Create(ctx, testProject("Projeto A", "QA Team"))
		require.NoError(t, err)
		assert.Equal(t, 5, first.ID) // seed occupies 1-4

		require.NoError(t, repo.Delete(ctx, first.ID))

		second, err := repo.Create(ctx, testProject("Projeto B", "QA Team"))
		require.NoError(t, err)
		assert.Equal(t, 6, second.ID)
	})

	t.Run("duplicate name rejected without mutation", func(t *testing.T) {
		repo, _ := newTestRepo(t)
		ctx := context.Background()

		_, err := repo.Create(ctx, testProject("Login System", "Backend"))
		require.NoError(t, err)

		before, err := repo.List(ctx)
		require.NoError(t, err)

		_, err = repo.Create(ctx, testProject("Login System", "Frontend Team"))
		assert.ErrorIs(t, err, entities.ErrDuplicateName)

		after, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("inverted date range rejected without mutation", func(t *testing.T) {
		repo, _ := newTestRepo(t)
		ctx := context.Background()

		before, err := repo.List(ctx)
		require.NoError(t, err)

		p := testProject("Projeto Invertido", "QA Team")
		p.Start = entities.NewDate(2025, time.February, 1)
		p.End = entities.NewDate(2025, time.January, 1)
		_, err = repo.Create(ctx, p)
		assert.ErrorIs(t, err, entities.ErrInvertedDateRange)

		after, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		repo, _ := newTestRepo(t)

		_, err := repo.Create(context.Background(), testProject("", "QA Team"))
		assert.ErrorIs(t, err, entities.ErrEmptyName)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("missing id reports not found without mutation", func(t *testing.T) {
		repo, _ := newTestRepo(t)
		ctx := context.Background()

		before, err := repo.List(ctx)
		require.NoError(t, err)

		p := testProject("Projeto Fantasma", "QA Team")
		p.ID = 999
		_, err = repo.Update(ctx, p)
		assert.ErrorIs(t, err, entities.ErrProjectNotFound)

		after, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("merged record is re-validated", func(t *testing.T) {
		repo, _ := newTestRepo(t)
		ctx := context.Background()

		stored, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)

		stored.Start = stored.End.AddDays(1)
		_, err = repo.Update(ctx, stored)
		assert.ErrorIs(t, err, entities.ErrInvertedDateRange)
	})

	t.Run("renaming to another record's name rejected", func(t *testing.T) {
		repo, _ := newTestRepo(t)
		ctx := context.Background()

		stored, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)

		stored.Name = "Dashboard"
		_, err = repo.Update(ctx, stored)
		assert.ErrorIs(t, err, entities.ErrDuplicateName)
	})

	t.Run("keeping own name is allowed", func(t *testing.T) {
		repo, _ := newTestRepo(t)
		ctx := context.Background()

		stored, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)

		stored.Owner = "Plataforma"
		updated, err := repo.Update(ctx, stored)
		require.NoError(t, err)
		assert.Equal(t, "Plataforma", updated.Owner)
		assert.Equal(t, "Sistema de Login", updated.Name)
	})
}

func TestDelete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, 2))

	_, err := repo.GetByID(ctx, 2)
	assert.ErrorIs(t, err, entities.ErrProjectNotFound)

	// Second delete of the same id reports not found
	assert.ErrorIs(t, repo.Delete(ctx, 2), entities.ErrProjectNotFound)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestCorruptFileFallsBackToSeed(t *testing.T) {
	cases := map[string]string{
		"wrong header":        "id,name,start,end,owner\n1,Projeto,2025-01-01,2025-02-01,QA Team\n",
		"semicolon delimited": "ID;Nome do Projeto;Início;Fim;Responsável\n1;Projeto;2025-01-01;2025-02-01;QA Team\n",
		"bad date":            "ID,Nome do Projeto,Início,Fim,Responsável\n1,Projeto,01/02/2025,2025-02-01,QA Team\n",
		"bad id":              "ID,Nome do Projeto,Início,Fim,Responsável\nxyz,Projeto,2025-01-01,2025-02-01,QA Team\n",
		"duplicate id":        "ID,Nome do Projeto,Início,Fim,Responsável\n1,A,2025-01-01,2025-02-01,QA Team\n1,B,2025-01-01,2025-02-01,QA Team\n",
		"inverted rows":       "ID,Nome do Projeto,Início,Fim,Responsável\n1,Projeto,2025-03-01,2025-02-01,QA Team\n",
		"not csv":             "{\"definitely\": \"not csv\"}",
	}

	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "roadmap_projetos.csv")
			require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

			repo, err := NewProjectRepository(path, logger.NewNop())
			require.NoError(t, err)

			records, err := repo.List(context.Background())
			require.NoError(t, err)
			// Never a partial parse: the seed is served in its place
			assert.Len(t, records, 4)
			assert.Equal(t, "Sistema de Login", records[0].Name)

			// The unreadable file stays on disk untouched, so the operator
			// can fix or recover it
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, contents, string(data))
		})
	}
}

func TestPersistenceFailureRollsBack(t *testing.T) {
	repo, path := newTestRepo(t)
	ctx := context.Background()

	before, err := repo.List(ctx)
	require.NoError(t, err)

	// Replace the backing file with a directory so the rename step fails
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	_, err = repo.Create(ctx, testProject("Projeto Bloqueado", "QA Team"))
	assert.ErrorIs(t, err, entities.ErrPersistenceFailure)

	// In-memory state stays at the last durable snapshot
	after, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// Once the obstruction is gone, the next mutation persists cleanly
	require.NoError(t, os.Remove(path))
	created, err := repo.Create(ctx, testProject("Projeto Liberado", "QA Team"))
	require.NoError(t, err)

	reloaded, err := NewProjectRepository(path, logger.NewNop())
	require.NoError(t, err)
	persisted, err := reloaded.List(ctx)
	require.NoError(t, err)
	assert.Len(t, persisted, len(before)+1)
	assert.Equal(t, created.Name, persisted[len(persisted)-1].Name)
}
