package ports

import (
	"context"

	"github.com/Vamap91/ROADMAP/internal/domain/entities"
)

// ProjectRepository defines the interface for project data operations.
// Implementations own the in-memory record set and keep it consistent with
// the backing store: a mutation is complete only after a durable write, and
// a failed write leaves the set at the last persisted snapshot.
type ProjectRepository interface {
	// List returns every record in insertion order.
	List(ctx context.Context) ([]entities.Project, error)
	GetByID(ctx context.Context, id int) (*entities.Project, error)
	// Create assigns the next id, appends the record and persists the set.
	Create(ctx context.Context, project *entities.Project) (*entities.Project, error)
	// Update replaces the record with the same id and persists the set.
	// Callers that merge a partial change read the record first, so two
	// overlapping partial updates can overwrite each other's fields; the
	// store serves a single operator and does not sequence such merges.
	Update(ctx context.Context, project *entities.Project) (*entities.Project, error)
	Delete(ctx context.Context, id int) error
	// Reload discards the in-memory set and re-reads the backing file.
	Reload(ctx context.Context) error
}

// PaletteRepository defines the interface for owner color preferences,
// persisted independently of project records.
type PaletteRepository interface {
	// Load returns the stored palette; a missing file yields an empty map.
	Load(ctx context.Context) (map[string]string, error)
	// Save replaces the stored palette wholesale.
	Save(ctx context.Context, palette map[string]string) error
}
