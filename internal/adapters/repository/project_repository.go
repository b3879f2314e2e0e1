package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Vamap91/ROADMAP/internal/domain/entities"
	"github.com/Vamap91/ROADMAP/internal/infrastructure/logger"
)

// ProjectRepository is a CSV-file-backed implementation of
// ports.ProjectRepository. It holds the full record set in memory and
// rewrites the backing file wholesale after every successful mutation. When
// a write fails the in-memory set stays at the last persisted snapshot.
type ProjectRepository struct {
	mu      sync.Mutex
	path    string
	records []entities.Project
	logger  *logger.Logger
}

// NewProjectRepository opens the backing file at path. A missing file is
// created with the example dataset; an unreadable one is left on disk as-is
// and the store serves the example dataset from memory.
func NewProjectRepository(path string, appLogger *logger.Logger) (*ProjectRepository, error) {
	r := &ProjectRepository{
		path:   path,
		logger: appLogger,
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// load reads the backing file into memory, falling back to the seed dataset
// wholesale on any failure; the store never exposes a partially parsed
// record set. Only the missing-file case persists the seed: an existing but
// unparseable file stays untouched on disk so the operator can fix or
// recover it.
func (r *ProjectRepository) load() error {
	records, err := readProjectsFile(r.path)
	if err == nil {
		r.records = records
		return nil
	}

	seed := SeedProjects(entities.Today())
	if !os.IsNotExist(err) {
		r.logger.Warn("Backing file unreadable, serving seed dataset from memory", "path", r.path, "error", err)
		r.records = seed
		return nil
	}

	r.logger.Info("Backing file not found, seeding example projects", "path", r.path)
	if err := writeProjectsFile(r.path, seed); err != nil {
		return fmt.Errorf("%w: writing seed dataset: %v", entities.ErrPersistenceFailure, err)
	}
	r.records = seed
	return nil
}

// SeedProjects returns the fixed example dataset, scheduled relative to the
// given date.
func SeedProjects(today entities.Date) []entities.Project {
	return []entities.Project{
		{ID: 1, Name: "Sistema de Login", Start: today, End: today.AddDays(45), Owner: "Backend Team"},
		{ID: 2, Name: "API de Pagamentos", Start: today.AddDays(30), End: today.AddDays(75), Owner: "FinTech Team"},
		{ID: 3, Name: "Dashboard", Start: today.AddDays(60), End: today.AddDays(105), Owner: "Data Team"},
		{ID: 4, Name: "App Mobile", Start: today.AddDays(90), End: today.AddDays(135), Owner: "Mobile Team"},
	}
}

// List returns a snapshot of every record in insertion order.
func (r *ProjectRepository) List(ctx context.Context) ([]entities.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entities.Project, len(r.records))
	copy(out, r.records)
	return out, nil
}

// GetByID returns the record with the given id.
func (r *ProjectRepository) GetByID(ctx context.Context, id int) (*entities.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == id {
			p := r.records[i]
			return &p, nil
		}
	}
	return nil, entities.ErrProjectNotFound
}

// Create validates the record, assigns the next id, appends it and persists
// the full set. The next id is always max(existing)+1 so ids are never
// reused, even after deletions.
func (r *ProjectRepository) Create(ctx context.Context, project *entities.Project) (*entities.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := project.Validate(); err != nil {
		return nil, err
	}
	for i := range r.records {
		if r.records[i].Name == project.Name {
			return nil, entities.ErrDuplicateName
		}
	}

	created := *project
	created.ID = r.nextID()

	candidate := make([]entities.Project, len(r.records), len(r.records)+1)
	copy(candidate, r.records)
	candidate = append(candidate, created)

	if err := writeProjectsFile(r.path, candidate); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrPersistenceFailure, err)
	}

	r.records = candidate
	return &created, nil
}

// Update replaces the record with the same id and persists the full set.
func (r *ProjectRepository) Update(ctx context.Context, project *entities.Project) (*entities.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i := range r.records {
		if r.records[i].ID == project.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, entities.ErrProjectNotFound
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}
	for i := range r.records {
		if i != idx && r.records[i].Name == project.Name {
			return nil, entities.ErrDuplicateName
		}
	}

	candidate := make([]entities.Project, len(r.records))
	copy(candidate, r.records)
	candidate[idx] = *project

	if err := writeProjectsFile(r.path, candidate); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrPersistenceFailure, err)
	}

	r.records = candidate
	updated := *project
	return &updated, nil
}

// Delete removes the record with the given id and persists the reduced set.
// Deleting an absent id reports ErrProjectNotFound.
func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i := range r.records {
		if r.records[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entities.ErrProjectNotFound
	}

	candidate := make([]entities.Project, 0, len(r.records)-1)
	candidate = append(candidate, r.records[:idx]...)
	candidate = append(candidate, r.records[idx+1:]...)

	if err := writeProjectsFile(r.path, candidate); err != nil {
		return fmt.Errorf("%w: %v", entities.ErrPersistenceFailure, err)
	}

	r.records = candidate
	return nil
}

// Reload discards the in-memory set and re-reads the backing file.
func (r *ProjectRepository) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Path returns the location of the backing file.
func (r *ProjectRepository) Path() string {
	return r.path
}

// nextID is recomputed from the data rather than stored, so manual edits to
// the backing file cannot desynchronize it. Callers must hold r.mu.
func (r *ProjectRepository) nextID() int {
	next := 1
	for i := range r.records {
		if r.records[i].ID >= next {
			next = r.records[i].ID + 1
		}
	}
	return next
}

func readProjectsFile(path string) ([]entities.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return entities.UnmarshalProjectsCSV(f)
}

// writeProjectsFile rewrites the backing file wholesale via a temp file in
// the same directory followed by a rename, so a failed write never leaves a
// truncated file behind.
func writeProjectsFile(path string, records []entities.Project) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	data, err := entities.MarshalProjectsCSV(records)
	if err != nil {
		return err
	}

	return writeFileAtomic(path, func(f *os.File) error {
		_, err := f.Write(data)
		return err
	})
}
