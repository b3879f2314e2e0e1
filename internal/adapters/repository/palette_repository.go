package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/Vamap91/ROADMAP/internal/domain/entities"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// PaletteRepository persists owner color preferences as a flat JSON mapping
// from owner label to a #RRGGBB string. It is a presentation hint only and
// independent of the project records.
type PaletteRepository struct {
	mu   sync.Mutex
	path string
}

// NewPaletteRepository returns a palette store backed by the JSON file at
// path. The file is created lazily on first save.
func NewPaletteRepository(path string) *PaletteRepository {
	return &PaletteRepository{path: path}
}

// Load reads the palette. A missing or unreadable file yields an empty map.
func (r *PaletteRepository) Load(ctx context.Context) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return map[string]string{}, nil
	}

	palette := map[string]string{}
	if err := json.Unmarshal(data, &palette); err != nil {
		return map[string]string{}, nil
	}
	return palette, nil
}

// Save validates every entry and replaces the stored palette wholesale.
func (r *PaletteRepository) Save(ctx context.Context, palette map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for owner, color := range palette {
		if owner == "" {
			return entities.ErrEmptyOwner
		}
		if !colorPattern.MatchString(color) {
			return fmt.Errorf("invalid color %q for %q: expected #RRGGBB", color, owner)
		}
	}

	dir := filepath.Dir(r.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", entities.ErrPersistenceFailure, err)
		}
	}

	data, err := json.MarshalIndent(palette, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", entities.ErrPersistenceFailure, err)
	}

	err = writeFileAtomic(r.path, func(f *os.File) error {
		_, werr := f.Write(data)
		return werr
	})
	if err != nil {
		return fmt.Errorf("%w: %v", entities.ErrPersistenceFailure, err)
	}
	return nil
}
