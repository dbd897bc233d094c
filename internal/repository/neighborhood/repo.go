package neighborhood

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/hoodmatch/internal/domain"
	domnb "github.com/kailas-cloud/hoodmatch/internal/domain/neighborhood"
)

//go:embed neighborhoods.yaml
var builtinDataset []byte

// Repo is a read-only, in-memory neighborhood dataset.
// It is built once and safe for concurrent use without locking.
type Repo struct {
	items []domnb.Neighborhood
	byID  map[string]int
}

// Default parses the built-in dataset.
func Default() (*Repo, error) {
	return Parse(builtinDataset)
}

// MustDefault parses the built-in dataset or panics.
func MustDefault() *Repo {
	r, err := Default()
	if err != nil {
		panic(err)
	}
	return r
}

// LoadFile parses a dataset file on disk. Files ending in .parquet are read
// as Parquet, anything else as YAML.
func LoadFile(path string) (*Repo, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return LoadParquet(path)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return r, nil
}

// Parse validates every record and rejects duplicate IDs and empty datasets.
func Parse(data []byte) (*Repo, error) {
	var file datasetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parse: %w", domain.ErrInvalidDataset, err)
	}
	return build(file.Neighborhoods)
}

func build(records []record) (*Repo, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no neighborhoods", domain.ErrInvalidDataset)
	}

	items := make([]domnb.Neighborhood, 0, len(records))
	byID := make(map[string]int, len(records))
	for i := range records {
		n, err := records[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", domain.ErrInvalidDataset, i, err)
		}
		if _, dup := byID[n.ID()]; dup {
			return nil, fmt.Errorf("%w: duplicate neighborhood ID %q", domain.ErrInvalidDataset, n.ID())
		}
		byID[n.ID()] = len(items)
		items = append(items, n)
	}

	return &Repo{items: items, byID: byID}, nil
}

// List returns all neighborhoods in dataset order. The slice is a fresh copy.
func (r *Repo) List(_ context.Context) ([]domnb.Neighborhood, error) {
	out := make([]domnb.Neighborhood, len(r.items))
	copy(out, r.items)
	return out, nil
}

// Get returns a neighborhood by ID.
func (r *Repo) Get(_ context.Context, id string) (domnb.Neighborhood, error) {
	i, ok := r.byID[id]
	if !ok {
		return domnb.Neighborhood{}, fmt.Errorf("neighborhood %q: %w", id, domain.ErrNotFound)
	}
	return r.items[i], nil
}

// Len returns the number of neighborhoods.
func (r *Repo) Len() int { return len(r.items) }
