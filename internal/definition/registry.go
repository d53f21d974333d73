package definition

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"smdiagram/internal/common"
)

// Registry is an in-memory resolver keyed by canonical URL.
type Registry struct {
	byURL map[string]*StructureDefinition
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byURL: make(map[string]*StructureDefinition)}
}

// Add registers a definition. A later definition with the same URL replaces
// the earlier one.
func (r *Registry) Add(sd *StructureDefinition) {
	r.byURL[canonical(sd.URL)] = sd
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.byURL)
}

// Resolve implements Resolver.
func (r *Registry) Resolve(ctx context.Context, url string) (*StructureDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sd, ok := r.byURL[canonical(url)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}

	return sd, nil
}

// LoadDir loads every StructureDefinition found in dir (*.json, *.yaml, *.yml).
// Files holding other resource types are skipped.
func LoadDir(dir string, log zerolog.Logger) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}

	sort.Strings(names)

	reg := NewRegistry()

	for _, name := range names {
		path := filepath.Join(dir, name)

		sd, err := loadFile(path)
		if err != nil {
			return nil, err
		}

		if sd == nil {
			log.Debug().Str("file", name).Msg("Skipping non-StructureDefinition resource")
			continue
		}

		reg.Add(sd)
		log.Debug().Str("structureDefinition", sd.URL).Str("file", name).Msg("Loaded StructureDefinition")
	}

	return reg, nil
}

func loadFile(path string) (*StructureDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var sd StructureDefinition
	if err := decode(data, &sd); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if sd.ResourceType != ResourceType {
		return nil, nil
	}

	if sd.URL == "" {
		return nil, fmt.Errorf("%s: StructureDefinition has no url", path)
	}

	return &sd, nil
}

// decode reads data as JSON when it holds a JSON object and as YAML otherwise.
func decode(data []byte, v any) error {
	data = common.TrimBOM(data)
	if common.IsJSONObject(data) {
		return json.Unmarshal(data, v)
	}

	return yaml.Unmarshal(data, v)
}
