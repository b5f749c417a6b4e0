// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preset

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/spotifynd/internal/filter"
	"github.com/pdiddy/spotifynd/pkg/types"
)

// Document is the YAML form of a preset used for sharing between machines.
type Document struct {
	ID       string          `yaml:"id,omitempty"`
	SavedAt  string          `yaml:"saved_at,omitempty"`
	Criteria types.FilterSet `yaml:"criteria"`
}

// ExportYAML writes the stored preset to path.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	set, err := s.Load(ctx)
	if err != nil {
		return err
	}
	info, err := s.Info(ctx)
	if err != nil {
		return err
	}

	doc := Document{ID: info.ID, SavedAt: info.SavedAt.Format(time.RFC3339), Criteria: set}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ImportYAML reads a preset document from path and saves its criteria into
// the slot. Unknown feature names and criteria that do not compile fail
// with types.ErrParse or types.ErrRange and leave the slot untouched.
func (s *Store) ImportYAML(ctx context.Context, path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Info{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	set := types.FilterSet{}
	for f, c := range doc.Criteria {
		if !slices.Contains(types.AllFeatures, f) {
			return Info{}, fmt.Errorf("%s: unknown feature %q: %w", path, f, types.ErrParse)
		}
		set.Set(f, c)
	}
	if _, err := filter.DefaultRegistry().Compile(set, false); err != nil {
		return Info{}, fmt.Errorf("%s: %w", path, err)
	}
	return s.Save(ctx, set)
}
