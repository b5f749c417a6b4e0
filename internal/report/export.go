// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/spotifynd/pkg/types"
)

// Export writes records to path, choosing the format from its extension:
// .json, .yaml, or .yml.
func Export(path string, records []types.TrackMetadata) error {
	if records == nil {
		records = []types.TrackMetadata{}
	}

	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(records, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(records)
	default:
		return fmt.Errorf("unsupported export format %q (use .json, .yaml, or .yml)", ext)
	}
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportName derives a file name for exporting the results of a query named
// name, e.g. "The Wonder Years" with ".yaml" gives "the-wonder-years.yaml".
// A name with nothing sluggable falls back to "results".
func ExportName(name, ext string) string {
	s := slug.Make(name)
	if s == "" {
		s = "results"
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return s + ext
}
