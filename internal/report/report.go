// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders pipeline results as a table, JSON, or an export
// file, and summarizes matched feature values.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/pdiddy/spotifynd/pkg/types"
)

// Heading returns the column heading for a feature.
type Heading func(types.Feature) string

// FormatTable writes records as a table with Art, Artist, and Song columns
// followed by one column per feature in features. A record not annotated for
// a feature gets an empty cell.
func FormatTable(w io.Writer, records []types.TrackMetadata, features []types.Feature, heading Heading) {
	if heading == nil {
		heading = func(f types.Feature) string { return string(f) }
	}

	header := []string{"Art", "Artist", "Song"}
	for _, f := range features {
		header = append(header, heading(f))
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for _, r := range records {
		row := []string{r.ArtworkURL, r.Artist, r.Song}
		for _, f := range features {
			cell := ""
			if a, ok := r.Annotation(f); ok {
				cell = a.String()
			}
			row = append(row, cell)
		}
		table.Append(row)
	}
	table.Render()
	fmt.Fprintf(w, "%d tracks\n", len(records))
}

// FormatJSON writes records as an indented JSON array. An empty result is
// written as [] rather than null.
func FormatJSON(w io.Writer, records []types.TrackMetadata) error {
	if records == nil {
		records = []types.TrackMetadata{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
