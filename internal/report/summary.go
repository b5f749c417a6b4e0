// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pdiddy/spotifynd/pkg/types"
)

// Stat summarizes the annotated values of one feature across a result set.
type Stat struct {
	Feature types.Feature `json:"feature" yaml:"feature"`
	Matched int           `json:"matched" yaml:"matched"`
	Total   int           `json:"total" yaml:"total"`
	Mean    float64       `json:"mean" yaml:"mean"`
	Min     float64       `json:"min" yaml:"min"`
	Max     float64       `json:"max" yaml:"max"`
}

// Summarize returns one Stat per feature, in the order given. Mean, Min, and
// Max are zero when no record matched.
func Summarize(records []types.TrackMetadata, features []types.Feature) []Stat {
	stats := make([]Stat, 0, len(features))
	for _, f := range features {
		var values []float64
		for _, r := range records {
			if a, ok := r.Annotation(f); ok {
				values = append(values, a.Value)
			}
		}

		s := Stat{Feature: f, Matched: len(values), Total: len(records)}
		if len(values) > 0 {
			s.Mean = stat.Mean(values, nil)
			s.Min = floats.Min(values)
			s.Max = floats.Max(values)
		}
		stats = append(stats, s)
	}
	return stats
}

// FormatSummary writes stats as a table.
func FormatSummary(w io.Writer, stats []Stat, heading Heading) {
	if len(stats) == 0 {
		return
	}
	if heading == nil {
		heading = func(f types.Feature) string { return string(f) }
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Filter", "Matched", "Mean", "Min", "Max"})
	table.SetAutoFormatHeaders(false)
	for _, s := range stats {
		row := []string{heading(s.Feature), fmt.Sprintf("%d/%d", s.Matched, s.Total), "", "", ""}
		if s.Matched > 0 {
			row[2] = strconv.FormatFloat(s.Mean, 'f', 3, 64)
			row[3] = strconv.FormatFloat(s.Min, 'f', -1, 64)
			row[4] = strconv.FormatFloat(s.Max, 'f', -1, 64)
		}
		table.Append(row)
	}
	table.Render()
}
