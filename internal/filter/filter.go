// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter holds the registry of feature filters and the engine that
// overlays them on enriched tracks.
//
// A filter never removes a track. When a track's feature satisfies the
// criterion, the filter annotates the track's metadata with the matched
// value; otherwise the metadata passes through unchanged. Exclusion is an
// engine option layered on top of the annotations.
package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/spotifynd/pkg/types"
)

// PitchNames maps a pitch class (0-11) to its display name.
var PitchNames = [12]string{"C", "C#/Db", "D", "D#/Eb", "E", "F", "F#/Gb", "G", "G#/Ab", "A", "A#/Bb", "B"}

// Matcher annotates metadata when features satisfy a parsed criterion. It
// reports whether it annotated. Features may be nil, which never matches.
type Matcher func(meta types.TrackMetadata, features *types.AudioFeatures) (types.TrackMetadata, bool)

// Filter is one registry entry: a feature name, the column heading used for
// its annotation, and a parser turning a criterion into a Matcher.
type Filter struct {
	Feature types.Feature
	Column  string
	Parse   func(c types.Criterion) (Matcher, error)
}

// Apply parses c and applies the resulting matcher to a single track.
func (f Filter) Apply(meta types.TrackMetadata, features *types.AudioFeatures, c types.Criterion) (types.TrackMetadata, error) {
	m, err := f.Parse(c)
	if err != nil {
		return meta, err
	}
	out, _ := m(meta, features)
	return out, nil
}

// Pitch matches tracks whose key equals the criterion (0-11) and labels them
// with the pitch class name.
func Pitch() Filter {
	return Filter{
		Feature: types.FeaturePitch,
		Column:  "Pitch",
		Parse: func(c types.Criterion) (Matcher, error) {
			key, err := strconv.Atoi(strings.TrimSpace(string(c)))
			if err != nil {
				return nil, fmt.Errorf("pitch %q: expected an integer 0-11: %w", c, types.ErrParse)
			}
			if key < 0 || key >= len(PitchNames) {
				return nil, fmt.Errorf("pitch %q: expected an integer 0-11: %w", c, types.ErrParse)
			}
			return func(meta types.TrackMetadata, af *types.AudioFeatures) (types.TrackMetadata, bool) {
				if af == nil || af.Key != key {
					return meta, false
				}
				return meta.WithAnnotation(types.FeaturePitch, types.Annotation{
					Value: float64(af.Key),
					Label: PitchNames[af.Key],
				}), true
			}, nil
		},
	}
}

// bounds restricts the criterion of a range filter to a closed interval.
type bounds struct{ lo, hi float64 }

var unitInterval = &bounds{0, 1}

// Range matches tracks whose feature value lies in a "min-max" criterion,
// inclusive on both ends, and annotates the matched value. When domain is
// non-nil, a criterion reaching outside it fails with types.ErrRange.
func Range(feature types.Feature, column string, value func(*types.AudioFeatures) float64, domain *bounds) Filter {
	return Filter{
		Feature: feature,
		Column:  column,
		Parse: func(c types.Criterion) (Matcher, error) {
			lo, hi, err := ParseRange(c)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", feature, err)
			}
			if domain != nil && (lo < domain.lo || hi > domain.hi) {
				return nil, fmt.Errorf("%s %q: values must be between %g and %g: %w",
					feature, c, domain.lo, domain.hi, types.ErrRange)
			}
			return func(meta types.TrackMetadata, af *types.AudioFeatures) (types.TrackMetadata, bool) {
				if af == nil {
					return meta, false
				}
				v := value(af)
				if v < lo || v > hi {
					return meta, false
				}
				return meta.WithAnnotation(feature, types.Annotation{Value: v}), true
			}, nil
		},
	}
}

// ParseRange parses "min-max". A leading minus sign on either bound is part
// of the number, so "-0.1-1.2" is min -0.1, max 1.2. Malformed input, a
// non-finite bound, or min > max fails with types.ErrParse.
func ParseRange(c types.Criterion) (lo, hi float64, err error) {
	s := strings.TrimSpace(string(c))
	sep := rangeSeparator(s)
	if sep < 0 {
		return 0, 0, fmt.Errorf("%q: expected min-max: %w", c, types.ErrParse)
	}

	lo, errLo := parseBound(s[:sep])
	hi, errHi := parseBound(s[sep+1:])
	if errLo != nil || errHi != nil {
		return 0, 0, fmt.Errorf("%q: expected min-max with numeric bounds: %w", c, types.ErrParse)
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("%q: min is greater than max: %w", c, types.ErrParse)
	}
	return lo, hi, nil
}

// rangeSeparator returns the index of the '-' splitting min from max, or -1.
// A '-' at the start, after another '-', or after an exponent marker is a sign.
func rangeSeparator(s string) int {
	for i := 1; i < len(s); i++ {
		if s[i] != '-' {
			continue
		}
		switch s[i-1] {
		case '-', 'e', 'E':
			continue
		}
		return i
	}
	return -1
}

func parseBound(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite bound %q", s)
	}
	return v, nil
}
