// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"fmt"

	"github.com/pdiddy/spotifynd/pkg/types"
)

// Registry maps feature names to filters. Filters run in registration order.
type Registry struct {
	filters map[types.Feature]Filter
	order   []types.Feature
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{filters: make(map[types.Feature]Filter)}
}

// DefaultRegistry returns a registry with every built-in filter.
// Danceability is the only range filter whose bounds are domain-checked.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Pitch())
	r.Register(Range(types.FeatureTempo, "Tempo",
		func(af *types.AudioFeatures) float64 { return af.Tempo }, nil))
	r.Register(Range(types.FeatureDanceability, "Danceability",
		func(af *types.AudioFeatures) float64 { return af.Danceability }, unitInterval))
	r.Register(Range(types.FeatureTimeSignature, "Time Signature",
		func(af *types.AudioFeatures) float64 { return float64(af.TimeSignature) }, nil))
	r.Register(Range(types.FeatureAcousticness, "Acousticness",
		func(af *types.AudioFeatures) float64 { return af.Acousticness }, nil))
	r.Register(Range(types.FeatureLiveness, "Liveness",
		func(af *types.AudioFeatures) float64 { return af.Liveness }, nil))
	r.Register(Range(types.FeatureEnergy, "Energy",
		func(af *types.AudioFeatures) float64 { return af.Energy }, nil))
	r.Register(Range(types.FeatureSpeechiness, "Speechiness",
		func(af *types.AudioFeatures) float64 { return af.Speechiness }, nil))
	return r
}

// Register adds f, replacing any filter already registered for its feature.
func (r *Registry) Register(f Filter) {
	if _, ok := r.filters[f.Feature]; !ok {
		r.order = append(r.order, f.Feature)
	}
	r.filters[f.Feature] = f
}

// Lookup returns the filter registered for feature.
func (r *Registry) Lookup(feature types.Feature) (Filter, bool) {
	f, ok := r.filters[feature]
	return f, ok
}

// Column returns the display heading for feature, falling back to its name.
func (r *Registry) Column(feature types.Feature) string {
	if f, ok := r.filters[feature]; ok && f.Column != "" {
		return f.Column
	}
	return string(feature)
}

type compiled struct {
	feature types.Feature
	match   Matcher
}

// Engine applies a compiled set of filters to enriched tracks.
type Engine struct {
	active  []compiled
	exclude bool
}

// Compile parses every set criterion in set. It fails on the first
// unparseable criterion, before any track is touched. An unknown feature
// name fails with types.ErrParse.
func (r *Registry) Compile(set types.FilterSet, exclude bool) (*Engine, error) {
	for feature, c := range set {
		if _, ok := r.filters[feature]; !ok && c.IsSet() {
			return nil, fmt.Errorf("unknown filter %q: %w", feature, types.ErrParse)
		}
	}

	e := &Engine{exclude: exclude}
	for _, feature := range r.order {
		c := set.Get(feature)
		if !c.IsSet() {
			continue
		}
		m, err := r.filters[feature].Parse(c)
		if err != nil {
			return nil, err
		}
		e.active = append(e.active, compiled{feature: feature, match: m})
	}
	return e, nil
}

// Features returns the active filters' features in application order.
func (e *Engine) Features() []types.Feature {
	out := make([]types.Feature, len(e.active))
	for i, c := range e.active {
		out[i] = c.feature
	}
	return out
}

// Apply runs every active filter over each pair in order and returns the
// resulting metadata. Every pair yields a record unless the engine was
// compiled with exclude, in which case only records annotated by all
// active filters are kept.
func (e *Engine) Apply(pairs []types.TrackPair) []types.TrackMetadata {
	out := make([]types.TrackMetadata, 0, len(pairs))
	for _, p := range pairs {
		meta, matchedAll := e.annotate(p)
		if e.exclude && !matchedAll {
			continue
		}
		out = append(out, meta)
	}
	return out
}

func (e *Engine) annotate(p types.TrackPair) (types.TrackMetadata, bool) {
	meta := p.Metadata
	matchedAll := true
	for _, c := range e.active {
		var ok bool
		meta, ok = c.match(meta, p.Features)
		matchedAll = matchedAll && ok
	}
	return meta, matchedAll
}
