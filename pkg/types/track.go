// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the spotifynd pipeline:
// search kinds, track metadata and audio features, filter criteria, and the
// error taxonomy shared by the resolver, enricher, filter engine, and preset
// store.
package types

import (
	"maps"
	"strconv"
)

// SearchKind selects which catalog lookup path a query takes.
type SearchKind int

const (
	KindTrack SearchKind = iota
	KindArtist
)

func (k SearchKind) String() string {
	switch k {
	case KindArtist:
		return "artist"
	default:
		return "track"
	}
}

// TrackRecord is a raw track as returned by the catalog, before the enricher
// flattens it into TrackMetadata.
type TrackRecord struct {
	ID        string
	Name      string
	Artists   []string
	ImageURLs []string
}

// AudioFeatures holds the audio-analysis attributes of a single track.
type AudioFeatures struct {
	ID               string  `json:"id" yaml:"id"`
	Tempo            float64 `json:"tempo" yaml:"tempo"`
	Key              int     `json:"key" yaml:"key"`
	Mode             int     `json:"mode" yaml:"mode"`
	TimeSignature    int     `json:"time_signature" yaml:"time_signature"`
	Danceability     float64 `json:"danceability" yaml:"danceability"`
	Acousticness     float64 `json:"acousticness" yaml:"acousticness"`
	Liveness         float64 `json:"liveness" yaml:"liveness"`
	Energy           float64 `json:"energy" yaml:"energy"`
	Speechiness      float64 `json:"speechiness" yaml:"speechiness"`
	Valence          float64 `json:"valence" yaml:"valence"`
	Instrumentalness float64 `json:"instrumentalness" yaml:"instrumentalness"`
}

// Annotation is the value a filter writes onto a track it matched. Label is
// set when the value has a display name (pitch class names).
type Annotation struct {
	Value float64 `json:"value" yaml:"value"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
}

// String returns the label if present, otherwise the formatted value.
func (a Annotation) String() string {
	if a.Label != "" {
		return a.Label
	}
	return strconv.FormatFloat(a.Value, 'f', -1, 64)
}

// TrackMetadata is one row of the result table. Artist and Song are fixed at
// creation; filters only ever add entries to Annotations.
type TrackMetadata struct {
	ID          string                 `json:"id" yaml:"id"`
	ArtworkURL  string                 `json:"art" yaml:"art"`
	Artist      string                 `json:"artist" yaml:"artist"`
	Song        string                 `json:"song" yaml:"song"`
	Annotations map[Feature]Annotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// Annotation returns the annotation written by the filter for f, if any.
func (m TrackMetadata) Annotation(f Feature) (Annotation, bool) {
	a, ok := m.Annotations[f]
	return a, ok
}

// WithAnnotation returns a copy of m carrying a under feature f. The receiver's
// annotation map is left untouched.
func (m TrackMetadata) WithAnnotation(f Feature, a Annotation) TrackMetadata {
	out := m
	out.Annotations = make(map[Feature]Annotation, len(m.Annotations)+1)
	maps.Copy(out.Annotations, m.Annotations)
	out.Annotations[f] = a
	return out
}

// TrackPair couples a track's metadata with its audio features. Features is
// nil when the catalog has no analysis for the track.
type TrackPair struct {
	Metadata TrackMetadata
	Features *AudioFeatures
}
