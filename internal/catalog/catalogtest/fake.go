// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalogtest provides an in-memory catalog for tests.
package catalogtest

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/spotifynd/internal/catalog"
	"github.com/pdiddy/spotifynd/pkg/types"
)

// Fake is an in-memory catalog.Catalog. Lookups of unknown ids return empty
// records and nil features, mirroring the Web API's null entries. Every
// call is appended to Calls as a short string such as "search artist:Name 10".
type Fake struct {
	// SearchResults is keyed by "<kind>:<name>".
	SearchResults map[string][]string
	Records       map[string]types.TrackRecord
	Features      map[string]*types.AudioFeatures
	TopTracks     map[string][]string

	// SearchErr and TracksErr fail every call of that kind when set.
	SearchErr error
	TracksErr error
	// TopTracksErr fails top-track lookups for the given artist ids.
	TopTracksErr map[string]error
	// DropLastFeature makes AudioFeatures return one entry too few.
	DropLastFeature bool

	Calls []string
}

var _ catalog.Catalog = (*Fake)(nil)

// New returns an empty Fake ready for population.
func New() *Fake {
	return &Fake{
		SearchResults: map[string][]string{},
		Records:       map[string]types.TrackRecord{},
		Features:      map[string]*types.AudioFeatures{},
		TopTracks:     map[string][]string{},
		TopTracksErr:  map[string]error{},
	}
}

// AddTrack registers a track with a single artist and artwork image.
func (f *Fake) AddTrack(id, song, artist string, features *types.AudioFeatures) {
	f.Records[id] = types.TrackRecord{
		ID:        id,
		Name:      song,
		Artists:   []string{artist},
		ImageURLs: []string{"https://img.example/" + id + ".jpg"},
	}
	if features != nil {
		features.ID = id
		f.Features[id] = features
	}
}

func (f *Fake) Search(_ context.Context, name string, kind types.SearchKind, limit int) ([]string, error) {
	key := kind.String() + ":" + name
	f.Calls = append(f.Calls, fmt.Sprintf("search %s %d", key, limit))
	if f.SearchErr != nil {
		return nil, f.SearchErr
	}
	ids := f.SearchResults[key]
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *Fake) Tracks(_ context.Context, ids []string) ([]types.TrackRecord, error) {
	f.Calls = append(f.Calls, "tracks "+strings.Join(ids, ","))
	if f.TracksErr != nil {
		return nil, f.TracksErr
	}
	out := make([]types.TrackRecord, len(ids))
	for i, id := range ids {
		r, ok := f.Records[id]
		if !ok {
			r = types.TrackRecord{ID: id}
		}
		out[i] = r
	}
	return out, nil
}

func (f *Fake) AudioFeatures(_ context.Context, ids []string) ([]*types.AudioFeatures, error) {
	f.Calls = append(f.Calls, "features "+strings.Join(ids, ","))
	out := make([]*types.AudioFeatures, len(ids))
	for i, id := range ids {
		out[i] = f.Features[id]
	}
	if f.DropLastFeature && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (f *Fake) ArtistTopTracks(_ context.Context, artistID string) ([]string, error) {
	f.Calls = append(f.Calls, "top-tracks "+artistID)
	if err := f.TopTracksErr[artistID]; err != nil {
		return nil, err
	}
	return f.TopTracks[artistID], nil
}
