// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog adapts the Spotify Web API to the four lookups the
// pipeline needs: search, batched track lookup, batched audio-feature
// lookup, and artist top tracks.
package catalog

import (
	"context"

	"github.com/pdiddy/spotifynd/pkg/types"
)

// Catalog is the capability the resolver and enricher consume. Batched
// lookups take the full id list in one call; implementations split it into
// API-sized requests as needed and return results in input order.
type Catalog interface {
	// Search returns the ids of up to limit matches for name, in the
	// catalog's relevance order.
	Search(ctx context.Context, name string, kind types.SearchKind, limit int) ([]string, error)

	// Tracks returns one record per id.
	Tracks(ctx context.Context, ids []string) ([]types.TrackRecord, error)

	// AudioFeatures returns one entry per id. An entry is nil when the
	// catalog has no analysis for that track.
	AudioFeatures(ctx context.Context, ids []string) ([]*types.AudioFeatures, error)

	// ArtistTopTracks returns the ids of an artist's top tracks.
	ArtistTopTracks(ctx context.Context, artistID string) ([]string, error)
}
