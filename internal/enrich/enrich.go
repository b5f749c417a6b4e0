// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich fetches track metadata and audio features for a list of
// identifiers and pairs them by position.
package enrich

import (
	"context"
	"fmt"

	"github.com/pdiddy/spotifynd/internal/catalog"
	"github.com/pdiddy/spotifynd/pkg/types"
)

// Enricher pairs catalog metadata with audio features.
type Enricher struct {
	catalog catalog.Catalog
}

// New returns an Enricher backed by c.
func New(c catalog.Catalog) *Enricher {
	return &Enricher{catalog: c}
}

// Enrich issues one batched track lookup and one batched feature lookup for
// ids and returns the pairs in the catalog's response order. The two
// responses must be the same length, otherwise types.ErrInconsistentResponse
// is returned rather than risking misaligned pairs.
func (e *Enricher) Enrich(ctx context.Context, ids []string) ([]types.TrackPair, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	records, err := e.catalog.Tracks(ctx, ids)
	if err != nil {
		return nil, err
	}
	features, err := e.catalog.AudioFeatures(ctx, ids)
	if err != nil {
		return nil, err
	}

	if len(records) != len(features) {
		return nil, fmt.Errorf("%d tracks but %d feature records for %d ids: %w",
			len(records), len(features), len(ids), types.ErrInconsistentResponse)
	}

	pairs := make([]types.TrackPair, len(records))
	for i, rec := range records {
		pairs[i] = types.TrackPair{
			Metadata: Metadata(rec),
			Features: features[i],
		}
	}
	return pairs, nil
}

// Metadata builds the result row for a raw track: first artwork image,
// first listed artist, and the track's display name.
func Metadata(rec types.TrackRecord) types.TrackMetadata {
	m := types.TrackMetadata{
		ID:   rec.ID,
		Song: rec.Name,
	}
	if len(rec.ImageURLs) > 0 {
		m.ArtworkURL = rec.ImageURLs[0]
	}
	if len(rec.Artists) > 0 {
		m.Artist = rec.Artists[0]
	}
	return m
}
