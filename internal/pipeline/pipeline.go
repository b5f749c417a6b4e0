// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline classifies a query, drives resolve, enrich, and filter
// in order, and collects the resulting records.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/spotifynd/internal/catalog"
	"github.com/pdiddy/spotifynd/internal/enrich"
	"github.com/pdiddy/spotifynd/internal/filter"
	"github.com/pdiddy/spotifynd/internal/resolve"
	"github.com/pdiddy/spotifynd/pkg/types"
)

// Query holds the user's inputs for one run.
type Query struct {
	Artist   string
	Song     string
	Criteria types.FilterSet
}

// Kind classifies q. An artist name selects artist search; otherwise a song
// name or any criterion selects track search with the song (possibly empty)
// as the query. With none of these it fails with types.ErrMissingQuery.
func (q Query) Kind() (types.SearchKind, string, error) {
	switch {
	case q.Artist != "":
		return types.KindArtist, q.Artist, nil
	case q.Song != "" || !q.Criteria.IsEmpty():
		return types.KindTrack, q.Song, nil
	default:
		return 0, "", types.ErrMissingQuery
	}
}

// Orchestrator runs the search pipeline against a catalog.
type Orchestrator struct {
	catalog  catalog.Catalog
	resolver *resolve.Resolver
	enricher *enrich.Enricher
	registry *filter.Registry
	cfg      types.SearchConfig
	w        io.Writer
}

// New returns an Orchestrator using c for every lookup and the default
// filter registry. Progress lines go to w.
func New(c catalog.Catalog, cfg types.SearchConfig, w io.Writer) *Orchestrator {
	if w == nil {
		w = io.Discard
	}
	return &Orchestrator{
		catalog:  c,
		resolver: resolve.New(c, cfg, w),
		enricher: enrich.New(c),
		registry: filter.DefaultRegistry(),
		cfg:      cfg,
		w:        w,
	}
}

// Registry returns the filter registry used by Run.
func (o *Orchestrator) Registry() *filter.Registry {
	return o.registry
}

// Run executes the pipeline for q. Criteria are compiled before any catalog
// call. Any failure aborts the run; no partial results are returned. Records
// come back in discovery order: catalog relevance order for tracks, artist
// order then top-track order for artists.
func (o *Orchestrator) Run(ctx context.Context, q Query) ([]types.TrackMetadata, error) {
	kind, name, err := q.Kind()
	if err != nil {
		return nil, err
	}

	engine, err := o.registry.Compile(q.Criteria, o.cfg.ExcludeUnmatched)
	if err != nil {
		return nil, err
	}

	ids, err := o.resolver.Resolve(ctx, name, kind)
	if err != nil {
		return nil, err
	}

	if kind == types.KindTrack {
		pairs, err := o.enricher.Enrich(ctx, ids)
		if err != nil {
			return nil, err
		}
		return engine.Apply(pairs), nil
	}

	var results []types.TrackMetadata
	for _, artistID := range ids {
		trackIDs, err := o.catalog.ArtistTopTracks(ctx, artistID)
		if err != nil {
			return nil, err
		}
		if len(trackIDs) == 0 {
			fmt.Fprintf(o.w, "  artist %s has no top tracks\n", artistID)
			continue
		}

		pairs, err := o.enricher.Enrich(ctx, trackIDs)
		if err != nil {
			return nil, err
		}
		results = append(results, engine.Apply(pairs)...)
	}
	return results, nil
}
