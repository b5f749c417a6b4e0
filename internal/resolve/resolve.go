// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns a free-text artist or song name into an ordered list
// of catalog identifiers.
package resolve

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/spotifynd/internal/catalog"
	"github.com/pdiddy/spotifynd/pkg/types"
)

// Resolver searches the catalog for identifiers.
type Resolver struct {
	catalog catalog.Catalog
	cfg     types.SearchConfig
	w       io.Writer
}

// New returns a Resolver that reports match counts to w.
func New(c catalog.Catalog, cfg types.SearchConfig, w io.Writer) *Resolver {
	if w == nil {
		w = io.Discard
	}
	return &Resolver{catalog: c, cfg: cfg.WithDefaults(), w: w}
}

// Limit returns the result cap used for kind.
func (r *Resolver) Limit(kind types.SearchKind) int {
	if kind == types.KindArtist {
		return r.cfg.ArtistLimit
	}
	return r.cfg.TrackLimit
}

// Resolve returns identifiers for name in the catalog's relevance order.
// Zero matches yield types.ErrNotFound. Catalog errors are returned as-is.
func (r *Resolver) Resolve(ctx context.Context, name string, kind types.SearchKind) ([]string, error) {
	ids, err := r.catalog.Search(ctx, name, kind, r.Limit(kind))
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(r.w, "Number of results: %d\n", len(ids))
	if len(ids) == 0 {
		return nil, fmt.Errorf("no %ss found with the name %q: %w", kind, name, types.ErrNotFound)
	}
	return ids, nil
}
