// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/pdiddy/spotifynd/internal/httputil"
	"github.com/pdiddy/spotifynd/pkg/types"
)

// Web API batch limits.
const (
	maxTrackIDs   = 50
	maxFeatureIDs = 100
)

// Spotify implements Catalog on the Spotify Web API.
type Spotify struct {
	client  *spotify.Client
	market  string
	timeout time.Duration
}

var _ Catalog = (*Spotify)(nil)

// NewSpotify builds an app-authenticated client using the client-credentials
// flow. ctx is retained for token refreshes and should outlive the client.
func NewSpotify(ctx context.Context, cfg types.CatalogConfig) *Spotify {
	cfg = cfg.WithDefaults()

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}

	base := httputil.NewClient(cfg.Timeout, cfg.UserAgent, cfg.MaxRetries)
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	return New(cc.Client(ctx), cfg)
}

// New wraps an already-authenticated HTTP client.
func New(httpClient *http.Client, cfg types.CatalogConfig) *Spotify {
	cfg = cfg.WithDefaults()

	var opts []spotify.ClientOption
	if cfg.BaseURL != "" {
		opts = append(opts, spotify.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")+"/"))
	}
	return &Spotify{
		client:  spotify.New(httpClient, opts...),
		market:  cfg.Market,
		timeout: cfg.Timeout,
	}
}

func (s *Spotify) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Search queries "<kind>:<name>", e.g. "artist:The Wonder Years".
func (s *Spotify) Search(ctx context.Context, name string, kind types.SearchKind, limit int) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var searchType spotify.SearchType = spotify.SearchTypeTrack
	if kind == types.KindArtist {
		searchType = spotify.SearchTypeArtist
	}

	res, err := s.client.Search(ctx, kind.String()+":"+name, searchType, spotify.Limit(limit))
	if err != nil {
		return nil, err
	}

	var ids []string
	switch kind {
	case types.KindArtist:
		if res.Artists != nil {
			for _, a := range res.Artists.Artists {
				ids = append(ids, string(a.ID))
			}
		}
	default:
		if res.Tracks != nil {
			for _, t := range res.Tracks.Tracks {
				ids = append(ids, string(t.ID))
			}
		}
	}
	return ids, nil
}

// Tracks fetches track metadata in chunks of 50.
func (s *Spotify) Tracks(ctx context.Context, ids []string) ([]types.TrackRecord, error) {
	records := make([]types.TrackRecord, 0, len(ids))
	for _, chunk := range chunks(ids, maxTrackIDs) {
		got, err := s.getTracks(ctx, chunk)
		if err != nil {
			return nil, err
		}
		for i, ft := range got {
			if ft == nil {
				records = append(records, types.TrackRecord{ID: chunk[i]})
				continue
			}
			records = append(records, trackRecord(ft))
		}
	}
	return records, nil
}

func (s *Spotify) getTracks(ctx context.Context, ids []string) ([]*spotify.FullTrack, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.client.GetTracks(ctx, toIDs(ids))
}

// AudioFeatures fetches audio features in chunks of 100.
func (s *Spotify) AudioFeatures(ctx context.Context, ids []string) ([]*types.AudioFeatures, error) {
	features := make([]*types.AudioFeatures, 0, len(ids))
	for _, chunk := range chunks(ids, maxFeatureIDs) {
		got, err := s.getAudioFeatures(ctx, chunk)
		if err != nil {
			return nil, err
		}
		for _, af := range got {
			features = append(features, audioFeatures(af))
		}
	}
	return features, nil
}

func (s *Spotify) getAudioFeatures(ctx context.Context, ids []string) ([]*spotify.AudioFeatures, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.client.GetAudioFeatures(ctx, toIDs(ids)...)
}

// ArtistTopTracks returns the artist's top tracks for the configured market.
func (s *Spotify) ArtistTopTracks(ctx context.Context, artistID string) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tracks, err := s.client.GetArtistsTopTracks(ctx, spotify.ID(artistID), s.market)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = string(t.ID)
	}
	return ids, nil
}

func trackRecord(ft *spotify.FullTrack) types.TrackRecord {
	r := types.TrackRecord{
		ID:   string(ft.ID),
		Name: ft.Name,
	}
	for _, a := range ft.Artists {
		r.Artists = append(r.Artists, a.Name)
	}
	for _, img := range ft.Album.Images {
		r.ImageURLs = append(r.ImageURLs, img.URL)
	}
	return r
}

func audioFeatures(af *spotify.AudioFeatures) *types.AudioFeatures {
	if af == nil {
		return nil
	}
	return &types.AudioFeatures{
		ID:               string(af.ID),
		Tempo:            widen(af.Tempo),
		Key:              af.Key,
		Mode:             af.Mode,
		TimeSignature:    af.TimeSignature,
		Danceability:     widen(af.Danceability),
		Acousticness:     widen(af.Acousticness),
		Liveness:         widen(af.Liveness),
		Energy:           widen(af.Energy),
		Speechiness:      widen(af.Speechiness),
		Valence:          widen(af.Valence),
		Instrumentalness: widen(af.Instrumentalness),
	}
}

// widen converts a float32 to the float64 with the same shortest decimal
// form, so 0.7 stays 0.7 instead of 0.699999988079071.
func widen(v float32) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'f', -1, 32), 64)
	return f
}

func toIDs(ids []string) []spotify.ID {
	out := make([]spotify.ID, len(ids))
	for i, id := range ids {
		out[i] = spotify.ID(id)
	}
	return out
}

func chunks(ids []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		out = append(out, ids[start:end])
	}
	return out
}
