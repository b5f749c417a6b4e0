// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for catalog requests.
type HTTPConfig struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with catalog requests
	// (e.g. "spotifynd/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries is the number of retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// CatalogConfig holds settings for the Spotify catalog adapter.
type CatalogConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// ClientID and ClientSecret are the Spotify application credentials used
	// for the client-credentials token flow.
	ClientID     string `json:"client_id" yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `json:"-" yaml:"-" mapstructure:"client_secret"`

	// Market is the ISO country code used for artist top tracks (default "US").
	Market string `json:"market" yaml:"market" mapstructure:"market"`

	// BaseURL overrides the Web API base URL. Empty means the public API.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// TokenURL overrides the OAuth token endpoint. Empty means Spotify's.
	TokenURL string `json:"token_url,omitempty" yaml:"token_url,omitempty" mapstructure:"token_url"`
}

// SearchConfig holds settings for identifier resolution and filtering.
type SearchConfig struct {
	// TrackLimit caps track search results (default 50).
	TrackLimit int `json:"track_limit" yaml:"track_limit" mapstructure:"track_limit"`

	// ArtistLimit caps artist search results (default 10).
	ArtistLimit int `json:"artist_limit" yaml:"artist_limit" mapstructure:"artist_limit"`

	// ExcludeUnmatched drops records not annotated by every active filter.
	// The default keeps every record and only annotates matches.
	ExcludeUnmatched bool `json:"exclude_unmatched" yaml:"exclude_unmatched" mapstructure:"exclude_unmatched"`
}

// PresetConfig holds settings for the filter preset store.
type PresetConfig struct {
	// DBPath is the SQLite database holding the preset slot.
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`
}

// Config groups all settings for a spotifynd run.
type Config struct {
	Catalog CatalogConfig `json:"spotify" yaml:"spotify" mapstructure:"spotify"`
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	Preset  PresetConfig  `json:"preset" yaml:"preset" mapstructure:"preset"`
}

// Defaults for unset configuration values.
const (
	DefaultTrackLimit  = 50
	DefaultArtistLimit = 10
	DefaultMarket      = "US"
	DefaultTimeout     = 30 * time.Second
	DefaultUserAgent   = "spotifynd/0.1"
)

// WithDefaults returns c with zero values replaced by defaults.
func (c SearchConfig) WithDefaults() SearchConfig {
	if c.TrackLimit <= 0 {
		c.TrackLimit = DefaultTrackLimit
	}
	if c.ArtistLimit <= 0 {
		c.ArtistLimit = DefaultArtistLimit
	}
	return c
}

// WithDefaults returns c with zero values replaced by defaults.
func (c CatalogConfig) WithDefaults() CatalogConfig {
	if c.Market == "" {
		c.Market = DefaultMarket
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}
