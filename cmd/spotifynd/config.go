// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/spotifynd/pkg/types"
)

// setDefaults registers every config key so that environment variables
// (SPOTIFYND_SPOTIFY_CLIENT_ID and so on) are seen by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("spotify.client_id", "")
	v.SetDefault("spotify.client_secret", "")
	v.SetDefault("spotify.market", types.DefaultMarket)
	v.SetDefault("spotify.timeout", types.DefaultTimeout)
	v.SetDefault("spotify.user_agent", types.DefaultUserAgent)
	v.SetDefault("spotify.max_retries", 5)
	v.SetDefault("spotify.base_url", "")
	v.SetDefault("spotify.token_url", "")
	v.SetDefault("search.track_limit", types.DefaultTrackLimit)
	v.SetDefault("search.artist_limit", types.DefaultArtistLimit)
	v.SetDefault("search.exclude_unmatched", false)
	v.SetDefault("preset.db_path", "")
}

// loadConfig decodes v into a Config.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Catalog = cfg.Catalog.WithDefaults()
	cfg.Search = cfg.Search.WithDefaults()
	return cfg, nil
}
