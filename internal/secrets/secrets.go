// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads the Spotify client id and secret from .secrets/,
// one file per value, and merges them with explicitly configured values.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Key file names.
const (
	ClientIDKey     = "spotify-client-id"
	ClientSecretKey = "spotify-client-secret"
)

// Load returns the non-empty secrets found in dir, keyed by file name.
// Dotfiles and subdirectories are ignored. If dir does not exist the result
// is empty. A file that cannot be read is reported on stderr and skipped.
func Load(dir string) (map[string]string, error) {
	out := map[string]string{}
	entries, err := os.ReadDir(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return out, nil
	case err != nil:
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		value, err := readSecret(filepath.Join(dir, e.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping secret %s: %v\n", e.Name(), err)
			continue
		}
		if value != "" {
			out[e.Name()] = value
		}
	}
	return out, nil
}

func readSecret(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Credentials returns the client id and secret, preferring the explicit
// values (from flags, config, or environment) over the loaded secret files.
func Credentials(loaded map[string]string, clientID, clientSecret string) (string, string, error) {
	if clientID == "" {
		clientID = loaded[ClientIDKey]
	}
	if clientSecret == "" {
		clientSecret = loaded[ClientSecretKey]
	}
	if clientID == "" || clientSecret == "" {
		return "", "", fmt.Errorf("spotify credentials missing: set SPOTIFYND_SPOTIFY_CLIENT_ID and SPOTIFYND_SPOTIFY_CLIENT_SECRET or add .secrets/%s and .secrets/%s", ClientIDKey, ClientSecretKey)
	}
	return clientID, clientSecret, nil
}
