// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the spotifynd CLI. The root command
// searches the catalog by artist or song and overlays audio-feature filters
// on the results; subcommands manage the saved filter preset.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/spotifynd/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// envKeyReplacer maps config keys to environment names, so spotify.client_id
// is read from SPOTIFYND_SPOTIFY_CLIENT_ID.
var envKeyReplacer = strings.NewReplacer(".", "_")

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

const banner = `
	   _________              __  .__  _____                  .___
	  /   _____/_____   _____/  |_|__|/ ____\__.__. ____    __| _/
	  \_____  \\____ \ /  _ \   __\  \   __<   |  |/    \  / __ |
	  /        \  |_> >  <_> )  | |  ||  |  \___  |   |  \/ /_/ |
	 /_______  /   __/ \____/|__| |__||__|  / ____|___|  /\____ |
	         \/|__|                         \/         \/      \/
`

// rootCmd searches the catalog. Without subcommands it runs the pipeline.
var rootCmd = &cobra.Command{
	Use:   "spotifynd",
	Short: "Find tracks by artist or song and filter them by audio features",
	Long: `spotifynd searches the Spotify catalog for an artist's top tracks or for
songs by name, fetches their audio features, and marks each track with the
filters it satisfies (pitch, tempo, danceability, and more).

Filters annotate matching tracks without removing the others; pass --exclude
to keep only tracks that satisfy every filter. Save the current filters with
--save and reuse them later with --load.`,
	Example: `  spotifynd -a "The Wonder Years" -t 120-180
  spotifynd -s "Came Out Swinging" -p 0 --json
  spotifynd -d 0.6-0.9 --save`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
	RunE: runSearch,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./spotifynd.yaml or $XDG_CONFIG_HOME/spotifynd/spotifynd.yaml)")
	rootCmd.PersistentFlags().String("db", "", "preset database path (default: $XDG_DATA_HOME/spotifynd/presets.db)")
	_ = viper.BindPFlag("preset.db_path", rootCmd.PersistentFlags().Lookup("db"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("spotifynd")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(filepath.Join(xdg.ConfigHome, "spotifynd"))
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("SPOTIFYND")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func printBanner(w io.Writer) {
	color.New(color.FgGreen, color.Bold).Fprint(w, banner)
}

func warnf(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
