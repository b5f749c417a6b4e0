// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/spotifynd/internal/catalog"
	"github.com/pdiddy/spotifynd/internal/filter"
	"github.com/pdiddy/spotifynd/internal/pipeline"
	"github.com/pdiddy/spotifynd/internal/preset"
	"github.com/pdiddy/spotifynd/internal/report"
	"github.com/pdiddy/spotifynd/internal/secrets"
	"github.com/pdiddy/spotifynd/pkg/types"
)

// autoExport is the --export value used when the flag is given without a
// path; the file name is then derived from the query.
const autoExport = "auto"

// featureFlag binds a command-line flag to a filter feature.
type featureFlag struct {
	name      string
	shorthand string
	feature   types.Feature
	usage     string
}

var featureFlags = []featureFlag{
	{"pitch", "p", types.FeaturePitch, "pitch class 0-11 (0 = C, 11 = B)"},
	{"tempo", "t", types.FeatureTempo, "tempo range in BPM, e.g. 120-180"},
	{"dance", "d", types.FeatureDanceability, "danceability range within 0-1, e.g. 0.2-0.7"},
	{"time-signature", "", types.FeatureTimeSignature, "time signature range, e.g. 3-4"},
	{"acousticness", "", types.FeatureAcousticness, "acousticness range, e.g. 0-0.3"},
	{"liveness", "l", types.FeatureLiveness, "liveness range, e.g. 0.5-1"},
	{"energy", "e", types.FeatureEnergy, "energy range, e.g. 0.6-1"},
	{"speechiness", "", types.FeatureSpeechiness, "speechiness range, e.g. 0-0.1"},
}

func init() {
	addSearchFlags(rootCmd)

	_ = viper.BindPFlag("search.exclude_unmatched", rootCmd.Flags().Lookup("exclude"))
	_ = viper.BindPFlag("spotify.market", rootCmd.Flags().Lookup("market"))
}

func addSearchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("artist", "a", "", "artist name; searches that artist's top tracks")
	f.StringP("song", "s", "", "song name")
	for _, ff := range featureFlags {
		f.StringP(ff.name, ff.shorthand, "", ff.usage)
	}
	f.Bool("save", false, "save the given filters as the preset")
	f.Bool("load", false, "replace the given filters with the saved preset")
	f.Bool("exclude", false, "drop tracks that do not satisfy every filter")
	f.Bool("json", false, "output results as JSON")
	f.Bool("summary", false, "print per-filter match statistics")
	f.String("export", "", "write results to a .json, .yaml, or .yml file")
	f.Lookup("export").NoOptDefVal = autoExport
	f.String("market", "", "market for artist top tracks (default US)")
}

// queryFromFlags collects the artist, song, and every set filter flag.
func queryFromFlags(cmd *cobra.Command) pipeline.Query {
	artist, _ := cmd.Flags().GetString("artist")
	song, _ := cmd.Flags().GetString("song")

	q := pipeline.Query{Artist: artist, Song: song, Criteria: types.FilterSet{}}
	for _, ff := range featureFlags {
		v, _ := cmd.Flags().GetString(ff.name)
		q.Criteria.Set(ff.feature, types.Criterion(v))
	}
	return q
}

func runSearch(cmd *cobra.Command, args []string) error {
	printBanner(os.Stderr)

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	q := queryFromFlags(cmd)
	q, err = applyPreset(ctx, cmd, cfg.Preset, q)
	if err != nil {
		return err
	}

	// Reject bad input before authenticating.
	if _, _, err := q.Kind(); err != nil {
		return err
	}
	if _, err := filter.DefaultRegistry().Compile(q.Criteria, false); err != nil {
		return err
	}

	clientID, clientSecret, err := secrets.Credentials(loadedSecrets, cfg.Catalog.ClientID, cfg.Catalog.ClientSecret)
	if err != nil {
		return err
	}
	cfg.Catalog.ClientID, cfg.Catalog.ClientSecret = clientID, clientSecret

	orch := pipeline.New(catalog.NewSpotify(ctx, cfg.Catalog), cfg.Search, os.Stderr)
	records, err := orch.Run(ctx, q)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		warnf("no tracks matched")
	}

	return writeResults(cmd, orch.Registry(), q, records)
}

// applyPreset handles --save and --load. Saving happens first, so
// "--save --load" stores the given filters and then uses them. Filters that
// do not compile are never saved.
func applyPreset(ctx context.Context, cmd *cobra.Command, cfg types.PresetConfig, q pipeline.Query) (pipeline.Query, error) {
	save, _ := cmd.Flags().GetBool("save")
	load, _ := cmd.Flags().GetBool("load")
	if !save && !load {
		return q, nil
	}
	if save {
		if _, err := filter.DefaultRegistry().Compile(q.Criteria, false); err != nil {
			return q, err
		}
	}

	store, err := preset.NewStore(cfg)
	if err != nil {
		return q, err
	}
	defer store.Close()

	if save {
		info, err := store.Save(ctx, q.Criteria)
		if err != nil {
			return q, err
		}
		fmt.Fprintf(os.Stderr, "Saved preset %s (%d filters)\n", info.ID, len(q.Criteria.Active()))
	}
	if load {
		set, err := store.Load(ctx)
		if err != nil {
			return q, err
		}
		q.Criteria = set
		fmt.Fprintf(os.Stderr, "Loaded preset with filters: %v\n", set.Active())
	}
	return q, nil
}

func writeResults(cmd *cobra.Command, reg *filter.Registry, q pipeline.Query, records []types.TrackMetadata) error {
	features := q.Criteria.Active()

	if path, _ := cmd.Flags().GetString("export"); path != "" {
		if path == autoExport {
			_, name, _ := q.Kind()
			path = report.ExportName(name, ".yaml")
		}
		if err := report.Export(path, records); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d tracks to %s\n", len(records), path)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return report.FormatJSON(os.Stdout, records)
	}

	report.FormatTable(os.Stdout, records, features, reg.Column)
	if summary, _ := cmd.Flags().GetBool("summary"); summary {
		report.FormatSummary(os.Stdout, report.Summarize(records, features), reg.Column)
	}
	return nil
}
