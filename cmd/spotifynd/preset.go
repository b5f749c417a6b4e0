// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/spotifynd/internal/preset"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Inspect or manage the saved filter preset",
	Long: `Preset manages the single saved filter preset. Save a preset with
"spotifynd --save" and apply it with "spotifynd --load". Use subcommands to
show, clear, export, or import it.`,
}

// --- show subcommand ---

var presetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved preset",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *preset.Store) error {
			info, err := store.Info(ctx)
			if err != nil {
				return err
			}
			set, err := store.Load(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("id:       %s\n", info.ID)
			fmt.Printf("saved at: %s\n", info.SavedAt.Local().Format(time.DateTime))
			if set.IsEmpty() {
				fmt.Println("filters:  (none)")
				return nil
			}
			fmt.Println("filters:")
			for _, f := range set.Active() {
				fmt.Printf("  %-15s %s\n", f, set.Get(f))
			}
			return nil
		})
	},
}

// --- clear subcommand ---

var presetClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved preset",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *preset.Store) error {
			if err := store.Clear(ctx); err != nil {
				return err
			}
			fmt.Println("Preset cleared")
			return nil
		})
	},
}

// --- export subcommand ---

var presetExportCmd = &cobra.Command{
	Use:   "export <file.yaml>",
	Short: "Write the saved preset to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *preset.Store) error {
			if err := store.ExportYAML(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Exported preset to %s\n", args[0])
			return nil
		})
	},
}

// --- import subcommand ---

var presetImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Replace the saved preset with one read from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *preset.Store) error {
			info, err := store.ImportYAML(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported preset %s from %s\n", info.ID, args[0])
			return nil
		})
	},
}

// --- shared helpers ---

func withStore(fn func(ctx context.Context, store *preset.Store) error) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	store, err := preset.NewStore(cfg.Preset)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Preset.DBPath != "" {
		fmt.Fprintf(os.Stderr, "Using preset database: %s\n", cfg.Preset.DBPath)
	}
	return fn(context.Background(), store)
}

func init() {
	presetCmd.AddCommand(presetShowCmd, presetClearCmd, presetExportCmd, presetImportCmd)
	rootCmd.AddCommand(presetCmd)
}
