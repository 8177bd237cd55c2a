// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the heicjpg CLI: it converts HEIC/HEIF
// images to metadata-free JPEG, walking a directory tree and re-encoding each
// match without carrying any EXIF/XMP block into the output.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/heicjpg/internal/codec"
	"github.com/pdiddy/heicjpg/internal/convert"
	"github.com/pdiddy/heicjpg/internal/manifest"
	"github.com/pdiddy/heicjpg/internal/scan"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the heicjpg CLI.
var rootCmd = &cobra.Command{
	Use:   "heicjpg DIRECTORY",
	Short: "Convert HEIC/HEIF images to metadata-free JPEG",
	Long: `heicjpg scans a directory for HEIC/HEIF images (and any other extension
selected with --ext), decodes each one, and re-encodes it as a JPEG next to
the original with the same base name. The encoder is handed pixel data only,
so GPS coordinates, device identifiers, timestamps, and every other embedded
metadata block are absent from the output by construction.

A pre-existing destination .jpg is never overwritten: the file is reported
as skipped and its original is left in place. Failures on individual files
are reported and counted but do not stop the run.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		exts, err := scan.ParseExtensions(viper.GetString("ext"))
		if err != nil {
			return err
		}

		opts := convert.Options{
			Quality:        viper.GetInt("quality"),
			DeleteOriginal: viper.GetBool("delete"),
			KeepTimes:      viper.GetBool("keep-times"),
		}
		if err := opts.Validate(); err != nil {
			return err
		}

		paths, err := scan.Discover(args[0], exts, viper.GetBool("recursive"))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(paths) == 0 {
			names := make([]string, 0, len(exts))
			for e := range exts {
				names = append(names, e)
			}
			sort.Strings(names)
			fmt.Fprintf(out, "No files with extensions %s found in %s\n",
				strings.Join(names, ", "), filepath.Clean(args[0]))
			return nil
		}

		results, batch := convert.ConvertBatch(codec.Default(), paths, opts, out)

		if path := viper.GetString("manifest"); path != "" {
			if err := manifest.Write(path, results); err != nil {
				return fmt.Errorf("writing manifest: %w", err)
			}
		}

		if batch.HasFailures() {
			return fmt.Errorf("%d of %d files failed to convert", batch.Failed, batch.Total())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./heicjpg.yaml or ~/.config/heicjpg/config.yaml)")

	rootCmd.Flags().BoolP("recursive", "r", false, "scan subdirectories as well")
	rootCmd.Flags().IntP("quality", "q", 90, "JPEG quality, 1-100")
	rootCmd.Flags().Bool("delete", false, "delete original file after successful conversion")
	rootCmd.Flags().Bool("keep-times", false, "restore the source modification time onto the output JPEG")
	rootCmd.Flags().String("ext", "heic,heif", "comma-separated extensions to match, case-insensitive, without leading dots")
	rootCmd.Flags().String("manifest", "", "write a YAML (or .json) run report to this path")

	for _, name := range []string{"recursive", "quality", "delete", "keep-times", "ext", "manifest"} {
		_ = viper.BindPFlag(name, rootCmd.Flags().Lookup(name))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("heicjpg")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "heicjpg"))
		}
	}

	viper.SetEnvPrefix("HEICJPG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
