package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"git.fractalqb.de/fractalqb/gomkrel/manifest"
	"git.fractalqb.de/fractalqb/gomkrel/mkchg"
)

func newChangelogCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "changelog",
		Aliases: []string{"chg"},
		Short:   "Maintain the project changelog",
	}
	cmd.AddCommand(
		newChangelogShowCommand(opts),
		newChangelogAddCommand(opts),
		newChangelogCutCommand(opts),
	)
	return cmd
}

// changelogConfig resolves the changelog setup from the manifest, falling
// back to the defaults when the manifest has no changelog block.
func changelogConfig(opts *options) (mkchg.Config, error) {
	tree, err := manifest.Load(opts.Manifest, "")
	if err != nil {
		return mkchg.Config{}, err
	}
	cfg := tree.Changelog
	if cfg.Path == "" {
		cfg.Path = mkchg.DefaultPath
	}
	cfg.Path = tree.Project.AbsPath(cfg.Path)
	return cfg, nil
}

func newChangelogShowCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the normalized changelog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := changelogConfig(opts)
			if err != nil {
				return err
			}
			cl, err := mkchg.Load(cfg.Path)
			if err != nil {
				return err
			}
			cl.CompareBase = cfg.CompareBase
			_, err = cl.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}

func newChangelogAddCommand(opts *options) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "add <entry>",
		Short: "Add an entry to the unreleased changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := changelogConfig(opts)
			if err != nil {
				return err
			}
			k, err := mkchg.ParseKind(kind)
			if err != nil {
				return err
			}
			cl, err := mkchg.Load(cfg.Path)
			if err != nil {
				return err
			}
			cl.CompareBase = cfg.CompareBase
			cl.Add(k, args[0])
			if err = cl.Save(cfg.Path); err != nil {
				return err
			}
			opts.logger.Info("changelog entry added",
				"kind", k.String(),
				"file", filepath.Base(cfg.Path),
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "added",
		"Change kind (added, changed, deprecated, removed, fixed, security)")
	return cmd
}

func newChangelogCutCommand(opts *options) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "cut <version>",
		Short: "Cut a release from the unreleased changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := changelogConfig(opts)
			if err != nil {
				return err
			}
			day := time.Now()
			if date != "" {
				if day, err = time.Parse(time.DateOnly, date); err != nil {
					return fmt.Errorf("release date: %w", err)
				}
			}
			cl, err := mkchg.Load(cfg.Path)
			if err != nil {
				return err
			}
			cl.CompareBase = cfg.CompareBase
			rel, err := cl.Cut(args[0], day)
			if err != nil {
				return err
			}
			if err = cl.Save(cfg.Path); err != nil {
				return err
			}
			opts.logger.Info("release cut", "version", rel.Version, "date", rel.Date)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Release date (YYYY-MM-DD, default today)")
	return cmd
}
