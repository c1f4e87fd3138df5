package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"git.fractalqb.de/fractalqb/gomkrel/manifest"
)

func newTargetsCommand(opts *options) *cobra.Command {
	var env bool
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Print the release target matrix",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, err := manifest.Load(opts.Manifest, "")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, tgt := range tree.Targets {
				fmt.Fprintln(out, tgt)
				if !env {
					continue
				}
				tenv := tgt.Env()
				keys := make([]string, 0, len(tenv))
				for k := range tenv {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(out, "\t%s=%s\n", k, tenv[k])
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&env, "env", false, "Also print the per-target environment")
	return cmd
}
