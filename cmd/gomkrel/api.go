package main

import (
	"github.com/spf13/cobra"
)

func newAPICommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Manage the exported API baseline",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "dump",
			Short: "Write the current API surface as the new baseline",
			RunE: func(cmd *cobra.Command, _ []string) error {
				tree, err := loadTree(opts)
				if err != nil {
					return err
				}
				return runTasks(cmd, opts, tree, "api:dump")
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Check the current API surface against the baseline",
			RunE: func(cmd *cobra.Command, _ []string) error {
				tree, err := loadTree(opts)
				if err != nil {
					return err
				}
				return runTasks(cmd, opts, tree, "api:check")
			},
		},
	)
	return cmd
}
