package main

import (
	"github.com/spf13/cobra"
)

func newReadmeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "readme",
		Short: "Render module READMEs and the aggregated root document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, err := loadTree(opts)
			if err != nil {
				return err
			}
			return runTasks(cmd, opts, tree, "readme:")
		},
	}
}
