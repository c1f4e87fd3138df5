package main

import (
	"github.com/spf13/cobra"
)

func newBuildCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Compile the release binaries for every target of the matrix",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, err := loadTree(opts)
			if err != nil {
				return err
			}
			return runTasks(cmd, opts, tree, "build")
		},
	}
}
