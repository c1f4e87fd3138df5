package main

import (
	"github.com/spf13/cobra"

	"git.fractalqb.de/fractalqb/gomkrel/mkpub"
)

func newPublishCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publication repository setup",
	}
	var envFiles []string
	check := &cobra.Command{
		Use:   "check",
		Short: "Validate repository registration and credential resolution",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, err := loadTree(opts)
			if err != nil {
				return err
			}
			task := tree.Project.FindTask("publish:check")
			if ct, ok := task.(*mkpub.CheckTask); ok {
				ct.EnvFiles = envFiles
			}
			return runTasks(cmd, opts, tree, "publish:check")
		},
	}
	check.Flags().StringArrayVar(&envFiles, "env-file", []string{".env"},
		"Env files with credential properties, missing files are skipped")
	cmd.AddCommand(check)
	return cmd
}
