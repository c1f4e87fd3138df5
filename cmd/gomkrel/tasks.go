package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"git.fractalqb.de/fractalqb/gomkrel"
)

func newTasksCommand(opts *options) *cobra.Command {
	var dot bool
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the tasks the manifest declares",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, err := loadTree(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if dot {
				dia := gomkrel.Diagrammer{RankDir: "LR"}
				return dia.WriteDot(out, tree.Project)
			}
			for _, t := range tree.Project.Tasks() {
				if deps := t.DependsOn(); len(deps) > 0 {
					fmt.Fprintf(out, "%s <- %s\n", t.Name(), strings.Join(deps, " "))
				} else {
					fmt.Fprintln(out, t.Name())
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dot, "dot", false, "Write the dependency graph as graphviz dot")
	return cmd
}
