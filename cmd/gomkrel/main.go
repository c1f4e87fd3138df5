// Command gomkrel drives a project's release chores – README rendering,
// changelog upkeep, API baseline checks, target matrices and publication
// setup – from the declarative manifest in the project root.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"git.fractalqb.de/fractalqb/gomkrel"
	"git.fractalqb.de/fractalqb/gomkrel/manifest"
)

type options struct {
	Manifest string
	LogLevel string
	logger   *slog.Logger
}

func main() {
	opts := &options{Manifest: manifest.DefaultFile, LogLevel: "info"}
	rootCmd := newRootCommand(opts)
	if err := rootCmd.Execute(); err != nil {
		if opts.logger == nil {
			opts.logger = newLogger("info")
		}
		opts.logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gomkrel",
		Short:         "gomkrel maintains the release documents of a Go project",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			opts.logger = newLogger(opts.LogLevel)
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.Manifest, "manifest", "m",
		manifest.DefaultFile, "Path of the project manifest")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")
	cmd.AddCommand(
		newReadmeCommand(opts),
		newBuildCommand(opts),
		newChangelogCommand(opts),
		newAPICommand(opts),
		newTargetsCommand(opts),
		newTasksCommand(opts),
		newPublishCommand(opts),
		newWatchCommand(opts),
	)
	return cmd
}

func newLogger(level string) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: parseLevel(level),
	}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// loadTree loads the manifest and declares its task set with the project.
func loadTree(opts *options) (*manifest.Tree, error) {
	tree, err := manifest.Load(opts.Manifest, "")
	if err != nil {
		return nil, err
	}
	if err = gomkrel.Setup(func() { tree.SetupTasks(gomkrel.Must) }); err != nil {
		return nil, err
	}
	return tree, nil
}

// newRunner builds a task runner tracing to stderr at the CLI's log level.
func newRunner(cmd *cobra.Command, opts *options) *gomkrel.Runner {
	tr := &gomkrel.WriteTracer{W: cmd.ErrOrStderr(), Log: gomkrel.TraceWarn}
	switch parseLevel(opts.LogLevel) {
	case slog.LevelDebug:
		tr.Log = gomkrel.TraceWarn | gomkrel.TraceInfo | gomkrel.TraceDebug
	case slog.LevelInfo:
		tr.Log = gomkrel.TraceWarn | gomkrel.TraceInfo
	}
	return &gomkrel.Runner{Env: gomkrel.TaskEnv{
		Trace: gomkrel.NewTrace(cmd.Context(), tr),
		In:    cmd.InOrStdin(),
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
	}}
}

// runTasks runs every project task whose name starts with one of the
// prefixes, in declaration order.
func runTasks(cmd *cobra.Command, opts *options, tree *manifest.Tree, prefixes ...string) error {
	var names []string
	for _, t := range tree.Project.Tasks() {
		for _, p := range prefixes {
			if strings.HasPrefix(t.Name(), p) {
				names = append(names, t.Name())
				break
			}
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("manifest %s configures no %s tasks",
			opts.Manifest,
			strings.Join(prefixes, "/"),
		)
	}
	run := newRunner(cmd, opts)
	return run.TasksContext(cmd.Context(), tree.Project, names...)
}
