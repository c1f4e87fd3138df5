package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"git.fractalqb.de/fractalqb/gomkrel/manifest"
)

func newWatchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-render documents whenever a template or input changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(),
				syscall.SIGINT, syscall.SIGTERM,
			)
			defer stop()
			return watchDocs(ctx, cmd, opts)
		},
	}
}

func watchDocs(ctx context.Context, cmd *cobra.Command, opts *options) error {
	tree, err := loadTree(opts)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(opts.Manifest); err != nil {
		return fmt.Errorf("watching %s: %w", opts.Manifest, err)
	}
	for _, file := range docInputs(tree) {
		if err := watcher.Add(tree.Project.AbsPath(file)); err != nil {
			opts.logger.Warn("cannot watch", "file", file, "error", err)
		}
	}
	opts.logger.Info("watching document inputs", "files", len(watcher.WatchList()))

	render := func() {
		// Reload so that manifest edits – new features, properties – take
		// effect without restarting the watch.
		fresh, err := loadTree(opts)
		if err != nil {
			opts.logger.Error("manifest reload failed", "error", err)
			return
		}
		tree = fresh
		if err := runTasks(cmd, opts, tree, "readme:"); err != nil {
			opts.logger.Error("render failed", "error", err)
		}
	}
	render()

	return watchLoop(ctx, watcher.Events, watcher.Errors,
		renderDebounce, opts.logger, render,
	)
}

const renderDebounce = 200 * time.Millisecond

// watchLoop debounces filesystem events and re-renders. Rendering happens on
// the loop goroutine itself, so a render that outlasts the debounce delay
// can never overlap the next one.
func watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event, errs <-chan error,
	delay time.Duration,
	logger *slog.Logger,
	render func(),
) error {
	// Editors fire several events per save; collect them briefly before
	// re-rendering.
	debounce := time.NewTimer(delay)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-debounce.C:
			render()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("change", "file", event.Name, "op", event.Op)
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(delay)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// docInputs collects the template and input files of every document in the
// manifest, project-root relative.
func docInputs(tree *manifest.Tree) (files []string) {
	add := func(doc manifest.Doc) {
		if doc.Readme == nil {
			return
		}
		if doc.Readme.Template != "" {
			files = append(files, doc.Readme.Template)
		}
		files = append(files, doc.Readme.Inputs...)
	}
	add(tree.RootDoc)
	for _, doc := range tree.Docs {
		add(doc)
	}
	return files
}
