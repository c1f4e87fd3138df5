// This is an example gomkrel project that offers you a practical approach.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"git.fractalqb.de/fractalqb/gomkrel"
	"git.fractalqb.de/fractalqb/gomkrel/mkapi"
	"git.fractalqb.de/fractalqb/gomkrel/mkchg"
	"git.fractalqb.de/fractalqb/gomkrel/mkdoc"
)

var tracer = &gomkrel.WriteTracer{W: os.Stderr, Log: gomkrel.TraceWarn}

func flags() {
	fTrace := flag.String("trace", "", "Set trace level (off, warn, info, debug)")
	flag.Parse()
	if err := tracer.ParseLogFlag(*fTrace); err != nil {
		log.Fatal(err)
	}
}

func main() {
	flags()

	// The project in current working dir
	prj := gomkrel.NewProject("")

	err := gomkrel.Setup(func() {
		core := prj.Module("core", "")
		core.Description = "Core data structures"
		core.Maturity = gomkrel.Stable

		coreDoc := &mkdoc.Readme{
			Template: "core/doc/README.tmpl",
			Features: new(mkdoc.Registry),
		}
		coreDoc.Features.RegisterRef("fast", "O(1) lookup", "doc/perf.md")
		coreDoc.PropertyFunc("version", func() string {
			return os.Getenv("VERSION")
		})
		rmCore := mkdoc.NewReadmeTask(gomkrel.Must, prj, core, coreDoc, "")

		rootDoc := &mkdoc.Readme{Template: "doc/README.tmpl"}
		mkdoc.NewAggregateTask(gomkrel.Must, prj, rootDoc,
			[]mkdoc.ModuleDoc{{Mod: core, Doc: coreDoc}},
			"",
		).DependOn(rmCore.Name())

		mkchg.NewChangelogTask(gomkrel.Must, prj, mkchg.Config{
			Path:        "CHANGELOG.md",
			CompareBase: "https://example.com/acme/tool",
		})

		mkapi.NewCheckTask(gomkrel.Must, prj, "api-baseline.yaml")
	})
	if err != nil {
		log.Fatal("project setup:", err)
	}

	run := gomkrel.Runner{Env: gomkrel.TaskEnv{
		Trace: gomkrel.NewTrace(context.Background(), tracer),
	}}
	if flag.NArg() == 0 {
		err = run.Project(prj)
	} else {
		err = run.Tasks(prj, flag.Args()...)
	}
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
