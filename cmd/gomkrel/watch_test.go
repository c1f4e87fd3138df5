package main

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.fractalqb.de/fractalqb/testerr"
)

func TestWatchLoop_serializesRenders(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	var (
		running atomic.Int32
		overlap atomic.Bool
		renders atomic.Int32
	)
	render := func() {
		if running.Add(1) > 1 {
			overlap.Store(true)
		}
		time.Sleep(50 * time.Millisecond)
		running.Add(-1)
		renders.Add(1)
	}
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, events, errs, 10*time.Millisecond,
			slog.New(slog.DiscardHandler), render,
		)
	}()

	ev := fsnotify.Event{Name: "README.tmpl.md", Op: fsnotify.Write}
	events <- ev
	time.Sleep(30 * time.Millisecond) // first render under way
	events <- ev
	for i := 0; renders.Load() < 2 && i < 100; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	testerr.Shall(<-done).BeNil(t)
	if overlap.Load() {
		t.Error("renders ran concurrently")
	}
	if n := renders.Load(); n != 2 {
		t.Errorf("%d renders", n)
	}
}

func TestWatchLoop_collapsesEventBursts(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	var renders atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, events, errs, 20*time.Millisecond,
			slog.New(slog.DiscardHandler),
			func() { renders.Add(1) },
		)
	}()

	ev := fsnotify.Event{Name: "README.tmpl.md", Op: fsnotify.Write}
	events <- ev
	events <- ev
	events <- ev
	events <- fsnotify.Event{Name: "README.md", Op: fsnotify.Chmod}
	for i := 0; renders.Load() < 1 && i < 100; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	cancel()
	testerr.Shall(<-done).BeNil(t)
	if n := renders.Load(); n != 1 {
		t.Errorf("%d renders for one burst", n)
	}
}
