package gomkrel

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// A Tracer receives the notable events of running gomkrel tasks. Besides the
// generic log-level methods it gets structural callbacks so that
// implementations can show what happens to which task of which project.
type Tracer interface {
	Debug(t *Trace, msg string, args ...any)
	Info(t *Trace, msg string, args ...any)
	Warn(t *Trace, msg string, args ...any)

	StartProject(t *Trace, p *Project, activity string)
	DoneProject(t *Trace, p *Project, activity string, dt time.Duration)

	RunTask(t *Trace, tsk Task)
	// SkipTask reports a task that decided not to produce output, e.g. a
	// README task without a template. Skipping is not an error.
	SkipTask(t *Trace, tsk Task, reason string)
}

// A Trace is handed down along the nesting of traced activities. It carries
// the context and a path of trace IDs that tells apart concurrent or nested
// runs in the output of a [Tracer].
type Trace struct {
	root *traceRoot
	up   *Trace
	obj  any
	id   uint64
}

func NewTrace(ctx context.Context, tr Tracer) *Trace {
	root := &traceRoot{ctx: ctx, tr: tr}
	return &Trace{root: root}
}

func (t *Trace) Ctx() context.Context { return t.root.ctx }

func (t *Trace) Debug(msg string, args ...any) { t.root.tr.Debug(t, msg, args...) }
func (t *Trace) Info(msg string, args ...any)  { t.root.tr.Info(t, msg, args...) }
func (t *Trace) Warn(msg string, args ...any)  { t.root.tr.Warn(t, msg, args...) }

func (t *Trace) startProject(p *Project, activity string) {
	t.root.prj = p
	t.root.tr.StartProject(t, p, activity)
}

func (t *Trace) doneProject(p *Project, activity string, dt time.Duration) {
	t.root.tr.DoneProject(t, p, activity, dt)
	t.root.prj = nil
}

func (t *Trace) runTask(tsk Task) { t.root.tr.RunTask(t, tsk) }

// SkipTask lets task implementations report that they intentionally produced
// no output. See [Tracer.SkipTask].
func (t *Trace) SkipTask(tsk Task, reason string) { t.root.tr.SkipTask(t, tsk, reason) }

func (t *Trace) TopID() uint64 { return t.id }

func (t *Trace) TopTag() string {
	switch t.obj.(type) {
	case Task:
		return fmt.Sprintf("(%d)", t.id)
	case *Project:
		return fmt.Sprintf("{%d}", t.id)
	case nil:
		return ""
	}
	return fmt.Sprintf("!%T!", t.obj)
}

func (t *Trace) Path() string {
	var sb strings.Builder
	sb.WriteByte('<')
	for ; t != nil; t = t.up {
		sb.WriteString(t.TopTag())
	}
	sb.WriteByte('>')
	return sb.String()
}

func (t *Trace) String() string {
	if t.root.prj == nil {
		return t.Path()
	}
	return fmt.Sprintf("%s@%s", t.root.prj, t.Path())
}

func (t *Trace) pushProject(p *Project) *Trace {
	return &Trace{
		root: t.root,
		up:   t,
		obj:  p,
		id:   t.root.idSeq.Add(1),
	}
}

func (t *Trace) pushTask(tsk Task) *Trace {
	return &Trace{
		root: t.root,
		up:   t,
		obj:  tsk,
		id:   t.root.idSeq.Add(1),
	}
}

type traceRoot struct {
	ctx   context.Context
	tr    Tracer
	prj   *Project
	idSeq atomic.Uint64
}
