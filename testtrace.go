package gomkrel

import (
	"testing"
	"time"
)

// TestTracer logs all trace events to a testing.T.
type TestTracer struct{ T *testing.T }

var _ Tracer = TestTracer{}

func (tr TestTracer) Debug(t *Trace, msg string, args ...any) {
	tr.T.Logf("gomkrel-DEBUG: "+msg, args...)
}

func (tr TestTracer) Info(t *Trace, msg string, args ...any) {
	tr.T.Logf("gomkrel-INFO: "+msg, args...)
}

func (tr TestTracer) Warn(t *Trace, msg string, args ...any) {
	tr.T.Logf("gomkrel-WARN: "+msg, args...)
}

func (tr TestTracer) StartProject(t *Trace, p *Project, activity string) {
	tr.T.Logf("gomkrel-StartProject: %s %s", p, activity)
}

func (tr TestTracer) DoneProject(t *Trace, p *Project, activity string, dt time.Duration) {
	tr.T.Logf("gomkrel-DoneProject: %s %s %s", p, activity, dt)
}

func (tr TestTracer) RunTask(_ *Trace, tsk Task) {
	tr.T.Logf("gomkrel-RunTask: %s", tsk.Name())
}

func (tr TestTracer) SkipTask(_ *Trace, tsk Task, reason string) {
	tr.T.Logf("gomkrel-SkipTask: %s (%s)", tsk.Name(), reason)
}
