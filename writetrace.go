package gomkrel

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"git.fractalqb.de/fractalqb/sllm/v3"
)

type TraceLog int

const (
	TraceWarn TraceLog = (1 << iota)
	TraceInfo
	TraceDebug
)

// WriteTracer writes trace events line by line to W. Messages use sllm
// templates, i.e. `backquoted` argument names within the message text are
// replaced by their values.
type WriteTracer struct {
	W   io.Writer
	Log TraceLog
}

var _ Tracer = (*WriteTracer)(nil)

func DefaultTracer() Tracer {
	return &WriteTracer{W: os.Stderr, Log: TraceWarn}
}

func (tr *WriteTracer) ParseLogFlag(f string) error {
	switch f {
	case "":
		return nil
	case "off":
		tr.Log = 0
	case "warn", "w":
		tr.Log = TraceWarn
	case "info", "i":
		tr.Log = TraceWarn | TraceInfo
	case "debug", "d":
		tr.Log = TraceWarn | TraceInfo | TraceDebug
	default:
		return fmt.Errorf("write tracer: illegal log flag '%s'", f)
	}
	return nil
}

func (tr WriteTracer) Debug(t *Trace, msg string, args ...any) {
	if tr.Log&TraceDebug == 0 {
		return
	}
	fmt.Fprintf(tr.W, "%s\t  DEBUG ", t.TopTag())
	sllm.Fprint(tr.W, msg, sllmArgs(args).append)
	fmt.Fprintln(tr.W)
}

func (tr WriteTracer) Info(t *Trace, msg string, args ...any) {
	if tr.Log&(TraceInfo|TraceDebug) == 0 {
		return
	}
	fmt.Fprintf(tr.W, "%s\t  INFO  ", t.TopTag())
	sllm.Fprint(tr.W, msg, sllmArgs(args).append)
	fmt.Fprintln(tr.W)
}

func (tr WriteTracer) Warn(t *Trace, msg string, args ...any) {
	if tr.Log&(TraceWarn|TraceInfo|TraceDebug) == 0 {
		return
	}
	fmt.Fprintf(tr.W, "%s\t  WARN  ", t.TopTag())
	sllm.Fprint(tr.W, msg, sllmArgs(args).append)
	fmt.Fprintln(tr.W)
}

func (tr WriteTracer) StartProject(t *Trace, p *Project, activity string) {
	fmt.Fprintf(tr.W, "%s\t{ %s project '%s' in %s\n",
		t.TopTag(),
		activity,
		p,
		p.Dir,
	)
}

func (tr WriteTracer) DoneProject(t *Trace, p *Project, activity string, dt time.Duration) {
	fmt.Fprintf(tr.W, "%s\t} %s project '%s' took %s\n",
		t.TopTag(),
		activity,
		p,
		dt,
	)
}

func (tr WriteTracer) RunTask(t *Trace, tsk Task) {
	if tr.Log&(TraceInfo|TraceDebug) == 0 {
		return
	}
	fmt.Fprintf(tr.W, "%s\t  run task (%s)\n", t.TopTag(), tsk.Name())
}

func (tr WriteTracer) SkipTask(t *Trace, tsk Task, reason string) {
	if tr.Log&(TraceInfo|TraceDebug) == 0 {
		return
	}
	fmt.Fprintf(tr.W, "%s\t  skip task (%s): %s\n", t.TopTag(), tsk.Name(), reason)
}

type sllmArgs []any

func (as sllmArgs) append(buf []byte, _ int, n string) ([]byte, error) {
	for len(as) > 0 {
		switch k := as[0].(type) {
		case string:
			if len(as) == 1 {
				return buf, fmt.Errorf("no value for key '%s'", n)
			}
			if k == n {
				return sllm.AppendArg(buf, as[1]), nil
			}
			as = as[2:]
		case slog.Attr:
			if k.Key == n {
				return sllm.AppendArg(buf, k.Value), nil
			}
			as = as[1:]
		default:
			return buf, fmt.Errorf("illegal key type %T", k)
		}
	}
	return buf, fmt.Errorf("no key '%s'", n)
}

// NopTracer drops all trace events.
type NopTracer struct{}

var _ Tracer = NopTracer{}

func (NopTracer) Debug(*Trace, string, ...any) {}
func (NopTracer) Info(*Trace, string, ...any)  {}
func (NopTracer) Warn(*Trace, string, ...any)  {}

func (NopTracer) StartProject(*Trace, *Project, string)               {}
func (NopTracer) DoneProject(*Trace, *Project, string, time.Duration) {}

func (NopTracer) RunTask(*Trace, Task)          {}
func (NopTracer) SkipTask(*Trace, Task, string) {}
