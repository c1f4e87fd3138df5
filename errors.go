package gomkrel

import (
	"errors"
	"fmt"
	"log"
)

// ErrStater is implemented by configuration-phase values that keep their
// first configuration error instead of returning it, so that fluent project
// setup does not drown in error handling. [Task] embeds it via [TaskBase].
type ErrStater interface {
	ErrState() error
}

// OnErrFunc is called by constructors right after a configuration error has
// been recorded on an [ErrStater]. Pass nil to check error states later,
// [Must] to fail fast.
type OnErrFunc func(ErrStater)

func CheckErrState(onErr OnErrFunc, errst ErrStater) {
	if onErr != nil {
		onErr(errst)
	}
}

// Must panics with the recorded error state, if there is one. Configuration
// code wrapped in a recovering frame can use it as its OnErrFunc.
func Must(es ErrStater) {
	if err := es.ErrState(); err != nil {
		panic(err)
	}
}

// LogMust is like [Must] but logs the error before panicking.
func LogMust(es ErrStater) {
	if err := es.ErrState(); err != nil {
		log.Panic(err)
	}
}

// Setup runs configuration code that uses [Must] as its OnErrFunc and
// recovers the panic into the returned error.
func Setup(do func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			switch p := p.(type) {
			case error:
				err = p
			case string:
				err = errors.New(p)
			default:
				err = fmt.Errorf("panic: %+v", p)
			}
		}
	}()
	do()
	return
}
