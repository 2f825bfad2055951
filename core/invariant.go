package core

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// BugError marks a fatal internal invariant violation: CFG malformation,
// an inconsistent phi set, or a required AST node that the analyzer failed
// to populate. These never originate from malformed user input — those
// always go through the Collector as a Diagnostic instead.
type BugError struct {
	msg string
}

func (e *BugError) Error() string { return e.msg }

// Bug logs the violated invariant and panics with a *BugError. Callers at
// the top of the pipeline (cmd/solangc) are expected to recover and print
// a crash report; nothing inside the core ever recovers from this itself.
func Bug(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logrus.WithField("component", "core").Errorf("internal invariant violated: %s", msg)
	panic(&BugError{msg: msg})
}
