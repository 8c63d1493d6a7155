// Package panicerr confines a panicking computation, surfacing the
// panic as an ordinary error annotated with its stack.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Recover calls f, converting any panic into a non-nil error return. A
// panic whose value is already an error unwraps to it via errors.As.
func Recover(name string, f func() error) (rerr error) {
	defer func() {
		if e := recover(); e != nil {
			rerr = panicError{name: name, e: e, stack: debug.Stack()}
		}
	}()
	return f()
}

type panicError struct {
	name  string
	e     interface{}
	stack []byte
}

func (pe panicError) Error() string {
	return fmt.Sprint(pe)
}

func (pe panicError) Format(f fmt.State, c rune) {
	if pe.name == "" {
		fmt.Fprintf(f, "paniced: %v", pe.e)
	} else {
		fmt.Fprintf(f, "%v paniced: %v", pe.name, pe.e)
	}
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.stack)
	}
}

func (pe panicError) Unwrap() error {
	err, _ := pe.e.(error)
	return err
}

// IsPanic reports whether err records a recovered panic.
func IsPanic(err error) bool {
	var pe panicError
	return errors.As(err, &pe)
}

// Stack returns the recorded panic stack, or "".
func Stack(err error) string {
	var pe panicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	return ""
}
