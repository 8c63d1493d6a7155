package fourth

import (
	"errors"
	"fmt"
)

// Compile-time failure kinds. Every error surfaced by the compiler wraps
// exactly one of these sentinels; match with errors.Is.
var (
	ErrUnknownWord       = errors.New("unknown word")
	ErrUnbalancedControl = errors.New("unbalanced control structure")
	ErrUnbalancedMerge   = errors.New("control flow paths disagree on stack effect")
	ErrEffectMismatch    = errors.New("stack effect mismatch")
	ErrInputsExceeded    = errors.New("too many stack inputs")
	ErrBranchRange       = errors.New("branch out of range")
	ErrMalformedLiteral  = errors.New("malformed literal")
	ErrOverflow          = errors.New("stack effect overflow")
)

// compileError decorates a failure kind with detail and, when the error
// originated in source text, the byte offset of the offending token.
type compileError struct {
	kind error
	mess string
	off  int
}

func compileErrf(kind error, format string, args ...interface{}) error {
	return &compileError{kind: kind, mess: fmt.Sprintf(format, args...), off: -1}
}

func compileErrAt(kind error, off int, format string, args ...interface{}) error {
	return &compileError{kind: kind, mess: fmt.Sprintf(format, args...), off: off}
}

func (ce *compileError) Error() string {
	mess := ce.kind.Error()
	if ce.mess != "" {
		mess += ": " + ce.mess
	}
	if ce.off >= 0 {
		mess += fmt.Sprintf(" (at offset %d)", ce.off)
	}
	return mess
}

func (ce *compileError) Unwrap() error { return ce.kind }

// SourceOffset returns the byte offset into the parsed source at which a
// compile error was detected; ok is false when err did not originate
// from source text.
func SourceOffset(err error) (off int, ok bool) {
	var ce *compileError
	if errors.As(err, &ce) && ce.off >= 0 {
		return ce.off, true
	}
	return 0, false
}
