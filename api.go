package fourth

import (
	"context"

	"github.com/jcorbin/gofourth/internal/panicerr"
)

// Compile parses source as one anonymous definition against the Global
// vocabulary and returns the verified word. Raw parametrized primitives
// (BRANCH, 0BRANCH, LITERAL) are allowed by name.
func Compile(source string) (*Word, error) {
	c := NewCompiler()
	if err := c.Parse(source, true); err != nil {
		return nil, err
	}
	return c.Finish()
}

// Define compiles source under name, installing it into the Global
// vocabulary on success.
func Define(name, source string) (*Word, error) {
	c := NewNamedCompiler(name)
	if err := c.Parse(source, true); err != nil {
		return nil, err
	}
	return c.Finish()
}

// Run executes a compiled word and returns the value left on top of
// the stack. The word must be an interpreted definition that requires
// no inputs and produces at least one result; its verified peak bounds
// the stack allocation up front.
func Run(ctx context.Context, w *Word, opts ...RunOption) (Value, error) {
	switch {
	case w.native:
		return Null, errNotRunnable
	case w.effect.Input() > 0:
		return Null, errNeedsInputs
	case w.effect.Output() <= 0:
		return Null, errNoResult
	}

	m := machine{stack: make([]Value, 0, w.effect.Peak())}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&m)
		}
	}

	err := panicerr.Recover("fourth.Run", func() error {
		m.exec(ctx, w.body)
		return nil
	})
	if err != nil {
		return Null, err
	}
	return m.stack[len(m.stack)-1], nil
}

// Eval compiles source and runs it.
func Eval(ctx context.Context, source string, opts ...RunOption) (Value, error) {
	w, err := Compile(source)
	if err != nil {
		return Null, err
	}
	return Run(ctx, w, opts...)
}
