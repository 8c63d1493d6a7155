package fourth

// RunOption configures one execution of a compiled word.
type RunOption interface{ apply(m *machine) }

// WithLogf enables runtime tracing: each step logs the instruction
// about to execute and the data stack beneath it.
func WithLogf(logfn func(mess string, args ...interface{})) RunOption { return withLogfn(logfn) }

// WithFrameLimit caps the call depth; exceeding it halts the run with
// an error. Zero means unlimited.
func WithFrameLimit(limit int) RunOption { return frameLimitOption(limit) }

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(m *machine) { m.logfn = logfn }

type frameLimitOption int

func (lim frameLimitOption) apply(m *machine) { m.frameLimit = int(lim) }
