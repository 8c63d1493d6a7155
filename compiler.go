package fourth

import (
	"fmt"
	"sort"
)

// InstructionPos is an opaque reference to an opcode cell within a
// definition under construction. Parameter cells have no position of
// their own; they are reachable only through their owning opcode.
type InstructionPos int

// PosNone marks the absence of an instruction position.
const PosNone InstructionPos = -1

// WordRef pairs a word with its parameter during compilation and
// disassembly. The parameter cell's interpretation follows the word's
// param kind; for a compiled word it implicitly carries the callee.
type WordRef struct {
	word  *Word
	param Instruction
	off   int // byte offset of the originating source token, or -1
}

// Ref refers to a word that takes no explicit parameter: any native
// word with no param kind, or a compiled word (its callee cell is
// implied).
func Ref(w *Word) WordRef {
	if w.native && w.param != paramNone {
		panic("fourth: word " + w.name + " requires a parameter")
	}
	return WordRef{word: w, off: -1}
}

// LiteralRef refers to a LITERAL pushing v.
func LiteralRef(v Value) WordRef {
	return WordRef{word: wordLiteral, param: Instruction{lit: v}, off: -1}
}

// OffsetRef refers to a branching word with a signed offset parameter.
func OffsetRef(w *Word, off int) WordRef {
	if w.param != paramOffset {
		panic("fourth: word " + w.name + " does not take an offset")
	}
	return WordRef{word: w, param: Instruction{off: off}, off: -1}
}

// Word returns the referenced word.
func (r WordRef) Word() *Word { return r.word }

// Literal returns the literal parameter; meaningful only when the
// referenced word is LITERAL.
func (r WordRef) Literal() Value { return r.param.lit }

// Offset returns the branch offset parameter; meaningful only for
// BRANCH and 0BRANCH references.
func (r WordRef) Offset() int { return r.param.off }

// width is the number of cells the reference occupies when emitted.
func (r WordRef) width() InstructionPos {
	if r.word.hasParam() {
		return 2
	}
	return 1
}

func (r WordRef) String() string {
	name := r.word.String()
	switch r.word.param {
	case paramLiteral:
		return fmt.Sprintf("%s:<%v>", name, r.param.lit)
	case paramOffset:
		return fmt.Sprintf("%s+<%d>", name, r.param.off)
	}
	return name
}

// ctrlEntry is one unresolved structured-control branch: a tag byte
// ('i' IF, 'e' ELSE, 'b' BEGIN, 'w' WHILE) and the position awaiting
// resolution.
type ctrlEntry struct {
	tag byte
	pos InstructionPos
}

// Compiler assembles one definition from an ordered list of word
// references, added directly or by parsing source text. Finish verifies
// the definition's stack effect along every control flow path before
// anything becomes visible in the vocabulary. A compiler is consumed by
// Finish and must not be used afterward.
type Compiler struct {
	name      string
	vocab     *Vocabulary
	refs      []placedRef
	nextPos   InstructionPos
	maxInputs int
	declared  *StackEffect
	ctrl      []ctrlEntry
	logfn     func(mess string, args ...interface{})
	finished  bool
}

type placedRef struct {
	WordRef
	pos InstructionPos
}

// NewCompiler creates a compiler for an anonymous definition.
func NewCompiler() *Compiler {
	return &Compiler{vocab: Global, maxInputs: -1}
}

// NewNamedCompiler creates a compiler whose Finish will install the
// definition under name.
func NewNamedCompiler(name string) *Compiler {
	c := NewCompiler()
	c.name = name
	return c
}

// SetVocabulary points the compiler at a vocabulary other than Global,
// for both name lookup during Parse and registration at Finish.
func (c *Compiler) SetVocabulary(voc *Vocabulary) { c.vocab = voc }

// SetLogf enables compile tracing through the given printf-style hook.
func (c *Compiler) SetLogf(logfn func(mess string, args ...interface{})) { c.logfn = logfn }

func (c *Compiler) logf(mess string, args ...interface{}) {
	if c.logfn != nil {
		c.logfn(mess, args...)
	}
}

// DeclareEffect records the stack effect the definition must have; if
// the effect computed during Finish differs, compilation fails. Also
// caps the definition's inputs at the declared inputs.
func (c *Compiler) DeclareEffect(fx StackEffect) {
	c.declared = &fx
	c.maxInputs = fx.Input()
}

// SetMaxInputs caps how many values the definition may read from the
// stack; Finish fails if the verified inputs exceed it. Useful in a
// REPL when the current stack depth is known. Negative means unlimited.
func (c *Compiler) SetMaxInputs(n int) { c.maxInputs = n }

// NextPos returns the position at which the next Add will land.
func (c *Compiler) NextPos() InstructionPos { return c.nextPos }

func (c *Compiler) mustLive() {
	if c.finished {
		panic("fourth: use of finished Compiler")
	}
}

// Add appends a word reference and returns its instruction position.
func (c *Compiler) Add(r WordRef) InstructionPos {
	c.mustLive()
	pos := c.nextPos
	c.refs = append(c.refs, placedRef{WordRef: r, pos: pos})
	c.nextPos += r.width()
	c.logf("add %v @%v", r, pos)
	return pos
}

// AddWithSource is Add, attaching the byte offset of the source token
// the reference came from, for diagnostics.
func (c *Compiler) AddWithSource(r WordRef, off int) InstructionPos {
	r.off = off
	return c.Add(r)
}

// RefAt returns the reference whose opcode cell is at pos, or nil.
func (c *Compiler) RefAt(pos InstructionPos) *WordRef {
	if i, ok := c.indexOf(pos); ok {
		return &c.refs[i].WordRef
	}
	return nil
}

// indexOf resolves an opcode-cell position to a reference index.
func (c *Compiler) indexOf(pos InstructionPos) (int, bool) {
	i := sort.Search(len(c.refs), func(i int) bool { return c.refs[i].pos >= pos })
	if i < len(c.refs) && c.refs[i].pos == pos {
		return i, true
	}
	return 0, false
}

// AddBranchBackTo emits a BRANCH jumping back to target. Offsets are
// measured from the cell after the offset cell, so the backward offset
// is target minus the position two cells past the BRANCH.
func (c *Compiler) AddBranchBackTo(target InstructionPos) {
	off := int(target) - (int(c.nextPos) + 2)
	c.Add(OffsetRef(wordBranch, off))
}

// FixBranch patches the BRANCH or 0BRANCH at src to land on the next
// position to be written.
func (c *Compiler) FixBranch(src InstructionPos) {
	c.mustLive()
	i, ok := c.indexOf(src)
	if !ok || c.refs[i].word.param != paramOffset {
		panic("fourth: FixBranch target is not a branch")
	}
	c.refs[i].param.off = int(c.nextPos) - (int(src) + 2)
	c.logf("fix branch @%v -> @%v", src, c.nextPos)
}

func (c *Compiler) pushCtrl(tag byte, pos InstructionPos) {
	c.ctrl = append(c.ctrl, ctrlEntry{tag: tag, pos: pos})
	c.logf("ctrl push %q @%v", tag, pos)
}

// popCtrl pops the control stack, requiring the entry's tag to be one
// of matching.
func (c *Compiler) popCtrl(matching string, srcOff int) (ctrlEntry, error) {
	if len(c.ctrl) == 0 {
		return ctrlEntry{pos: PosNone}, compileErrAt(ErrUnbalancedControl, srcOff, "no open structure")
	}
	top := c.ctrl[len(c.ctrl)-1]
	found := false
	for i := 0; i < len(matching); i++ {
		if top.tag == matching[i] {
			found = true
			break
		}
	}
	if !found {
		return ctrlEntry{pos: PosNone}, compileErrAt(ErrUnbalancedControl, srcOff, "unexpected %q", top.tag)
	}
	c.ctrl = c.ctrl[:len(c.ctrl)-1]
	c.logf("ctrl pop %q @%v", top.tag, top.pos)
	return top, nil
}

// Finish verifies the definition, appends the trailing RETURN, emits
// the immutable instruction body, installs a named definition into the
// vocabulary, and consumes the compiler. A failed Finish installs
// nothing.
func (c *Compiler) Finish() (*Word, error) {
	c.mustLive()
	if len(c.ctrl) > 0 {
		top := c.ctrl[len(c.ctrl)-1]
		return nil, compileErrf(ErrUnbalancedControl, "unresolved %q", top.tag)
	}
	c.Add(Ref(wordReturn))
	c.finished = true

	fx, err := c.computeEffect()
	if err != nil {
		return nil, err
	}
	if c.maxInputs >= 0 && fx.Input() > c.maxInputs {
		return nil, compileErrf(ErrInputsExceeded, "verified %v but at most %d inputs allowed", fx, c.maxInputs)
	}
	if d := c.declared; d != nil {
		if fx.Input() != d.Input() || fx.Net() != d.Net() {
			return nil, compileErrf(ErrEffectMismatch, "declared %v but verified %v", *d, fx)
		}
		if fx.Peak() != d.Peak() && !(d.defaultPeak() && fx.Peak() > d.Peak()) {
			return nil, compileErrf(ErrEffectMismatch, "declared peak %d but verified %d", d.Peak(), fx.Peak())
		}
	}

	w := &Word{name: c.name, effect: fx, body: c.emit()}
	c.vocab.install(w)
	c.logf("finish %v %v: %d cells", w, fx, len(w.body))
	return w, nil
}

// emit lays the appended references out as instruction cells.
func (c *Compiler) emit() []Instruction {
	body := make([]Instruction, 0, int(c.nextPos))
	for i := range c.refs {
		r := &c.refs[i]
		if !r.word.native {
			body = append(body, Instruction{op: opCall}, Instruction{callee: r.word.body})
			continue
		}
		body = append(body, Instruction{op: r.word.code})
		if r.word.param != paramNone {
			body = append(body, r.param)
		}
	}
	return body
}
