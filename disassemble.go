package fourth

import (
	"errors"
	"fmt"
)

var errNotCompiled = errors.New("word has no compiled body")

// disassembleOne maps the opcode cell at index i back to a WordRef,
// consuming the parameter cell when the word owns one. CALL cells are
// resolved back to the callee word through the vocabulary's reverse
// lookup.
func (voc *Vocabulary) disassembleOne(body []Instruction, i int) (WordRef, int, error) {
	if i < 0 || i >= len(body) {
		return WordRef{}, 0, fmt.Errorf("instruction index %d out of range", i)
	}
	cell := body[i]
	if cell.op == opCall {
		if i+1 >= len(body) {
			return WordRef{}, 0, fmt.Errorf("truncated CALL at %d", i)
		}
		callee := voc.WordAt(entry(body[i+1].callee))
		if callee == nil {
			return WordRef{}, 0, fmt.Errorf("CALL at %d targets an unknown word", i)
		}
		return WordRef{word: callee, off: -1}, i + 2, nil
	}
	w := primitiveWords[cell.op]
	if w == nil {
		return WordRef{}, 0, fmt.Errorf("unknown opcode %d at %d", cell.op, i)
	}
	r := WordRef{word: w, off: -1}
	if w.param != paramNone {
		if i+1 >= len(body) {
			return WordRef{}, 0, fmt.Errorf("truncated %v at %d", w, i)
		}
		r.param = body[i+1]
		return r, i + 2, nil
	}
	return r, i + 1, nil
}

// Disassemble walks a compiled body and reconstructs the word
// references the compiler emitted, in order, stopping at (and
// excluding) the trailing RETURN.
func (voc *Vocabulary) Disassemble(w *Word) ([]WordRef, error) {
	if w.native {
		return nil, errNotCompiled
	}
	var refs []WordRef
	for i := 0; i < len(w.body); {
		r, next, err := voc.disassembleOne(w.body, i)
		if err != nil {
			return nil, err
		}
		if r.word == wordReturn {
			return refs, nil
		}
		refs = append(refs, r)
		i = next
	}
	return nil, fmt.Errorf("%v has no RETURN", w)
}

// DisassembleAt answers the companion query: the reference at cell
// index i of w's body, or, when i points into a parameter cell, the
// reference owning that cell.
func (voc *Vocabulary) DisassembleAt(w *Word, i int) (WordRef, error) {
	if w.native {
		return WordRef{}, errNotCompiled
	}
	if i > 0 {
		if r, next, err := voc.disassembleOne(w.body, i-1); err == nil && next == i+1 {
			return r, nil
		}
	}
	r, _, err := voc.disassembleOne(w.body, i)
	return r, err
}

// Disassemble inverts compilation against the Global vocabulary.
func Disassemble(w *Word) ([]WordRef, error) { return Global.Disassemble(w) }
