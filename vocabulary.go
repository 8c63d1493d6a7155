package fourth

import "sync"

// Vocabulary maps names to installed words, and body entry pointers back
// to the word that owns them. Installation happens only on a successful
// Compiler.Finish; installed words are immutable, so the only
// coordination needed is single-writer/multi-reader around the maps.
type Vocabulary struct {
	mu      sync.RWMutex
	words   map[string]*Word
	entries map[*Instruction]*Word
}

// NewVocabulary returns a vocabulary populated with the core words.
func NewVocabulary() *Vocabulary {
	voc := &Vocabulary{
		words:   make(map[string]*Word),
		entries: make(map[*Instruction]*Word),
	}
	for _, w := range coreWords {
		voc.install(w)
	}
	return voc
}

// Global is the process-wide vocabulary used by default; a compiler may
// be pointed at a private one with SetVocabulary.
var Global = NewVocabulary()

// Lookup resolves a name, case-sensitively. Returns nil when undefined.
func (voc *Vocabulary) Lookup(name string) *Word {
	voc.mu.RLock()
	defer voc.mu.RUnlock()
	return voc.words[name]
}

// WordAt answers the reverse lookup: given the pointer to the first
// instruction of a compiled body, return the owning word, or nil.
func (voc *Vocabulary) WordAt(instr *Instruction) *Word {
	voc.mu.RLock()
	defer voc.mu.RUnlock()
	return voc.entries[instr]
}

// install registers a word. A name already present is shadowed by the
// newer definition, as in any Forth.
func (voc *Vocabulary) install(w *Word) {
	voc.mu.Lock()
	defer voc.mu.Unlock()
	if w.name != "" {
		voc.words[w.name] = w
	}
	if !w.native {
		if ptr := entry(w.body); ptr != nil {
			voc.entries[ptr] = w
		}
	}
}

// Names returns the defined names in no particular order.
func (voc *Vocabulary) Names() []string {
	voc.mu.RLock()
	defer voc.mu.RUnlock()
	names := make([]string, 0, len(voc.words))
	for name := range voc.words {
		names = append(names, name)
	}
	return names
}
