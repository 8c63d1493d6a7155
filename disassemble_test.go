package fourth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassembleRoundTrip(t *testing.T) {
	voc := NewVocabulary()

	refs := []WordRef{
		LiteralRef(Number(10)),
		LiteralRef(Number(20)),
		Ref(wordOver),
		Ref(wordOver),
		Ref(wordGt),
		OffsetRef(wordZBranch, 1),
		Ref(wordSwap),
		Ref(wordDrop),
	}

	c := NewCompiler()
	c.SetVocabulary(voc)
	for _, r := range refs {
		c.Add(r)
	}
	word, err := c.Finish()
	if !assert.NoError(t, err) {
		return
	}

	got, err := voc.Disassemble(word)
	if assert.NoError(t, err) {
		assert.Equal(t, refs, got, "disassembly reproduces what was appended")
	}
}

func TestDisassembleCall(t *testing.T) {
	voc := NewVocabulary()

	def := NewNamedCompiler("DOUBLE")
	def.SetVocabulary(voc)
	if !assert.NoError(t, def.Parse("DUP +", true)) {
		return
	}
	double, err := def.Finish()
	if !assert.NoError(t, err) {
		return
	}

	c := NewCompiler()
	c.SetVocabulary(voc)
	if !assert.NoError(t, c.Parse("21 DOUBLE", true)) {
		return
	}
	word, err := c.Finish()
	if !assert.NoError(t, err) {
		return
	}

	got, err := voc.Disassemble(word)
	if assert.NoError(t, err) && assert.Len(t, got, 2) {
		assert.Equal(t, wordLiteral, got[0].Word())
		assert.Equal(t, Number(21), got[0].Literal())
		assert.Equal(t, double, got[1].Word(), "CALL resolves back to the callee")
	}
}

func TestDisassembleAt(t *testing.T) {
	voc := NewVocabulary()

	c := NewCompiler()
	c.SetVocabulary(voc)
	if !assert.NoError(t, c.Parse("3 -4 -", true)) {
		return
	}
	word, err := c.Finish()
	if !assert.NoError(t, err) {
		return
	}

	// cells: LITERAL 3 LITERAL -4 - RETURN
	for _, tc := range []struct {
		i    int
		want string
	}{
		{0, "LITERAL:<3>"},
		{1, "LITERAL:<3>"}, // parameter cell resolves to its owner
		{2, "LITERAL:<-4>"},
		{3, "LITERAL:<-4>"},
		{4, "-"},
		{5, "RETURN"},
	} {
		r, err := voc.DisassembleAt(word, tc.i)
		if assert.NoError(t, err, "at %d", tc.i) {
			assert.Equal(t, tc.want, r.String(), "at %d", tc.i)
		}
	}
}

func TestDisassembleRendering(t *testing.T) {
	voc := NewVocabulary()

	c := NewCompiler()
	c.SetVocabulary(voc)
	if !assert.NoError(t, c.Parse("53 DUP 13 >= 0BRANCH 5 13 - BRANCH -11", true)) {
		return
	}
	word, err := c.Finish()
	if !assert.NoError(t, err) {
		return
	}

	refs, err := voc.Disassemble(word)
	if !assert.NoError(t, err) {
		return
	}
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = r.String()
	}
	assert.Equal(t,
		"LITERAL:<53> DUP LITERAL:<13> >= 0BRANCH+<5> LITERAL:<13> - BRANCH+<-11>",
		strings.Join(parts, " "))
}

func TestDisassembleNative(t *testing.T) {
	_, err := Disassemble(wordDup)
	assert.Error(t, err, "native words have no body to disassemble")
}
