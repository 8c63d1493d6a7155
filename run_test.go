package fourth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestRunValidation(t *testing.T) {
	_, err := Run(testContext(t), wordDup)
	assert.Equal(t, errNotRunnable, err, "native words are not runnable")

	voc := NewVocabulary()

	needy := NewCompiler()
	needy.SetVocabulary(voc)
	if assert.NoError(t, needy.Parse("1 +", true)) {
		w, err := needy.Finish()
		if assert.NoError(t, err) {
			_, err = Run(testContext(t), w)
			assert.Equal(t, errNeedsInputs, err)
		}
	}

	barren := NewCompiler()
	barren.SetVocabulary(voc)
	if assert.NoError(t, barren.Parse("1 DROP", true)) {
		w, err := barren.Finish()
		if assert.NoError(t, err) {
			_, err = Run(testContext(t), w)
			assert.Equal(t, errNoResult, err)
		}
	}
}

func TestRunCancellation(t *testing.T) {
	voc := NewVocabulary()
	c := NewCompiler()
	c.SetVocabulary(voc)
	// spin forever, maintaining a steady one-deep stack
	if !assert.NoError(t, c.Parse("1 BEGIN DUP 0<> WHILE REPEAT", true)) {
		return
	}
	w, err := c.Finish()
	if !assert.NoError(t, err) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = Run(ctx, w)
	if assert.Error(t, err, "expected the deadline to end the run") {
		assert.Contains(t, err.Error(), "deadline")
	}
}

func TestRunFrameLimit(t *testing.T) {
	voc := NewVocabulary()

	define := func(name, source string) {
		c := NewNamedCompiler(name)
		c.SetVocabulary(voc)
		if assert.NoError(t, c.Parse(source, true)) {
			_, err := c.Finish()
			assert.NoError(t, err)
		}
	}
	define("A", "21")
	define("B", "A DUP +")

	w := voc.Lookup("B")
	if !assert.NotNil(t, w) {
		return
	}

	got, err := Run(testContext(t), w, WithFrameLimit(4))
	if assert.NoError(t, err) {
		assert.Equal(t, Number(42), got)
	}

	_, err = Run(testContext(t), w, WithFrameLimit(1))
	if assert.Error(t, err, "expected the frame limit to trip") {
		assert.Contains(t, err.Error(), "call depth")
	}
}

func TestRunTracing(t *testing.T) {
	voc := NewVocabulary()
	c := NewCompiler()
	c.SetVocabulary(voc)
	if !assert.NoError(t, c.Parse("3 4 +", true)) {
		return
	}
	w, err := c.Finish()
	if !assert.NoError(t, err) {
		return
	}

	var lines []string
	logf := func(mess string, args ...interface{}) {
		lines = append(lines, mess)
	}
	got, err := Run(testContext(t), w, WithLogf(logf))
	if assert.NoError(t, err) {
		assert.Equal(t, Number(7), got)
		assert.NotEmpty(t, lines, "expected step traces")
		assert.True(t, strings.HasPrefix(lines[0], "exec "), "trace lines name the op")
	}
}

func TestDefine(t *testing.T) {
	w, err := Define("ANSWER", "6 7 *")
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, w, Global.Lookup("ANSWER"), "Define installs globally")

	got, err := Eval(testContext(t), "ANSWER ONE -")
	if assert.NoError(t, err) {
		assert.Equal(t, Number(41), got)
	}
}

func TestEval(t *testing.T) {
	got, err := Eval(testContext(t), "6 7 *")
	if assert.NoError(t, err) {
		assert.Equal(t, Number(42), got)
	}

	_, err = Eval(testContext(t), "6 NOPE *")
	assert.Error(t, err)
}
