package fourth

import "fmt"

// Representation ceilings: a StackEffect whose input or peak exceeds
// these cannot be stored, and composing one fails with ErrOverflow.
const (
	maxEffectInput = 255
	maxEffectPeak  = 65535
)

// StackEffect describes the effect upon the stack of a word: in is how
// many values it reads below the entry level, net is the change in depth
// it leaves behind, and peak is the maximum depth (counting the inputs)
// reached while it runs.
type StackEffect struct {
	in   int
	net  int
	peak int
}

// Effect returns the effect of a word that consumes in values and leaves
// out, with the default peak max(in, out).
func Effect(in, out int) StackEffect {
	peak := in
	if out > peak {
		peak = out
	}
	return StackEffect{in: in, net: out - in, peak: peak}
}

// EffectWithPeak is Effect with an explicit transient peak.
func EffectWithPeak(in, out, peak int) StackEffect {
	return StackEffect{in: in, net: out - in, peak: peak}
}

func (fx StackEffect) Input() int  { return fx.in }
func (fx StackEffect) Output() int { return fx.in + fx.net }
func (fx StackEffect) Net() int    { return fx.net }
func (fx StackEffect) Peak() int   { return fx.peak }

// defaultPeak reports whether fx carries the peak Effect would have
// derived, i.e. no explicit transient depth was declared.
func (fx StackEffect) defaultPeak() bool {
	return fx == Effect(fx.in, fx.in+fx.net)
}

// Then returns the cumulative effect of fx followed by other. Confusing,
// since other's inputs may be satisfied either by what fx leaves behind
// or by deeper pre-existing stack.
func (fx StackEffect) Then(other StackEffect) (StackEffect, error) {
	in := fx.in
	if need := other.in - fx.net; need > in {
		in = need
	}
	net := fx.net + other.net
	grow := fx.peak - fx.in
	if g := fx.net + other.peak - other.in; g > grow {
		grow = g
	}
	peak := in + grow
	if in > maxEffectInput || peak > maxEffectPeak {
		return StackEffect{}, compileErrf(ErrOverflow, "composing %v then %v", fx, other)
	}
	return StackEffect{in: in, net: net, peak: peak}, nil
}

// CanMerge reports whether Merge is legal: two control flow paths may
// only join when they agree on net stack effect.
func (fx StackEffect) CanMerge(other StackEffect) bool { return fx.net == other.net }

// Merge returns the effect of doing either fx or other, which must have
// the same net. Inputs take the deeper requirement; each peak is
// re-expressed at that input before taking the larger.
func (fx StackEffect) Merge(other StackEffect) StackEffect {
	in := fx.in
	if other.in > in {
		in = other.in
	}
	peak := in + fx.peak - fx.in
	if p := in + other.peak - other.in; p > peak {
		peak = p
	}
	return StackEffect{in: in, net: fx.net, peak: peak}
}

func (fx StackEffect) String() string {
	return fmt.Sprintf("(%d->%d, max %d)", fx.in, fx.in+fx.net, fx.peak)
}
