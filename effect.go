package fourth

// The verifier: starting from an empty stack at position 0, propagate
// the cumulative stack effect along every reachable control flow path,
// merging where paths join, and aggregate the effect of every path that
// reaches RETURN. Positions never reached contribute nothing.

// computeEffect runs the verifier over the appended references and
// returns the definition's stack effect.
func (c *Compiler) computeEffect() (StackEffect, error) {
	effects := make([]*StackEffect, len(c.refs))
	var final *StackEffect
	if len(c.refs) > 0 {
		if err := c.propagate(0, StackEffect{}, effects, &final); err != nil {
			return StackEffect{}, err
		}
	}
	if final == nil {
		return StackEffect{}, compileErrf(ErrEffectMismatch, "definition never reaches RETURN")
	}
	c.logf("verified %v", *final)
	return *final, nil
}

// propagate walks from reference index idx carrying fx, the effect from
// entry of the definition up to just before executing that instruction.
func (c *Compiler) propagate(idx int, fx StackEffect, effects []*StackEffect, final **StackEffect) error {
	for {
		r := &c.refs[idx]

		if prev := effects[idx]; prev != nil {
			if *prev == fx {
				return nil
			}
			if !prev.CanMerge(fx) {
				return c.errAt(r, ErrUnbalancedMerge, "%v joined by %v at %v", *prev, fx, r.WordRef)
			}
			merged := prev.Merge(fx)
			if merged == *prev {
				return nil
			}
			fx = merged
		}
		cur := fx
		effects[idx] = &cur

		next, err := fx.Then(r.word.effect)
		if err != nil {
			return err
		}

		switch r.word {
		case wordReturn:
			if *final == nil {
				*final = &next
			} else if !(*final).CanMerge(next) {
				return c.errAt(r, ErrUnbalancedMerge, "return paths %v and %v", **final, next)
			} else {
				merged := (*final).Merge(next)
				*final = &merged
			}
			return nil

		case wordBranch:
			tidx, err := c.branchTargetIndex(r)
			if err != nil {
				return err
			}
			idx, fx = tidx, next

		case wordZBranch:
			tidx, err := c.branchTargetIndex(r)
			if err != nil {
				return err
			}
			if err := c.propagate(tidx, next, effects, final); err != nil {
				return err
			}
			idx, fx = idx+1, next

		default:
			idx, fx = idx+1, next
		}
	}
}

// branchTargetIndex resolves a branch reference's target position to a
// reference index, requiring it to land on an opcode cell within the
// definition.
func (c *Compiler) branchTargetIndex(r *placedRef) (int, error) {
	target := r.pos + 2 + InstructionPos(r.param.off)
	i, ok := c.indexOf(target)
	if !ok {
		return 0, c.errAt(r, ErrBranchRange, "%v targets @%v", r.WordRef, target)
	}
	return i, nil
}

// errAt decorates a verifier failure with the reference's source
// offset, when it came from parsed text.
func (c *Compiler) errAt(r *placedRef, kind error, format string, args ...interface{}) error {
	if r.off >= 0 {
		return compileErrAt(kind, r.off, format, args...)
	}
	return compileErrf(kind, format, args...)
}
