package roll

import "math"

// Power raises a base to an exponent. Nested powers flatten at construction
// by multiplying the exponents together, since (a**b)**c == a**(b*c). The
// degenerate cases collapse: base 0 is 0, base 1 or exponent 0 is 1,
// exponent 1 is the base, exponent -1 is the reciprocal.
type Power struct {
	base     Operand
	exponent Operand
	last     lastValue
}

// Pow raises base to exponent, returning the normalized result.
func Pow(base, exponent Operand) Rollable {
	base = normalizeOperand(base)
	exponent = normalizeOperand(exponent)

	bbase, bexp := powerPieces(base)
	ebase, eexp := powerPieces(exponent)
	group := append(bexp, ebase)
	group = append(group, eexp...)
	base = bbase

	// Multiply every exponent piece together, folding constants.
	scalar := 1.0
	var rollables []Operand
	for _, item := range group {
		if v, ok := constantValue(item); ok {
			scalar *= v
			continue
		}
		rollables = append(rollables, item)
	}
	var exponentOp Operand
	if len(rollables) > 0 {
		exponentOp = newMultiplier(rollables, scalar)
	} else {
		exponentOp = scalar
	}

	if v, ok := constantValue(base); ok {
		if v == 0 {
			return Constant(0)
		}
		if v == 1 {
			return Constant(1)
		}
	}
	if v, ok := constantValue(exponentOp); ok {
		switch v {
		case 0:
			return Constant(1)
		case 1:
			return toRollable(base)
		case -1:
			if q, err := newDivider(1.0, base, true); err == nil {
				return q
			}
		}
	}

	return &Power{base: base, exponent: exponentOp}
}

// powerPieces splits nested power chains into the innermost base and the
// list of exponent factors.
func powerPieces(x Operand) (Operand, []Operand) {
	p, ok := x.(*Power)
	if !ok {
		return x, nil
	}
	base, bexp := powerPieces(p.base)
	ebase, eexp := powerPieces(p.exponent)
	exps := append(bexp, ebase)
	exps = append(exps, eexp...)
	return base, exps
}

// Roll rolls both operands and exponentiates
func (p *Power) Roll() (float64, error) {
	b, err := rollOperand(p.base)
	if err != nil {
		return 0, err
	}
	e, err := rollOperand(p.exponent)
	if err != nil {
		return 0, err
	}
	return p.last.set(math.Pow(b, e)), nil
}

// Last returns the cached roll, rolling first if there is none
func (p *Power) Last() (float64, error) {
	if !p.last.rolled {
		return p.Roll()
	}
	return p.last.value, nil
}

// Copy returns an unrolled power of the same shape
func (p *Power) Copy() Rollable {
	return &Power{
		base:     copyOperand(p.base),
		exponent: copyOperand(p.exponent),
	}
}

func (p *Power) String() string {
	return operandString(p.base) + " ** " + operandString(p.exponent)
}

// DebugString renders the power in constructor form
func (p *Power) DebugString() string {
	return "Power(" + operandDebugString(p.base) + ", " + operandDebugString(p.exponent) + ")"
}

// Hash returns the structural hash
func (p *Power) Hash() uint64 {
	return hashKey(p.identityKey())
}

func (p *Power) identityKey() string {
	return "Power(" + operandIdentity(p.base) + ", " + operandIdentity(p.exponent) + ")"
}

func (p *Power) needsParens() bool {
	return true
}
