package roll

import "math"

// Divider divides a numerator by a denominator, either keeping the real
// quotient or truncating it. Chains of same-mode dividers collapse by
// cross-multiplication at construction, a constant denominator folds into a
// multiplier, and a statically zero denominator is rejected outright.
type Divider struct {
	numerator   Operand
	denominator Operand
	truediv     bool
	last        lastValue
}

// Div divides x by the other operand, keeping the real quotient.
func Div(numerator, denominator Operand) (Rollable, error) {
	return newDivider(numerator, denominator, true)
}

// FloorDiv divides x by the other operand, truncating the quotient.
func FloorDiv(numerator, denominator Operand) (Rollable, error) {
	return newDivider(numerator, denominator, false)
}

func newDivider(numerator, denominator Operand, truediv bool) (Rollable, error) {
	numerator = normalizeOperand(numerator)
	denominator = normalizeOperand(denominator)
	if v, ok := constantValue(denominator); ok && v == 0 {
		return nil, ErrDivisionByZero
	}

	num, den := collapseQuotient(numerator, denominator, func(x Operand) (Operand, Operand, bool) {
		d, ok := x.(*Divider)
		if !ok || d.truediv != truediv {
			return nil, nil, false
		}
		return d.numerator, d.denominator, true
	})

	// Two multipliers divide scalar against scalar, leaving the division
	// to act on the bare term products.
	if nm, ok := num.(*Multiplier); ok {
		if dm, ok := den.(*Multiplier); ok {
			num = newMultiplier(asOperands(nm.terms), nm.scalar/dm.scalar)
			den = newMultiplier(asOperands(dm.terms), 1)
		}
	}

	if v, ok := constantValue(den); ok {
		if v == 0 {
			return nil, ErrDivisionByZero
		}
		if v == 1 {
			return toRollable(num), nil
		}
		return newMultiplier([]Operand{num}, 1/v), nil
	}

	return &Divider{numerator: num, denominator: den, truediv: truediv}, nil
}

// collapseQuotient cross-multiplies nested quotient-shaped nodes so that
// (a/b)/(c/d) becomes (a*d)/(b*c). unwrap recognizes the node kind being
// built and returns its numerator and denominator.
func collapseQuotient(numerator, denominator Operand, unwrap func(Operand) (Operand, Operand, bool)) (Operand, Operand) {
	var num, den Operand = numerator, 1.0
	if n, d, ok := unwrap(numerator); ok {
		num, den = n, d
	}
	if n, d, ok := unwrap(denominator); ok {
		num = mulOperands(num, d)
		den = mulOperands(den, n)
	} else {
		den = mulOperands(den, denominator)
	}
	return num, den
}

// mulOperands multiplies two operands without building a node when both are
// plain numbers.
func mulOperands(a, b Operand) Operand {
	av, aok := constantValue(a)
	bv, bok := constantValue(b)
	switch {
	case aok && bok:
		return av * bv
	case aok && av == 1:
		return b
	case bok && bv == 1:
		return a
	default:
		return newMultiplier([]Operand{a, b}, 1)
	}
}

func asOperands(terms []Rollable) []Operand {
	operands := make([]Operand, len(terms))
	for i, term := range terms {
		operands[i] = term
	}
	return operands
}

func toRollable(x Operand) Rollable {
	if r, ok := x.(Rollable); ok {
		return r
	}
	v, _ := numericValue(x)
	return Constant(v)
}

// Roll rolls both operands and divides
func (d *Divider) Roll() (float64, error) {
	n, err := rollOperand(d.numerator)
	if err != nil {
		return 0, err
	}
	dv, err := rollOperand(d.denominator)
	if err != nil {
		return 0, err
	}
	if dv == 0 {
		return 0, ErrRuntimeDivisionByZero
	}
	q := n / dv
	if !d.truediv {
		q = math.Trunc(q)
	}
	return d.last.set(q), nil
}

// Last returns the cached roll, rolling first if there is none
func (d *Divider) Last() (float64, error) {
	if !d.last.rolled {
		return d.Roll()
	}
	return d.last.value, nil
}

// Copy returns an unrolled divider of the same shape
func (d *Divider) Copy() Rollable {
	return &Divider{
		numerator:   copyOperand(d.numerator),
		denominator: copyOperand(d.denominator),
		truediv:     d.truediv,
	}
}

func (d *Divider) String() string {
	sep := " // "
	if d.truediv {
		sep = " / "
	}
	return operandString(d.numerator) + sep + operandString(d.denominator)
}

// DebugString renders the divider in constructor form
func (d *Divider) DebugString() string {
	return d.describe(operandDebugString)
}

// Hash returns the structural hash
func (d *Divider) Hash() uint64 {
	return hashKey(d.identityKey())
}

func (d *Divider) identityKey() string {
	return d.describe(operandIdentity)
}

func (d *Divider) describe(render func(Operand) string) string {
	tag := "FloorDivider"
	if d.truediv {
		tag = "Divider"
	}
	return tag + "(" + render(d.numerator) + ", " + render(d.denominator) + ")"
}

func (d *Divider) needsParens() bool {
	return true
}
