package roll

import "strings"

// Multiplier multiplies its terms together and by a scalar. Construction
// flattens nested multipliers and folds numeric operands into the scalar; a
// zero scalar collapses the whole product to the constant 0, and a single
// term with a unit scalar is returned directly.
type Multiplier struct {
	terms  []Rollable
	scalar float64
	last   lastValue
}

// Mul combines operands multiplicatively, returning the normalized result.
func Mul(operands ...Operand) Rollable {
	return newMultiplier(operands, 1)
}

// Neg negates a rollable by wrapping it in a -1 multiplier.
func Neg(x Rollable) Rollable {
	return newMultiplier([]Operand{x}, -1)
}

func newMultiplier(operands []Operand, scalar float64) Rollable {
	queue := make([]Operand, len(operands))
	for i, x := range operands {
		queue[i] = normalizeOperand(x)
	}

	var terms []Rollable
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]

		if v, ok := constantValue(x); ok {
			scalar *= v
			continue
		}
		if m, ok := x.(*Multiplier); ok {
			scalar *= m.scalar
			for _, term := range m.terms {
				queue = append(queue, term)
			}
			continue
		}
		terms = append(terms, x.(Rollable))
	}

	if scalar == 0 {
		return Constant(0)
	}
	if scalar == 1 && len(terms) == 1 {
		return terms[0]
	}
	if len(terms) == 0 {
		return Constant(scalar)
	}
	return &Multiplier{terms: terms, scalar: scalar}
}

// Terms returns the normalized terms
func (m *Multiplier) Terms() []Rollable {
	return m.terms
}

// Scalar returns the folded constant factor
func (m *Multiplier) Scalar() float64 {
	return m.scalar
}

// Roll rolls every term, multiplies the results and applies the scalar
func (m *Multiplier) Roll() (float64, error) {
	product := m.scalar
	for _, term := range m.terms {
		v, err := term.Roll()
		if err != nil {
			return 0, err
		}
		product *= v
	}
	return m.last.set(product), nil
}

// Last returns the cached roll, rolling first if there is none
func (m *Multiplier) Last() (float64, error) {
	if !m.last.rolled {
		return m.Roll()
	}
	return m.last.value, nil
}

// Copy returns an unrolled multiplier of the same shape
func (m *Multiplier) Copy() Rollable {
	terms := make([]Rollable, len(m.terms))
	for i, term := range m.terms {
		terms[i] = term.Copy()
	}
	return &Multiplier{terms: terms, scalar: m.scalar}
}

func (m *Multiplier) String() string {
	parts := make([]string, len(m.terms))
	for i, term := range m.terms {
		parts[i] = operandString(term)
	}
	ret := strings.Join(parts, " * ")
	switch m.scalar {
	case 1:
	case -1:
		ret = "-" + ret
	default:
		ret += " * " + formatNumber(m.scalar)
	}
	return ret
}

// DebugString renders the multiplier in constructor form
func (m *Multiplier) DebugString() string {
	return m.describe(func(r Rollable) string { return r.DebugString() })
}

// Hash returns the structural hash
func (m *Multiplier) Hash() uint64 {
	return hashKey(m.identityKey())
}

func (m *Multiplier) identityKey() string {
	return m.describe(func(r Rollable) string { return r.identityKey() })
}

func (m *Multiplier) describe(render func(Rollable) string) string {
	parts := make([]string, 0, len(m.terms)+1)
	for _, term := range m.terms {
		parts = append(parts, render(term))
	}
	if m.scalar != 1 {
		parts = append(parts, formatNumber(m.scalar))
	}
	return "Multiplier(" + strings.Join(parts, ", ") + ")"
}

func (m *Multiplier) needsParens() bool {
	return true
}

// absMultiplier strips the sign off the scalar, used by Abs so that
// abs(-2 * x) becomes 2 * abs-free terms the way the scalar algebra expects.
func (m *Multiplier) absMultiplier() Rollable {
	terms := make([]Operand, len(m.terms))
	for i, term := range m.terms {
		terms[i] = term
	}
	return newMultiplier(terms, absFloat(m.scalar))
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
