package roll

import "strings"

// Adder sums its terms and adds a scalar. Construction normalizes: nested
// adders are flattened, like dice collect into groups, multipliers sharing a
// scalar are factored together and plain numbers fold into the scalar. An
// adder never holds another adder, a bare constant, or a single term with a
// zero scalar.
type Adder struct {
	terms  []Rollable
	scalar float64
	last   lastValue
}

// Add combines operands additively, returning the normalized result. The
// result may not be an *Adder at all: a single surviving term is returned
// directly, and pure numbers collapse to a constant.
func Add(operands ...Operand) Rollable {
	return newAdder(operands, 0)
}

// Sub subtracts the other operand from x.
func Sub(x Rollable, other Operand) Rollable {
	return newAdder([]Operand{x, negOperand(normalizeOperand(other))}, 0)
}

// dieTally accumulates how many copies of one die shape appear in a sum.
type dieTally struct {
	die   Rollable
	count int
}

func newAdder(operands []Operand, scalar float64) Rollable {
	// Flatten nested adders and fold numeric operands into the scalar.
	queue := make([]Operand, len(operands))
	for i, x := range operands {
		queue[i] = normalizeOperand(x)
	}

	var flat []Rollable
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]

		if v, ok := numericValue(x); ok {
			scalar += v
			continue
		}
		if a, ok := x.(*Adder); ok {
			scalar += a.scalar
			for _, term := range a.terms {
				queue = append(queue, term)
			}
			continue
		}
		flat = append(flat, x.(Rollable))
	}

	// Collapse like dice by the shape of the underlying die, and group
	// multipliers by their scalar. Ordering is first appearance.
	var (
		dieOrder  []string
		tallies   = map[string]*dieTally{}
		mulOrder  []float64
		mulGroups = map[float64][]Rollable{}
		rest      []Rollable
	)

	for _, term := range flat {
		switch t := term.(type) {
		case *Die:
			tallyDie(tallies, &dieOrder, t, 1)
		case *DiceGroup:
			if !isStandardGroupConv(t.conv) {
				// A custom reduction is not a plain sum of dice.
				rest = append(rest, t)
				continue
			}
			tallyDie(tallies, &dieOrder, t.die, t.Count())
		case *Multiplier:
			if _, ok := mulGroups[t.scalar]; !ok {
				mulOrder = append(mulOrder, t.scalar)
			}
			mulGroups[t.scalar] = append(mulGroups[t.scalar], t.terms...)
		default:
			rest = append(rest, term)
		}
	}

	terms := make([]Rollable, 0, len(flat))
	for _, key := range dieOrder {
		tally := tallies[key]
		if tally.count > 1 {
			terms = append(terms, newDiceGroup(tally.count, tally.die, StandardDice))
		} else {
			terms = append(terms, tally.die)
		}
	}

	// k*a + k*b factors to k*(a+b).
	for _, ms := range mulOrder {
		inner := make([]Operand, len(mulGroups[ms]))
		for i, item := range mulGroups[ms] {
			inner[i] = item
		}
		factored := newMultiplier([]Operand{newAdder(inner, 0)}, ms)
		if v, ok := IsConstant(factored); ok {
			scalar += v
			continue
		}
		terms = append(terms, factored)
	}

	terms = append(terms, rest...)

	if scalar == 0 && len(terms) == 1 {
		return terms[0]
	}
	return &Adder{terms: terms, scalar: scalar}
}

func tallyDie(tallies map[string]*dieTally, order *[]string, die Rollable, count int) {
	key := die.identityKey()
	tally, ok := tallies[key]
	if !ok {
		tally = &dieTally{die: die}
		tallies[key] = tally
		*order = append(*order, key)
	}
	tally.count += count
}

// Terms returns the normalized terms
func (a *Adder) Terms() []Rollable {
	return a.terms
}

// Scalar returns the folded constant part
func (a *Adder) Scalar() float64 {
	return a.scalar
}

// Roll rolls every term, sums the results and adds the scalar
func (a *Adder) Roll() (float64, error) {
	total := a.scalar
	for _, term := range a.terms {
		v, err := term.Roll()
		if err != nil {
			return 0, err
		}
		total += v
	}
	return a.last.set(total), nil
}

// Last returns the cached roll, rolling first if there is none
func (a *Adder) Last() (float64, error) {
	if !a.last.rolled {
		return a.Roll()
	}
	return a.last.value, nil
}

// Copy returns an unrolled adder of the same shape
func (a *Adder) Copy() Rollable {
	terms := make([]Rollable, len(a.terms))
	for i, term := range a.terms {
		terms[i] = term.Copy()
	}
	return &Adder{terms: terms, scalar: a.scalar}
}

func (a *Adder) String() string {
	if len(a.terms) == 0 {
		return formatNumber(a.scalar)
	}
	parts := make([]string, len(a.terms))
	for i, term := range a.terms {
		parts[i] = operandString(term)
	}
	ret := strings.Join(parts, " + ")
	if a.scalar > 0 {
		ret += " + " + formatNumber(a.scalar)
	} else if a.scalar < 0 {
		ret += " - " + formatNumber(-a.scalar)
	}
	return ret
}

// DebugString renders the adder in constructor form
func (a *Adder) DebugString() string {
	return a.describe(func(r Rollable) string { return r.DebugString() })
}

// Hash returns the structural hash
func (a *Adder) Hash() uint64 {
	return hashKey(a.identityKey())
}

func (a *Adder) identityKey() string {
	return a.describe(func(r Rollable) string { return r.identityKey() })
}

func (a *Adder) describe(render func(Rollable) string) string {
	parts := make([]string, 0, len(a.terms)+1)
	for _, term := range a.terms {
		parts = append(parts, render(term))
	}
	if a.scalar != 0 || len(parts) == 0 {
		parts = append(parts, formatNumber(a.scalar))
	}
	return "Adder(" + strings.Join(parts, ", ") + ")"
}

func (a *Adder) needsParens() bool {
	// A collapsed constant renders as a bare number.
	return len(a.terms) > 0
}
