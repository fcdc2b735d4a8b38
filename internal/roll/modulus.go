package roll

import (
	"math"

	"github.com/KirkDiggler/rollable/internal/dice"
)

// Modulus produces the remainder of its rolled operands. When the numerator
// is a die (or group of dice) whose side count the constant denominator
// divides evenly, construction rewrites the expression to a smaller die minus
// one: a uniform draw over 1..s reduced mod k is itself uniform over 0..k-1
// when k divides s, so the rewrite preserves the distribution, not just the
// syntax.
type Modulus struct {
	numerator   Operand
	denominator Operand
	last        lastValue
}

// Mod builds the remainder of x by the other operand.
func Mod(numerator, denominator Operand) (Rollable, error) {
	numerator = normalizeOperand(numerator)
	denominator = normalizeOperand(denominator)
	if v, ok := constantValue(denominator); ok && v == 0 {
		return nil, ErrDivisionByZero
	}

	num, den := collapseQuotient(numerator, denominator, func(x Operand) (Operand, Operand, bool) {
		m, ok := x.(*Modulus)
		if !ok {
			return nil, nil, false
		}
		return m.numerator, m.denominator, true
	})
	if v, ok := constantValue(den); ok && v == 0 {
		return nil, ErrDivisionByZero
	}

	if rewritten, ok := rewriteDieModulus(num, den); ok {
		return rewritten, nil
	}
	return &Modulus{numerator: num, denominator: den}, nil
}

// rewriteDieModulus applies NdS % k -> NdK - 1 when k evenly divides S. The
// rewrite only fires for standard conventions; a custom convention changes
// the distribution and must keep the literal modulus.
func rewriteDieModulus(num, den Operand) (Rollable, bool) {
	k, ok := constantValue(den)
	if !ok || k < 2 || k != math.Trunc(k) {
		return nil, false
	}

	var (
		sides  int
		rolls  int
		roller dice.Roller
	)
	switch t := num.(type) {
	case *Die:
		if !isStandardDieConv(t.conv) {
			return nil, false
		}
		sides, rolls, roller = t.sides, 1, t.roller
	case *DiceGroup:
		die, ok := t.die.(*Die)
		if !ok || !isStandardDieConv(die.conv) || !isStandardGroupConv(t.conv) {
			return nil, false
		}
		sides, rolls, roller = die.sides, t.Count(), die.roller
	default:
		return nil, false
	}
	if sides%int(k) != 0 {
		return nil, false
	}

	die, err := NewDieWithConfig(&DieConfig{Sides: int(k), Roller: roller})
	if err != nil {
		return nil, false
	}
	var replacement Rollable = die
	if rolls > 1 {
		replacement = newDiceGroup(rolls, die, StandardDice)
	}
	return newAdder([]Operand{replacement}, -1), true
}

// Roll rolls both operands and takes the remainder
func (m *Modulus) Roll() (float64, error) {
	n, err := rollOperand(m.numerator)
	if err != nil {
		return 0, err
	}
	d, err := rollOperand(m.denominator)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, ErrRuntimeDivisionByZero
	}
	return m.last.set(math.Mod(n, d)), nil
}

// Last returns the cached roll, rolling first if there is none
func (m *Modulus) Last() (float64, error) {
	if !m.last.rolled {
		return m.Roll()
	}
	return m.last.value, nil
}

// Copy returns an unrolled modulus of the same shape
func (m *Modulus) Copy() Rollable {
	return &Modulus{
		numerator:   copyOperand(m.numerator),
		denominator: copyOperand(m.denominator),
	}
}

func (m *Modulus) String() string {
	return operandString(m.numerator) + " % " + operandString(m.denominator)
}

// DebugString renders the modulus in constructor form
func (m *Modulus) DebugString() string {
	return "Modulus(" + operandDebugString(m.numerator) + ", " + operandDebugString(m.denominator) + ")"
}

// Hash returns the structural hash
func (m *Modulus) Hash() uint64 {
	return hashKey(m.identityKey())
}

func (m *Modulus) identityKey() string {
	return "Modulus(" + operandIdentity(m.numerator) + ", " + operandIdentity(m.denominator) + ")"
}

func (m *Modulus) needsParens() bool {
	return true
}
