package roll

import "math"

// DivMod produces the truncating quotient and remainder of its operands in a
// single roll. Roll and Last report the quotient; the paired remainder is
// available through RollBoth and LastRemainder.
type DivMod struct {
	numerator   Operand
	denominator Operand
	last        lastValue
	lastRem     lastValue
}

// NewDivMod builds a combined quotient/remainder node.
func NewDivMod(numerator, denominator Operand) (*DivMod, error) {
	numerator = normalizeOperand(numerator)
	denominator = normalizeOperand(denominator)
	if v, ok := constantValue(denominator); ok && v == 0 {
		return nil, ErrDivisionByZero
	}

	num, den := collapseQuotient(numerator, denominator, func(x Operand) (Operand, Operand, bool) {
		d, ok := x.(*DivMod)
		if !ok {
			return nil, nil, false
		}
		return d.numerator, d.denominator, true
	})
	if v, ok := constantValue(den); ok && v == 0 {
		return nil, ErrDivisionByZero
	}

	return &DivMod{numerator: num, denominator: den}, nil
}

// Roll rolls both operands and returns the truncating quotient, caching the
// remainder alongside it
func (d *DivMod) Roll() (float64, error) {
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
	d.lastRem.set(math.Mod(n, dv))
	return d.last.set(math.Trunc(n / dv)), nil
}

// RollBoth rolls once and returns the (quotient, remainder) pair
func (d *DivMod) RollBoth() (float64, float64, error) {
	q, err := d.Roll()
	if err != nil {
		return 0, 0, err
	}
	return q, d.lastRem.value, nil
}

// Last returns the cached quotient, rolling first if there is none
func (d *DivMod) Last() (float64, error) {
	if !d.last.rolled {
		return d.Roll()
	}
	return d.last.value, nil
}

// LastRemainder returns the cached remainder, rolling first if there is none
func (d *DivMod) LastRemainder() (float64, error) {
	if !d.lastRem.rolled {
		if _, err := d.Roll(); err != nil {
			return 0, err
		}
	}
	return d.lastRem.value, nil
}

// Copy returns an unrolled node of the same shape
func (d *DivMod) Copy() Rollable {
	return &DivMod{
		numerator:   copyOperand(d.numerator),
		denominator: copyOperand(d.denominator),
	}
}

func (d *DivMod) String() string {
	return "divmod(" + operandString(d.numerator) + ", " + operandString(d.denominator) + ")"
}

// DebugString renders the node in constructor form
func (d *DivMod) DebugString() string {
	return "DivMod(" + operandDebugString(d.numerator) + ", " + operandDebugString(d.denominator) + ")"
}

// Hash returns the structural hash
func (d *DivMod) Hash() uint64 {
	return hashKey(d.identityKey())
}

func (d *DivMod) identityKey() string {
	return "DivMod(" + operandIdentity(d.numerator) + ", " + operandIdentity(d.denominator) + ")"
}

func (d *DivMod) needsParens() bool {
	return false
}
