// Package roll implements a rollable numeric expression type.
//
// A Rollable is an expression tree whose leaves are dice and whose interior
// nodes are arithmetic or bitwise operators. Combining rollables (or rollables
// and plain numbers) through the package factories produces new rollables,
// which are normalized at construction time: nested sums and products are
// flattened, identical dice merge into groups, and constants fold into the
// node's scalar. Evaluation is lazy; a node holds no value until rolled and
// remembers its most recent roll.
package roll

import (
	"fmt"
	"hash/fnv"
	"strconv"
)

// Operand is either a Rollable or a plain number (int, int64 or float64).
// Factories resolve the concrete kind with a type switch at construction time.
type Operand = any

// Rollable is implemented by every node of the expression algebra. The
// unexported methods seal the interface: the variant catalog is fixed and
// normalization relies on knowing every concrete type.
type Rollable interface {
	fmt.Stringer

	// Roll recomputes the node's value, overwriting any cached roll.
	Roll() (float64, error)

	// Last returns the most recent roll, rolling first if the node has
	// never been rolled.
	Last() (float64, error)

	// Copy returns a structurally equal node with no cached value.
	Copy() Rollable

	// DebugString renders the node in constructor-call form.
	DebugString() string

	// Hash returns the structural hash of the node. It depends only on the
	// node's shape, never on any rolled value.
	Hash() uint64

	identityKey() string
	needsParens() bool
}

// lastValue is the roll cache shared by every node type.
type lastValue struct {
	value  float64
	rolled bool
}

func (l *lastValue) set(v float64) float64 {
	l.value = v
	l.rolled = true
	return v
}

// SameShape reports whether two rollables are structurally identical.
func SameShape(a, b Rollable) bool {
	return a.identityKey() == b.identityKey()
}

// Constant returns a rollable that always produces v. It is the degenerate
// form the normalization engine collapses to (a term-less sum).
func Constant(v float64) Rollable {
	return &Adder{scalar: v}
}

// IsConstant reports whether x is a collapsed constant, and its value.
func IsConstant(x Rollable) (float64, bool) {
	if a, ok := x.(*Adder); ok && len(a.terms) == 0 {
		return a.scalar, true
	}
	return 0, false
}

func hashKey(key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// numericValue reports the value of a plain numeric operand.
func numericValue(x Operand) (float64, bool) {
	switch v := x.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// constantValue is numericValue extended to collapsed constants, which are
// rollables but carry a statically known value.
func constantValue(x Operand) (float64, bool) {
	if v, ok := numericValue(x); ok {
		return v, true
	}
	if r, ok := x.(Rollable); ok {
		return IsConstant(r)
	}
	return 0, false
}

// normalizeOperand reduces an operand to either a Rollable or a float64.
// Any other type is a programming error in the caller.
func normalizeOperand(x Operand) Operand {
	if r, ok := x.(Rollable); ok {
		return r
	}
	if v, ok := numericValue(x); ok {
		return v
	}
	panic(fmt.Sprintf("roll: unsupported operand type %T", x))
}

func rollOperand(x Operand) (float64, error) {
	if r, ok := x.(Rollable); ok {
		return r.Roll()
	}
	v, _ := numericValue(x)
	return v, nil
}

func lastOperand(x Operand) (float64, error) {
	if r, ok := x.(Rollable); ok {
		return r.Last()
	}
	v, _ := numericValue(x)
	return v, nil
}

func copyOperand(x Operand) Operand {
	if r, ok := x.(Rollable); ok {
		return r.Copy()
	}
	return x
}

func operandString(x Operand) string {
	if r, ok := x.(Rollable); ok {
		if r.needsParens() {
			return "(" + r.String() + ")"
		}
		return r.String()
	}
	v, _ := numericValue(x)
	return formatNumber(v)
}

func operandDebugString(x Operand) string {
	if r, ok := x.(Rollable); ok {
		return r.DebugString()
	}
	v, _ := numericValue(x)
	return formatNumber(v)
}

func operandIdentity(x Operand) string {
	if r, ok := x.(Rollable); ok {
		return r.identityKey()
	}
	v, _ := numericValue(x)
	return formatNumber(v)
}

// negOperand negates an operand without building a node for plain numbers.
func negOperand(x Operand) Operand {
	if v, ok := numericValue(x); ok {
		return -v
	}
	return Neg(x.(Rollable))
}

// Comparison operators are defined only in terms of Last: comparing an
// unrolled node rolls it first.

// Equal reports whether x's last value equals the other operand's.
func Equal(x Rollable, other Operand) (bool, error) {
	xv, ov, err := lastPair(x, other)
	return xv == ov, err
}

// NotEqual reports whether x's last value differs from the other operand's.
func NotEqual(x Rollable, other Operand) (bool, error) {
	xv, ov, err := lastPair(x, other)
	return xv != ov, err
}

// Less reports whether x's last value is below the other operand's.
func Less(x Rollable, other Operand) (bool, error) {
	xv, ov, err := lastPair(x, other)
	return xv < ov, err
}

// LessOrEqual reports whether x's last value is at most the other operand's.
func LessOrEqual(x Rollable, other Operand) (bool, error) {
	xv, ov, err := lastPair(x, other)
	return xv <= ov, err
}

// Greater reports whether x's last value is above the other operand's.
func Greater(x Rollable, other Operand) (bool, error) {
	xv, ov, err := lastPair(x, other)
	return xv > ov, err
}

// GreaterOrEqual reports whether x's last value is at least the other operand's.
func GreaterOrEqual(x Rollable, other Operand) (bool, error) {
	xv, ov, err := lastPair(x, other)
	return xv >= ov, err
}

func lastPair(x Rollable, other Operand) (float64, float64, error) {
	xv, err := x.Last()
	if err != nil {
		return 0, 0, err
	}
	ov, err := lastOperand(normalizeOperand(other))
	if err != nil {
		return 0, 0, err
	}
	return xv, ov, nil
}
