package roll

import (
	"fmt"
	"math"
)

// unaryKind selects the numeric transform a Unary node applies.
type unaryKind int

const (
	unaryAbs unaryKind = iota
	unaryTrunc
	unaryFloor
	unaryCeil
	unaryRound
)

func (k unaryKind) name() string {
	switch k {
	case unaryAbs:
		return "abs"
	case unaryTrunc:
		return "trunc"
	case unaryFloor:
		return "floor"
	case unaryCeil:
		return "ceil"
	default:
		return "round"
	}
}

func (k unaryKind) tag() string {
	switch k {
	case unaryAbs:
		return "Abs"
	case unaryTrunc:
		return "Trunc"
	case unaryFloor:
		return "Floor"
	case unaryCeil:
		return "Ceil"
	default:
		return "Round"
	}
}

// Unary wraps a rolled value with a numeric transform. Wrapping an
// already-wrapped node of the same kind returns the existing node; nesting
// rounds keeps the smaller digit count.
type Unary struct {
	kind    unaryKind
	inner   Rollable
	ndigits int
	last    lastValue
}

// Abs wraps x with the absolute value. The absolute value of a multiplier is
// the multiplier with the sign stripped off its scalar.
func Abs(x Rollable) Rollable {
	if m, ok := x.(*Multiplier); ok {
		return m.absMultiplier()
	}
	return wrapUnary(unaryAbs, x, 0)
}

// Trunc wraps x with truncation toward zero.
func Trunc(x Rollable) Rollable {
	return wrapUnary(unaryTrunc, x, 0)
}

// Floor wraps x with rounding toward negative infinity.
func Floor(x Rollable) Rollable {
	return wrapUnary(unaryFloor, x, 0)
}

// Ceil wraps x with rounding toward positive infinity.
func Ceil(x Rollable) Rollable {
	return wrapUnary(unaryCeil, x, 0)
}

// Round wraps x with rounding to ndigits decimal places.
func Round(x Rollable, ndigits int) Rollable {
	return wrapUnary(unaryRound, x, ndigits)
}

func wrapUnary(kind unaryKind, inner Rollable, ndigits int) Rollable {
	if u, ok := inner.(*Unary); ok && u.kind == kind {
		if kind != unaryRound {
			return u
		}
		// Nested rounds keep the coarser of the two digit counts.
		if u.ndigits < ndigits {
			ndigits = u.ndigits
		}
		inner = u.inner
	}
	return &Unary{kind: kind, inner: inner, ndigits: ndigits}
}

// Roll rolls the operand and applies the transform
func (u *Unary) Roll() (float64, error) {
	v, err := u.inner.Roll()
	if err != nil {
		return 0, err
	}
	switch u.kind {
	case unaryAbs:
		v = math.Abs(v)
	case unaryTrunc:
		v = math.Trunc(v)
	case unaryFloor:
		v = math.Floor(v)
	case unaryCeil:
		v = math.Ceil(v)
	default:
		shift := math.Pow(10, float64(u.ndigits))
		v = math.Round(v*shift) / shift
	}
	return u.last.set(v), nil
}

// Last returns the cached roll, rolling first if there is none
func (u *Unary) Last() (float64, error) {
	if !u.last.rolled {
		return u.Roll()
	}
	return u.last.value, nil
}

// Copy returns an unrolled wrapper of the same shape
func (u *Unary) Copy() Rollable {
	return &Unary{
		kind:    u.kind,
		inner:   u.inner.Copy(),
		ndigits: u.ndigits,
	}
}

func (u *Unary) String() string {
	if u.kind == unaryRound && u.ndigits != 0 {
		return fmt.Sprintf("round(%s, %d)", u.inner.String(), u.ndigits)
	}
	return u.kind.name() + "(" + u.inner.String() + ")"
}

// DebugString renders the wrapper in constructor form
func (u *Unary) DebugString() string {
	if u.kind == unaryRound {
		return fmt.Sprintf("Round(%s, ndigits=%d)", u.inner.DebugString(), u.ndigits)
	}
	return u.kind.tag() + "(" + u.inner.DebugString() + ")"
}

// Hash returns the structural hash
func (u *Unary) Hash() uint64 {
	return hashKey(u.identityKey())
}

func (u *Unary) identityKey() string {
	if u.kind == unaryRound {
		return fmt.Sprintf("Round(%s, ndigits=%d)", u.inner.identityKey(), u.ndigits)
	}
	return u.kind.tag() + "(" + u.inner.identityKey() + ")"
}

func (u *Unary) needsParens() bool {
	return false
}
