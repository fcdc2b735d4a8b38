package roll

import (
	"strconv"
	"strings"
)

// bitwiseKind selects the reduction a Bitwise node applies.
type bitwiseKind int

const (
	bitAnd bitwiseKind = iota
	bitOr
	bitXor
)

// identity returns the scalar that leaves the reduction unchanged: all bits
// set for AND, none for OR and XOR.
func (k bitwiseKind) identity() int64 {
	if k == bitAnd {
		return -1
	}
	return 0
}

func (k bitwiseKind) combine(a, b int64) int64 {
	switch k {
	case bitAnd:
		return a & b
	case bitOr:
		return a | b
	default:
		return a ^ b
	}
}

func (k bitwiseKind) tag() string {
	switch k {
	case bitAnd:
		return "BitwiseAnd"
	case bitOr:
		return "BitwiseOr"
	default:
		return "BitwiseXor"
	}
}

func (k bitwiseKind) symbol() string {
	switch k {
	case bitAnd:
		return " & "
	case bitOr:
		return " | "
	default:
		return " ^ "
	}
}

// Bitwise reduces its terms with a single bitwise operator and folds constant
// operands into a scalar, mirroring the flatten-and-merge discipline of the
// additive engine. Operands are truncated to int64 at reduction time.
type Bitwise struct {
	kind   bitwiseKind
	terms  []Rollable
	scalar int64
	last   lastValue
}

// And combines operands with bitwise AND. An accumulated zero scalar
// short-circuits the whole reduction to the constant 0.
func And(operands ...Operand) Rollable {
	return newBitwise(bitAnd, operands)
}

// Or combines operands with bitwise OR.
func Or(operands ...Operand) Rollable {
	return newBitwise(bitOr, operands)
}

// Xor combines operands with bitwise XOR.
func Xor(operands ...Operand) Rollable {
	return newBitwise(bitXor, operands)
}

func newBitwise(kind bitwiseKind, operands []Operand) Rollable {
	scalar := kind.identity()

	queue := make([]Operand, len(operands))
	for i, x := range operands {
		queue[i] = normalizeOperand(x)
	}

	var terms []Rollable
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]

		if v, ok := constantValue(x); ok {
			scalar = kind.combine(scalar, int64(v))
			continue
		}
		if b, ok := x.(*Bitwise); ok && b.kind == kind {
			scalar = kind.combine(scalar, b.scalar)
			for _, term := range b.terms {
				queue = append(queue, term)
			}
			continue
		}
		terms = append(terms, x.(Rollable))
	}

	if kind == bitAnd && scalar == 0 {
		return Constant(0)
	}
	if len(terms) == 1 && scalar == kind.identity() {
		return terms[0]
	}
	if len(terms) == 0 {
		return Constant(float64(scalar))
	}
	return &Bitwise{kind: kind, terms: terms, scalar: scalar}
}

// Terms returns the normalized terms
func (b *Bitwise) Terms() []Rollable {
	return b.terms
}

// Scalar returns the folded constant part
func (b *Bitwise) Scalar() int64 {
	return b.scalar
}

// Roll rolls every term and reduces, folding in the scalar
func (b *Bitwise) Roll() (float64, error) {
	acc := b.scalar
	for _, term := range b.terms {
		v, err := term.Roll()
		if err != nil {
			return 0, err
		}
		acc = b.kind.combine(acc, int64(v))
	}
	return b.last.set(float64(acc)), nil
}

// Last returns the cached roll, rolling first if there is none
func (b *Bitwise) Last() (float64, error) {
	if !b.last.rolled {
		return b.Roll()
	}
	return b.last.value, nil
}

// Copy returns an unrolled reduction of the same shape
func (b *Bitwise) Copy() Rollable {
	terms := make([]Rollable, len(b.terms))
	for i, term := range b.terms {
		terms[i] = term.Copy()
	}
	return &Bitwise{kind: b.kind, terms: terms, scalar: b.scalar}
}

func (b *Bitwise) String() string {
	parts := make([]string, len(b.terms))
	for i, term := range b.terms {
		parts[i] = operandString(term)
	}
	ret := strings.Join(parts, b.kind.symbol())
	if b.scalar != b.kind.identity() {
		ret += b.kind.symbol() + strconv.FormatInt(b.scalar, 10)
	}
	return ret
}

// DebugString renders the reduction in constructor form
func (b *Bitwise) DebugString() string {
	return b.describe(func(r Rollable) string { return r.DebugString() })
}

// Hash returns the structural hash
func (b *Bitwise) Hash() uint64 {
	return hashKey(b.identityKey())
}

func (b *Bitwise) identityKey() string {
	return b.describe(func(r Rollable) string { return r.identityKey() })
}

func (b *Bitwise) describe(render func(Rollable) string) string {
	parts := make([]string, 0, len(b.terms)+1)
	for _, term := range b.terms {
		parts = append(parts, render(term))
	}
	if b.scalar != b.kind.identity() {
		parts = append(parts, strconv.FormatInt(b.scalar, 10))
	}
	return b.kind.tag() + "(" + strings.Join(parts, ", ") + ")"
}

func (b *Bitwise) needsParens() bool {
	return true
}

// BitwiseInvert complements its operand's bits. Inverting an inverted node
// returns the original inner node instead of double-wrapping.
type BitwiseInvert struct {
	inner Rollable
	last  lastValue
}

// Invert complements x, eliminating double inversion by identity.
func Invert(x Rollable) Rollable {
	if inv, ok := x.(*BitwiseInvert); ok {
		return inv.inner
	}
	return &BitwiseInvert{inner: x}
}

// Roll rolls the operand and complements it
func (i *BitwiseInvert) Roll() (float64, error) {
	v, err := i.inner.Roll()
	if err != nil {
		return 0, err
	}
	return i.last.set(float64(^int64(v))), nil
}

// Last returns the cached roll, rolling first if there is none
func (i *BitwiseInvert) Last() (float64, error) {
	if !i.last.rolled {
		return i.Roll()
	}
	return i.last.value, nil
}

// Copy returns an unrolled inversion of the same shape
func (i *BitwiseInvert) Copy() Rollable {
	return &BitwiseInvert{inner: i.inner.Copy()}
}

func (i *BitwiseInvert) String() string {
	return "~" + operandString(i.inner)
}

// DebugString renders the inversion in constructor form
func (i *BitwiseInvert) DebugString() string {
	return "BitwiseInvert(" + i.inner.DebugString() + ")"
}

// Hash returns the structural hash
func (i *BitwiseInvert) Hash() uint64 {
	return hashKey(i.identityKey())
}

func (i *BitwiseInvert) identityKey() string {
	return "BitwiseInvert(" + i.inner.identityKey() + ")"
}

func (i *BitwiseInvert) needsParens() bool {
	return false
}

// BitwiseShift shifts a value by a signed amount: positive shifts right,
// negative shifts left. One node type encodes both directions.
type BitwiseShift struct {
	value  Operand
	amount Operand
	last   lastValue
}

// ShiftRight shifts the value right by amount bits.
func ShiftRight(value, amount Operand) Rollable {
	return &BitwiseShift{
		value:  normalizeOperand(value),
		amount: normalizeOperand(amount),
	}
}

// ShiftLeft shifts the value left by amount bits.
func ShiftLeft(value, amount Operand) Rollable {
	return &BitwiseShift{
		value:  normalizeOperand(value),
		amount: negOperand(normalizeOperand(amount)),
	}
}

// Roll rolls both operands, then shifts
func (s *BitwiseShift) Roll() (float64, error) {
	v, err := rollOperand(s.value)
	if err != nil {
		return 0, err
	}
	amt, err := rollOperand(s.amount)
	if err != nil {
		return 0, err
	}
	value := int64(v)
	shift := int64(amt)
	if shift < 0 {
		value <<= uint(-shift)
	} else {
		value >>= uint(shift)
	}
	return s.last.set(float64(value)), nil
}

// Last returns the cached roll, rolling first if there is none
func (s *BitwiseShift) Last() (float64, error) {
	if !s.last.rolled {
		return s.Roll()
	}
	return s.last.value, nil
}

// Copy returns an unrolled shift of the same shape
func (s *BitwiseShift) Copy() Rollable {
	return &BitwiseShift{
		value:  copyOperand(s.value),
		amount: copyOperand(s.amount),
	}
}

func (s *BitwiseShift) String() string {
	if amt, ok := constantValue(s.amount); ok && amt < 0 {
		return operandString(s.value) + " << " + formatNumber(-amt)
	}
	return operandString(s.value) + " >> " + operandString(s.amount)
}

// DebugString renders the shift in constructor form
func (s *BitwiseShift) DebugString() string {
	return "BitwiseShift(" + operandDebugString(s.value) + ", " + operandDebugString(s.amount) + ")"
}

// Hash returns the structural hash
func (s *BitwiseShift) Hash() uint64 {
	return hashKey(s.identityKey())
}

func (s *BitwiseShift) identityKey() string {
	return "BitwiseShift(" + operandIdentity(s.value) + ", " + operandIdentity(s.amount) + ")"
}

func (s *BitwiseShift) needsParens() bool {
	return true
}
