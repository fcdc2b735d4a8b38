package roll

import (
	"fmt"
	"reflect"

	"github.com/KirkDiggler/rollable/internal/dice"
)

// defaultRoller backs every die that is not given an explicit source.
var defaultRoller dice.Roller = dice.New(nil)

// DieConvention maps a raw uniform sample in [1, sides] to the value the die
// reports. Two dice are structurally equal only if they share the same
// convention function, compared by identity rather than behavior.
type DieConvention func(int) float64

// GroupConvention reduces the individual rolls of a dice group to a single
// value.
type GroupConvention func([]float64) float64

// StandardDie reports the raw sample unchanged.
func StandardDie(value int) float64 {
	return float64(value)
}

// StandardDice sums the individual rolls.
func StandardDice(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Die is a uniform integer generator over [1, sides].
type Die struct {
	sides  int
	conv   DieConvention
	roller dice.Roller
	last   lastValue
}

// DieConfig holds construction options for a die
type DieConfig struct {
	// Number of sides, at least 2
	Sides int

	// Optional convention applied to each raw roll, defaults to StandardDie
	Convention DieConvention

	// Optional randomness source, defaults to a shared time-seeded roller
	Roller dice.Roller
}

// NewDie creates a standard die with the given number of sides
func NewDie(sides int) (*Die, error) {
	return NewDieWithConfig(&DieConfig{Sides: sides})
}

// NewDieWithConfig creates a die from a full configuration
func NewDieWithConfig(cfg *DieConfig) (*Die, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Sides < 2 {
		return nil, ErrInvalidSides
	}

	conv := cfg.Convention
	if conv == nil {
		conv = StandardDie
	}
	roller := cfg.Roller
	if roller == nil {
		roller = defaultRoller
	}

	return &Die{
		sides:  cfg.Sides,
		conv:   conv,
		roller: roller,
	}, nil
}

// Sides returns the number of sides
func (d *Die) Sides() int {
	return d.sides
}

// Roll draws a fresh uniform sample and caches the result
func (d *Die) Roll() (float64, error) {
	return d.last.set(d.conv(d.roller.Roll(d.sides))), nil
}

// Last returns the cached roll, rolling first if there is none
func (d *Die) Last() (float64, error) {
	if !d.last.rolled {
		return d.Roll()
	}
	return d.last.value, nil
}

// Copy returns an unrolled die of the same shape
func (d *Die) Copy() Rollable {
	return &Die{
		sides:  d.sides,
		conv:   d.conv,
		roller: d.roller,
	}
}

func (d *Die) String() string {
	return fmt.Sprintf("d%d", d.sides)
}

// DebugString renders the die in constructor form
func (d *Die) DebugString() string {
	return fmt.Sprintf("Die(%d)", d.sides)
}

// Hash returns the structural hash
func (d *Die) Hash() uint64 {
	return hashKey(d.identityKey())
}

func (d *Die) identityKey() string {
	if isStandardDieConv(d.conv) {
		return fmt.Sprintf("Die(%d)", d.sides)
	}
	return fmt.Sprintf("Die(%d, conv=%#x)", d.sides, reflect.ValueOf(d.conv).Pointer())
}

func (d *Die) needsParens() bool {
	return false
}

func isStandardDieConv(conv DieConvention) bool {
	return reflect.ValueOf(conv).Pointer() == reflect.ValueOf(StandardDie).Pointer()
}

func isStandardGroupConv(conv GroupConvention) bool {
	return reflect.ValueOf(conv).Pointer() == reflect.ValueOf(StandardDice).Pointer()
}

// DiceGroup rolls count independent copies of a die and reduces them with a
// convention (sum by default). A group of one never exists; construction
// degenerates to a bare die copy.
type DiceGroup struct {
	group []Rollable
	die   Rollable
	conv  GroupConvention
	last  lastValue
}

// DiceGroupConfig holds construction options for a dice group
type DiceGroupConfig struct {
	// Number of dice, at least 1
	Count int

	// The die to repeat; a nested group is flattened rather than wrapped
	Die Rollable

	// Optional reduction over the individual rolls, defaults to StandardDice
	Convention GroupConvention
}

// NewDiceGroup creates a group of count copies of die, reduced by summing
func NewDiceGroup(count int, die Rollable) (Rollable, error) {
	return NewDiceGroupWithConfig(&DiceGroupConfig{Count: count, Die: die})
}

// NewDiceGroupWithConfig creates a dice group from a full configuration
func NewDiceGroupWithConfig(cfg *DiceGroupConfig) (Rollable, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Count < 1 {
		return nil, ErrInvalidCount
	}
	if cfg.Die == nil {
		return nil, ErrNilDie
	}

	count := cfg.Count
	die := cfg.Die
	if g, ok := die.(*DiceGroup); ok {
		count *= g.Count()
		die = g.die
	}

	if count == 1 {
		return die.Copy(), nil
	}

	conv := cfg.Convention
	if conv == nil {
		conv = StandardDice
	}

	return newDiceGroup(count, die, conv), nil
}

// newDiceGroup builds a group once count and die have been validated.
func newDiceGroup(count int, die Rollable, conv GroupConvention) *DiceGroup {
	group := make([]Rollable, count)
	for i := range group {
		group[i] = die.Copy()
	}
	return &DiceGroup{
		group: group,
		die:   die.Copy(),
		conv:  conv,
	}
}

// Count returns the number of dice in the group
func (g *DiceGroup) Count() int {
	return len(g.group)
}

// Die returns the repeated die's canonical copy
func (g *DiceGroup) Die() Rollable {
	return g.die
}

// Roll rolls every die in the group and reduces with the convention
func (g *DiceGroup) Roll() (float64, error) {
	values := make([]float64, len(g.group))
	for i, item := range g.group {
		v, err := item.Roll()
		if err != nil {
			return 0, err
		}
		values[i] = v
	}
	return g.last.set(g.conv(values)), nil
}

// Last returns the cached roll, rolling first if there is none
func (g *DiceGroup) Last() (float64, error) {
	if !g.last.rolled {
		return g.Roll()
	}
	return g.last.value, nil
}

// Copy returns an unrolled group of the same shape
func (g *DiceGroup) Copy() Rollable {
	return newDiceGroup(len(g.group), g.die, g.conv)
}

func (g *DiceGroup) String() string {
	return fmt.Sprintf("%d%s", len(g.group), g.die.String())
}

// DebugString renders the group in constructor form
func (g *DiceGroup) DebugString() string {
	return fmt.Sprintf("DiceGroup(%d, %s)", len(g.group), g.die.DebugString())
}

// Hash returns the structural hash
func (g *DiceGroup) Hash() uint64 {
	return hashKey(g.identityKey())
}

func (g *DiceGroup) identityKey() string {
	if isStandardGroupConv(g.conv) {
		return fmt.Sprintf("DiceGroup(%d, %s)", len(g.group), g.die.identityKey())
	}
	return fmt.Sprintf("DiceGroup(%d, %s, conv=%#x)", len(g.group), g.die.identityKey(), reflect.ValueOf(g.conv).Pointer())
}

func (g *DiceGroup) needsParens() bool {
	return false
}
