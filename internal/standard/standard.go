// Package standard exposes the fixed palette of named standard dice.
package standard

import (
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/rollable/internal/roll"
)

// ErrUnknownDie indicates a name outside the standard palette
var ErrUnknownDie = errors.New("unknown standard die")

// catalog maps the conventional names to side counts
var catalog = map[string]int{
	"d2":   2,
	"d3":   3,
	"d4":   4,
	"d6":   6,
	"d8":   8,
	"d10":  10,
	"d12":  12,
	"d20":  20,
	"d100": 100,
}

// Named returns a fresh standard die for a conventional name like "d20".
// Each call returns an independent, unrolled die.
func Named(name string) (*roll.Die, error) {
	sides, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDie, name)
	}
	return roll.NewDie(sides)
}

// Names returns the palette names ordered by side count
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return catalog[names[i]] < catalog[names[j]]
	})
	return names
}
