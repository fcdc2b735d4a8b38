// Package notation parses conventional dice notation like "3d6+2" into
// rollable expressions.
package notation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/KirkDiggler/rollable/internal/roll"
)

// ErrInvalidNotation indicates a string that is not dice notation
var ErrInvalidNotation = errors.New("invalid dice notation")

// pattern matches [count]d<sides>[+|-modifier], e.g. d6, 3d6, 3d6+2, 2d20-1
var pattern = regexp.MustCompile(`^(\d*)[dD](\d+)([+-]\d+)?$`)

// Parse converts dice notation into a rollable expression
func Parse(input string) (roll.Rollable, error) {
	match := pattern.FindStringSubmatch(input)
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, input)
	}

	count := 1
	if match[1] != "" {
		n, err := strconv.Atoi(match[1])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, input)
		}
		count = n
	}

	sides, err := strconv.Atoi(match[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, input)
	}
	die, err := roll.NewDie(sides)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidNotation, input, err)
	}

	expr, err := roll.NewDiceGroup(count, die)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidNotation, input, err)
	}

	if match[3] != "" {
		modifier, err := strconv.Atoi(match[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, input)
		}
		expr = roll.Add(expr, modifier)
	}

	return expr, nil
}
