package dice

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/rollable/internal/dice Roller

// Roller provides the raw randomness behind every die
type Roller interface {
	// Roll returns a uniform random integer in [1, sides]
	Roll(sides int) int
}

// RandRoller implements Roller using math/rand
type RandRoller struct {
	random *rand.Rand
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new dice roller
func New(cfg *Config) *RandRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &RandRoller{
		random: random,
	}
}

// Roll generates a random dice roll with the specified number of sides
func (r *RandRoller) Roll(sides int) int {
	if sides < 1 {
		sides = 6 // Default to 6-sided die
	}
	return r.random.Intn(sides) + 1
}
