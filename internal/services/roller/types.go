package roller

import (
	"github.com/KirkDiggler/rollable/internal/common/clock"
	"github.com/KirkDiggler/rollable/internal/common/uuid"
	"github.com/KirkDiggler/rollable/internal/models"
	"github.com/KirkDiggler/rollable/internal/roll"
)

// Config holds configuration for the roller service
type Config struct {
	// Clock provides timestamps for roll records
	Clock clock.Clock

	// UUID provides identifiers for roll records
	UUID uuid.UUID

	// MaxHistory bounds the in-memory roll log; older records are evicted.
	// Defaults to 100.
	MaxHistory int
}

// RollInput holds the expression to evaluate
type RollInput struct {
	// Expression is the rollable to evaluate
	Expression roll.Rollable

	// Times is how many evaluations to perform, default 1
	Times int
}

// RollOutput holds the recorded results
type RollOutput struct {
	Records []*models.RollRecord
}

// HistoryInput bounds a history query
type HistoryInput struct {
	// Limit caps the number of records returned; 0 means all retained
	Limit int
}

// HistoryOutput holds the retained records, newest first
type HistoryOutput struct {
	Records []*models.RollRecord
}
