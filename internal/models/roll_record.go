package models

import (
	"time"
)

// RollRecord represents a single evaluation of an expression
type RollRecord struct {
	// ID is the unique identifier for the roll
	ID string

	// Expression is the canonical rendering of the rolled expression
	Expression string

	// Value is the result of the roll
	Value float64

	// Timestamp is when the roll was made
	Timestamp time.Time
}
