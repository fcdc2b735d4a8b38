package roll

import "errors"

// Define errors
var (
	ErrNilConfig             = errors.New("config cannot be nil")
	ErrInvalidSides          = errors.New("a die must have at least two sides")
	ErrInvalidCount          = errors.New("a dice group must have at least one die")
	ErrNilDie                = errors.New("dice group die cannot be nil")
	ErrDivisionByZero        = errors.New("division by zero")
	ErrRuntimeDivisionByZero = errors.New("denominator rolled to zero")
)
