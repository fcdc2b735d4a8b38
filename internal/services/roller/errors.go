package roller

import "errors"

// Define errors
var (
	ErrNilConfig     = errors.New("config cannot be nil")
	ErrNilClock      = errors.New("clock cannot be nil")
	ErrNilUUID       = errors.New("UUID generator cannot be nil")
	ErrNilExpression = errors.New("expression cannot be nil")
	ErrInvalidTimes  = errors.New("times must be at least 1")
)
