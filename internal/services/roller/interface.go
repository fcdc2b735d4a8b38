package roller

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/rollable/internal/services/roller Service

// Service defines the interface for expression rolling operations
type Service interface {
	// Roll evaluates an expression one or more times and records the results
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)

	// History returns the most recent roll records, newest first
	History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error)
}
