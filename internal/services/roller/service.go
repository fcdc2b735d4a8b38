package roller

import (
	"context"

	"github.com/KirkDiggler/rollable/internal/models"
)

const defaultMaxHistory = 100

// service implements the Service interface
type service struct {
	config  *Config
	history []*models.RollRecord
}

// NewService creates a new roller service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUID == nil {
		return nil, ErrNilUUID
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = defaultMaxHistory
	}

	return &service{
		config: cfg,
	}, nil
}

// Roll evaluates an expression one or more times and records the results
func (s *service) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil || input.Expression == nil {
		return nil, ErrNilExpression
	}

	times := input.Times
	if times == 0 {
		times = 1
	}
	if times < 1 {
		return nil, ErrInvalidTimes
	}

	records := make([]*models.RollRecord, 0, times)
	for i := 0; i < times; i++ {
		value, err := input.Expression.Roll()
		if err != nil {
			return nil, err
		}

		record := &models.RollRecord{
			ID:         s.config.UUID.NewUUID(),
			Expression: input.Expression.String(),
			Value:      value,
			Timestamp:  s.config.Clock.Now(),
		}
		records = append(records, record)
		s.remember(record)
	}

	return &RollOutput{
		Records: records,
	}, nil
}

// History returns the most recent roll records, newest first
func (s *service) History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
	limit := len(s.history)
	if input != nil && input.Limit > 0 && input.Limit < limit {
		limit = input.Limit
	}

	records := make([]*models.RollRecord, 0, limit)
	for i := len(s.history) - 1; i >= 0 && len(records) < limit; i-- {
		records = append(records, s.history[i])
	}

	return &HistoryOutput{
		Records: records,
	}, nil
}

// remember appends a record to the log, evicting the oldest past MaxHistory
func (s *service) remember(record *models.RollRecord) {
	s.history = append(s.history, record)
	if len(s.history) > s.config.MaxHistory {
		s.history = s.history[len(s.history)-s.config.MaxHistory:]
	}
}
