package roller

import (
	"context"
	"testing"
	"time"

	clockmock "github.com/KirkDiggler/rollable/internal/common/clock/mocks"
	uuidmock "github.com/KirkDiggler/rollable/internal/common/uuid/mocks"
	"github.com/KirkDiggler/rollable/internal/dice/mocks"
	"github.com/KirkDiggler/rollable/internal/roll"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RollerServiceTestSuite struct {
	suite.Suite
	ctx context.Context

	mockCtrl   *gomock.Controller
	mockClock  *clockmock.MockClock
	mockUUID   *uuidmock.MockUUID
	mockRoller *mocks.MockRoller

	now time.Time
}

func (s *RollerServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockmock.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidmock.NewMockUUID(s.mockCtrl)
	s.mockRoller = mocks.NewMockRoller(s.mockCtrl)
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestRollerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RollerServiceTestSuite))
}

func (s *RollerServiceTestSuite) newService(maxHistory int) *service {
	svc, err := NewService(&Config{
		Clock:      s.mockClock,
		UUID:       s.mockUUID,
		MaxHistory: maxHistory,
	})
	s.Require().NoError(err)
	return svc
}

func (s *RollerServiceTestSuite) TestNewServiceValidation() {
	_, err := NewService(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = NewService(&Config{UUID: s.mockUUID})
	s.ErrorIs(err, ErrNilClock)

	_, err = NewService(&Config{Clock: s.mockClock})
	s.ErrorIs(err, ErrNilUUID)
}

func (s *RollerServiceTestSuite) TestRoll() {
	svc := s.newService(0)

	die, err := roll.NewDieWithConfig(&roll.DieConfig{
		Sides:  6,
		Roller: s.mockRoller,
	})
	s.Require().NoError(err)

	s.mockRoller.EXPECT().Roll(6).Return(4)
	s.mockUUID.EXPECT().NewUUID().Return("roll-1")
	s.mockClock.EXPECT().Now().Return(s.now)

	out, err := svc.Roll(s.ctx, &RollInput{Expression: die})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 1)

	record := out.Records[0]
	s.Equal("roll-1", record.ID)
	s.Equal("d6", record.Expression)
	s.Equal(4.0, record.Value)
	s.Equal(s.now, record.Timestamp)
}

func (s *RollerServiceTestSuite) TestRollMultipleTimes() {
	svc := s.newService(0)

	gomock.InOrder(
		s.mockUUID.EXPECT().NewUUID().Return("roll-1"),
		s.mockUUID.EXPECT().NewUUID().Return("roll-2"),
		s.mockUUID.EXPECT().NewUUID().Return("roll-3"),
	)
	s.mockClock.EXPECT().Now().Return(s.now).Times(3)

	out, err := svc.Roll(s.ctx, &RollInput{
		Expression: roll.Constant(7),
		Times:      3,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 3)
	for _, record := range out.Records {
		s.Equal(7.0, record.Value)
	}
	s.Equal("roll-3", out.Records[2].ID)
}

func (s *RollerServiceTestSuite) TestRollNilExpression() {
	svc := s.newService(0)

	_, err := svc.Roll(s.ctx, nil)
	s.ErrorIs(err, ErrNilExpression)

	_, err = svc.Roll(s.ctx, &RollInput{})
	s.ErrorIs(err, ErrNilExpression)
}

func (s *RollerServiceTestSuite) TestRollInvalidTimes() {
	svc := s.newService(0)

	_, err := svc.Roll(s.ctx, &RollInput{
		Expression: roll.Constant(1),
		Times:      -2,
	})
	s.ErrorIs(err, ErrInvalidTimes)
}

func (s *RollerServiceTestSuite) TestRollPropagatesEvaluationError() {
	svc := s.newService(0)

	zero, err := roll.NewDieWithConfig(&roll.DieConfig{
		Sides:      4,
		Convention: func(int) float64 { return 0 },
		Roller:     s.mockRoller,
	})
	s.Require().NoError(err)

	num, err := roll.NewDieWithConfig(&roll.DieConfig{
		Sides:  6,
		Roller: s.mockRoller,
	})
	s.Require().NoError(err)

	expr, err := roll.Div(num, zero)
	s.Require().NoError(err)

	gomock.InOrder(
		s.mockRoller.EXPECT().Roll(6).Return(3),
		s.mockRoller.EXPECT().Roll(4).Return(1),
	)

	_, err = svc.Roll(s.ctx, &RollInput{Expression: expr})
	s.ErrorIs(err, roll.ErrRuntimeDivisionByZero)
}

func (s *RollerServiceTestSuite) TestHistoryNewestFirst() {
	svc := s.newService(0)

	gomock.InOrder(
		s.mockUUID.EXPECT().NewUUID().Return("roll-1"),
		s.mockUUID.EXPECT().NewUUID().Return("roll-2"),
	)
	s.mockClock.EXPECT().Now().Return(s.now).Times(2)

	_, err := svc.Roll(s.ctx, &RollInput{Expression: roll.Constant(1), Times: 2})
	s.Require().NoError(err)

	out, err := svc.History(s.ctx, &HistoryInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 2)
	s.Equal("roll-2", out.Records[0].ID)
	s.Equal("roll-1", out.Records[1].ID)
}

func (s *RollerServiceTestSuite) TestHistoryLimit() {
	svc := s.newService(0)

	gomock.InOrder(
		s.mockUUID.EXPECT().NewUUID().Return("roll-1"),
		s.mockUUID.EXPECT().NewUUID().Return("roll-2"),
		s.mockUUID.EXPECT().NewUUID().Return("roll-3"),
	)
	s.mockClock.EXPECT().Now().Return(s.now).Times(3)

	_, err := svc.Roll(s.ctx, &RollInput{Expression: roll.Constant(1), Times: 3})
	s.Require().NoError(err)

	out, err := svc.History(s.ctx, &HistoryInput{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 2)
	s.Equal("roll-3", out.Records[0].ID)
	s.Equal("roll-2", out.Records[1].ID)
}

func (s *RollerServiceTestSuite) TestHistoryEvictsOldest() {
	svc := s.newService(2)

	gomock.InOrder(
		s.mockUUID.EXPECT().NewUUID().Return("roll-1"),
		s.mockUUID.EXPECT().NewUUID().Return("roll-2"),
		s.mockUUID.EXPECT().NewUUID().Return("roll-3"),
	)
	s.mockClock.EXPECT().Now().Return(s.now).Times(3)

	_, err := svc.Roll(s.ctx, &RollInput{Expression: roll.Constant(1), Times: 3})
	s.Require().NoError(err)

	out, err := svc.History(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(out.Records, 2)
	s.Equal("roll-3", out.Records[0].ID)
	s.Equal("roll-2", out.Records[1].ID)
}
