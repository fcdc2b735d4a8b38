package roll

import (
	"testing"

	"github.com/KirkDiggler/rollable/internal/dice/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DivModTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRoller *mocks.MockRoller
}

func (s *DivModTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoller = mocks.NewMockRoller(s.mockCtrl)
}

func TestDivModTestSuite(t *testing.T) {
	suite.Run(t, new(DivModTestSuite))
}

func (s *DivModTestSuite) mockDie(sides int) *Die {
	die, err := NewDieWithConfig(&DieConfig{
		Sides:  sides,
		Roller: s.mockRoller,
	})
	s.Require().NoError(err)
	return die
}

func (s *DivModTestSuite) TestZeroDenominatorRejected() {
	die, err := NewDie(6)
	s.Require().NoError(err)

	_, err = NewDivMod(die, 0)
	s.ErrorIs(err, ErrDivisionByZero)
}

func (s *DivModTestSuite) TestConstantDenominatorKeepsThePair() {
	die, err := NewDie(20)
	s.Require().NoError(err)

	dm, err := NewDivMod(die, 3)
	s.Require().NoError(err)

	// Unlike division, a constant denominator cannot fold away: the
	// remainder has no multiplier form.
	s.Equal("DivMod(Die(20), 3)", dm.DebugString())
	s.Equal("divmod(d20, 3)", dm.String())
}

func (s *DivModTestSuite) TestRollBoth() {
	dm, err := NewDivMod(s.mockDie(20), 3)
	s.Require().NoError(err)

	s.mockRoller.EXPECT().Roll(20).Return(7)

	q, r, err := dm.RollBoth()
	s.NoError(err)
	s.Equal(2.0, q)
	s.Equal(1.0, r)
}

func (s *DivModTestSuite) TestQuotientAndRemainderShareOneRoll() {
	dm, err := NewDivMod(s.mockDie(20), 4)
	s.Require().NoError(err)

	s.mockRoller.EXPECT().Roll(20).Return(14)

	q, err := dm.Last()
	s.NoError(err)
	s.Equal(3.0, q)

	// The remainder comes from the same draw, no second roll.
	r, err := dm.LastRemainder()
	s.NoError(err)
	s.Equal(2.0, r)
}

func (s *DivModTestSuite) TestRollOverwritesBothCaches() {
	dm, err := NewDivMod(s.mockDie(20), 4)
	s.Require().NoError(err)

	gomock.InOrder(
		s.mockRoller.EXPECT().Roll(20).Return(14),
		s.mockRoller.EXPECT().Roll(20).Return(9),
	)

	_, _, err = dm.RollBoth()
	s.NoError(err)

	q, r, err := dm.RollBoth()
	s.NoError(err)
	s.Equal(2.0, q)
	s.Equal(1.0, r)
}

func (s *DivModTestSuite) TestChainedDivModsCrossMultiply() {
	d20, err := NewDie(20)
	s.Require().NoError(err)
	d6, err := NewDie(6)
	s.Require().NoError(err)
	d4, err := NewDie(4)
	s.Require().NoError(err)

	inner, err := NewDivMod(d20, d6)
	s.Require().NoError(err)

	dm, err := NewDivMod(inner, d4)
	s.Require().NoError(err)

	s.Equal("DivMod(Die(20), Multiplier(Die(6), Die(4)))", dm.DebugString())
}

func (s *DivModTestSuite) TestCopyStartsUnrolled() {
	dm, err := NewDivMod(s.mockDie(20), 4)
	s.Require().NoError(err)

	gomock.InOrder(
		s.mockRoller.EXPECT().Roll(20).Return(14),
		s.mockRoller.EXPECT().Roll(20).Return(6),
	)

	_, err = dm.Roll()
	s.NoError(err)

	copied := dm.Copy()
	s.True(SameShape(dm, copied))

	v, err := copied.Last()
	s.NoError(err)
	s.Equal(1.0, v)
}
