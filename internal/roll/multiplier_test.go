package roll

import (
	"testing"

	"github.com/KirkDiggler/rollable/internal/dice/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MultiplierTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRoller *mocks.MockRoller
}

func (s *MultiplierTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoller = mocks.NewMockRoller(s.mockCtrl)
}

func TestMultiplierTestSuite(t *testing.T) {
	suite.Run(t, new(MultiplierTestSuite))
}

func (s *MultiplierTestSuite) die(sides int) *Die {
	die, err := NewDie(sides)
	s.Require().NoError(err)
	return die
}

func (s *MultiplierTestSuite) TestUnitScalarIsIdentity() {
	die := s.die(6)

	s.Same(Rollable(die), Mul(die, 1))
}

func (s *MultiplierTestSuite) TestZeroScalarAnnihilates() {
	product := Mul(s.die(6), 0)

	v, ok := IsConstant(product)
	s.True(ok)
	s.Equal(0.0, v)
}

func (s *MultiplierTestSuite) TestScalarsFold() {
	product := Mul(s.die(6), 2, 3)

	s.Equal("Multiplier(Die(6), 6)", product.DebugString())
	s.Equal("d6 * 6", product.String())
}

func (s *MultiplierTestSuite) TestNestedMultipliersFlatten() {
	product := Mul(Mul(s.die(6), 2), Mul(s.die(4), 3))

	mul, ok := product.(*Multiplier)
	s.Require().True(ok)
	s.Len(mul.Terms(), 2)
	s.Equal(6.0, mul.Scalar())
	s.Equal("Multiplier(Die(6), Die(4), 6)", product.DebugString())
}

func (s *MultiplierTestSuite) TestPureNumbersCollapse() {
	product := Mul(4, 2.5)

	v, ok := IsConstant(product)
	s.True(ok)
	s.Equal(10.0, v)
}

func (s *MultiplierTestSuite) TestNegRendering() {
	neg := Neg(s.die(6))

	s.Equal("-d6", neg.String())
	s.Equal("Multiplier(Die(6), -1)", neg.DebugString())
}

func (s *MultiplierTestSuite) TestRoll() {
	die, err := NewDieWithConfig(&DieConfig{
		Sides:  6,
		Roller: s.mockRoller,
	})
	s.Require().NoError(err)

	product := Mul(die, 3)

	s.mockRoller.EXPECT().Roll(6).Return(5)

	v, err := product.Roll()
	s.NoError(err)
	s.Equal(15.0, v)
}

func (s *MultiplierTestSuite) TestIdentityStableAcrossReconstruction() {
	a := Mul(s.die(6), 2, s.die(4))
	b := Mul(2, s.die(6), s.die(4))

	s.True(SameShape(a, b))
	s.Equal(a.Hash(), b.Hash())
}
