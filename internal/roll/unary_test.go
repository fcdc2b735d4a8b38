package roll

import (
	"testing"

	"github.com/KirkDiggler/rollable/internal/dice/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type UnaryTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRoller *mocks.MockRoller
}

func (s *UnaryTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoller = mocks.NewMockRoller(s.mockCtrl)
}

func TestUnaryTestSuite(t *testing.T) {
	suite.Run(t, new(UnaryTestSuite))
}

func (s *UnaryTestSuite) die(sides int) *Die {
	die, err := NewDie(sides)
	s.Require().NoError(err)
	return die
}

// half yields d6 / 2, a node whose rolls land on half-integers.
func (s *UnaryTestSuite) half() Rollable {
	die, err := NewDieWithConfig(&DieConfig{
		Sides:  6,
		Roller: s.mockRoller,
	})
	s.Require().NoError(err)
	return Mul(die, 0.5)
}

func (s *UnaryTestSuite) TestSameKindWrappingIdempotent() {
	die := s.die(6)

	abs := Abs(Trunc(die))
	s.Same(abs, Abs(abs))

	floor := Floor(die)
	s.Same(floor, Floor(floor))
}

func (s *UnaryTestSuite) TestNestedRoundsKeepCoarserDigits() {
	r := Round(Round(s.die(6), 3), 1)

	s.Equal("Round(Die(6), ndigits=1)", r.DebugString())
}

func (s *UnaryTestSuite) TestAbsOfMultiplierStripsSign() {
	die := s.die(6)

	// abs(-d6) is just d6, no wrapper at all.
	s.Same(Rollable(die), Abs(Neg(die)))

	product := Abs(Mul(die, -2))
	mul, ok := product.(*Multiplier)
	s.Require().True(ok)
	s.Equal(2.0, mul.Scalar())
}

func (s *UnaryTestSuite) TestFloorRoll() {
	f := Floor(s.half())

	s.mockRoller.EXPECT().Roll(6).Return(3)

	v, err := f.Roll()
	s.NoError(err)
	s.Equal(1.0, v)
}

func (s *UnaryTestSuite) TestCeilRoll() {
	c := Ceil(s.half())

	s.mockRoller.EXPECT().Roll(6).Return(3)

	v, err := c.Roll()
	s.NoError(err)
	s.Equal(2.0, v)
}

func (s *UnaryTestSuite) TestTruncRoll() {
	t := Trunc(s.half())

	s.mockRoller.EXPECT().Roll(6).Return(5)

	v, err := t.Roll()
	s.NoError(err)
	s.Equal(2.0, v)
}

func (s *UnaryTestSuite) TestRoundRoll() {
	r := Round(s.half(), 0)

	s.mockRoller.EXPECT().Roll(6).Return(5)

	v, err := r.Roll()
	s.NoError(err)
	s.Equal(3.0, v)
}

func (s *UnaryTestSuite) TestAbsRoll() {
	die, err := NewDieWithConfig(&DieConfig{
		Sides:      6,
		Convention: func(v int) float64 { return -float64(v) },
		Roller:     s.mockRoller,
	})
	s.Require().NoError(err)

	a := Abs(die)

	s.mockRoller.EXPECT().Roll(6).Return(4)

	v, err := a.Roll()
	s.NoError(err)
	s.Equal(4.0, v)
}

func (s *UnaryTestSuite) TestRendering() {
	die := s.die(6)

	s.Equal("floor(d6)", Floor(die).String())
	s.Equal("round(d6, 2)", Round(die, 2).String())
	s.Equal("Ceil(Die(6))", Ceil(die).DebugString())
}

func (s *UnaryTestSuite) TestIdentityDistinguishesKinds() {
	die := s.die(6)

	s.False(SameShape(Floor(die), Ceil(die)))
	s.False(SameShape(Round(die, 1), Round(die, 2)))
	s.True(SameShape(Floor(die), Floor(s.die(6))))
}
