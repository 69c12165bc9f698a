package probe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type ProbeTestSuite struct {
	suite.Suite
	assert *assert.Assertions
}

func (suite *ProbeTestSuite) SetupTest() {
	suite.assert = assert.New(suite.T())
}

// --- Test Cases ---

func (suite *ProbeTestSuite) TestMethodReturnsZero() {
	s := NewSimple()
	p := NewPolymorphic()

	suite.assert.Equal(0, s.Method(), "Simple.Method should return 0")
	suite.assert.Equal(0, p.Method(), "Polymorphic.Method should return 0")
}

func (suite *ProbeTestSuite) TestMethodIsIdempotent() {
	s := NewSimple()
	p := NewPolymorphic()

	for i := 0; i < 1000; i++ {
		suite.assert.Equal(0, s.Method())
		suite.assert.Equal(0, p.Method())
	}
	suite.assert.Equal(NewSimple(), s, "Calling Method should not change the value")
}

func (suite *ProbeTestSuite) TestMethodThrowAlwaysPanics() {
	var p Prober = NewSimple()
	suite.assert.PanicsWithError(ErrMethodFailed.Error(), func() { p.MethodThrow() })

	p = NewPolymorphic()
	for i := 0; i < 3; i++ {
		suite.assert.PanicsWithError(ErrMethodFailed.Error(), func() { p.MethodThrow() })
	}
}

func (suite *ProbeTestSuite) TestMethodErr() {
	for _, p := range []Prober{NewSimple(), NewPolymorphic(), &Polymorphic{}} {
		v, err := p.MethodErr()
		suite.assert.Equal(0, v)
		suite.assert.ErrorIs(err, ErrMethodFailed)
	}
}

func (suite *ProbeTestSuite) TestGuardSuppressesFailure() {
	s := NewSimple()
	p := NewPolymorphic()

	reached := 0

	err := Guard(s.MethodThrow)
	reached++
	suite.assert.ErrorIs(err, ErrMethodFailed)

	err = Guard(p.MethodThrow)
	reached++
	suite.assert.ErrorIs(err, ErrMethodFailed)

	suite.assert.Equal(2, reached, "Execution should continue after each guard")
}

func (suite *ProbeTestSuite) TestGuardWithoutPanic() {
	err := Guard(NewSimple().Method)
	suite.assert.NoError(err)
}

func (suite *ProbeTestSuite) TestGuardWrapsNonErrorPanic() {
	err := Guard(func() int { panic("boom") })
	suite.assert.Error(err)
	suite.assert.Contains(err.Error(), "boom")
	suite.assert.False(errors.Is(err, ErrMethodFailed))
}

func (suite *ProbeTestSuite) TestGuardErr() {
	suite.assert.ErrorIs(GuardErr(NewSimple().MethodErr), ErrMethodFailed)
	suite.assert.ErrorIs(GuardErr(NewPolymorphic().MethodErr), ErrMethodFailed)
	suite.assert.NoError(GuardErr(func() (int, error) { return 1, nil }))
}

// End to end: a stack Simple, a heap Polymorphic reached through its
// interface, then a guarded throw on each.
func (suite *ProbeTestSuite) TestScenario() {
	var s Simple
	suite.assert.Equal(0, s.Method())

	var p Prober = &Polymorphic{}
	suite.assert.Equal(0, p.Method(), "Dispatch through Prober should reach Polymorphic.Method")

	suite.assert.NotPanics(func() {
		_ = Guard(s.MethodThrow)
		_ = Guard(p.MethodThrow)
	})
}

// --- Test Runner ---

func TestProbeSuite(t *testing.T) {
	suite.Run(t, new(ProbeTestSuite))
}
