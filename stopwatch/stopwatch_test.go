package stopwatch

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type StopwatchTestSuite struct {
	suite.Suite
	assert *assert.Assertions
}

func (suite *StopwatchTestSuite) SetupTest() {
	suite.assert = assert.New(suite.T())
}

// --- Test Cases ---

func (suite *StopwatchTestSuite) TestNew() {
	sw := New(time.Second, func() {})

	suite.assert.NotNil(sw)
	suite.assert.Equal(time.Second, sw.budget)
	suite.assert.False(sw.Running(), "Should not run before Start")
	suite.assert.Zero(sw.Elapsed())
}

func (suite *StopwatchTestSuite) TestStartAccumulates() {
	sw := New(0, nil)
	sw.Start()
	suite.assert.True(sw.Running())

	time.Sleep(20 * time.Millisecond)
	suite.assert.GreaterOrEqual(sw.Elapsed(), 20*time.Millisecond)

	// Calling start again should have no effect
	first := sw.lastStartTime
	sw.Start()
	suite.assert.Equal(first, sw.lastStartTime)
}

func (suite *StopwatchTestSuite) TestPauseExcludesTime() {
	sw := New(0, nil)
	sw.Start()
	time.Sleep(10 * time.Millisecond)
	sw.Pause()
	suite.assert.False(sw.Running())

	paused := sw.Elapsed()
	time.Sleep(50 * time.Millisecond)
	suite.assert.Equal(paused, sw.Elapsed(), "Elapsed should not move while paused")

	// Calling pause again should do nothing
	sw.Pause()
	suite.assert.Equal(paused, sw.Elapsed())

	sw.Resume()
	suite.assert.True(sw.Running())
	time.Sleep(10 * time.Millisecond)
	suite.assert.Greater(sw.Elapsed(), paused)
	suite.assert.Less(sw.Elapsed(), paused+50*time.Millisecond, "Paused span should not be counted")
}

func (suite *StopwatchTestSuite) TestPauseUnstarted() {
	sw := New(0, nil)
	sw.Pause()
	suite.assert.False(sw.paused, "Paused flag should not be set if stopwatch wasn't running")

	sw.Resume()
	suite.assert.False(sw.Running(), "Resume should not start an unstarted stopwatch")
}

func (suite *StopwatchTestSuite) TestBudgetFires() {
	budget := 30 * time.Millisecond
	var fired atomic.Int32
	firedCh := make(chan struct{}, 1)
	sw := New(budget, func() {
		fired.Add(1)
		firedCh <- struct{}{}
	})
	sw.Start()

	select {
	case <-firedCh:
		suite.assert.Equal(int32(1), fired.Load())
	case <-time.After(budget * 10):
		suite.assert.Fail("Timeout waiting for budget callback")
	}

	time.Sleep(budget * 2)
	suite.assert.Equal(int32(1), fired.Load(), "Budget callback should fire exactly once")
}

func (suite *StopwatchTestSuite) TestBudgetHeldWhilePaused() {
	budget := 60 * time.Millisecond
	var fired atomic.Int32
	sw := New(budget, func() { fired.Add(1) })
	sw.Start()

	time.Sleep(budget / 4)
	sw.Pause()

	// Wait longer than the budget while paused - this time shouldn't count
	time.Sleep(budget * 2)
	suite.assert.Equal(int32(0), fired.Load(), "Budget should not fire while paused")

	sw.Resume()
	suite.waitForCounter(1, &fired, budget*10)
}

func (suite *StopwatchTestSuite) TestResetRestartsBudget() {
	budget := 60 * time.Millisecond
	var fired atomic.Int32
	sw := New(budget, func() { fired.Add(1) })
	sw.Start()
	time.Sleep(budget / 2)

	sw.Reset()
	suite.assert.True(sw.Running())
	suite.assert.Less(sw.Elapsed(), budget/2, "Reset should clear elapsed time")

	time.Sleep(budget / 2)
	suite.assert.Equal(int32(0), fired.Load(), "Budget should not fire before the full budget after reset")

	suite.waitForCounter(1, &fired, budget*10)
}

func (suite *StopwatchTestSuite) TestNoBudget() {
	sw := New(0, func() { suite.assert.Fail("Callback should not run without a budget") })
	sw.Start()
	time.Sleep(10 * time.Millisecond)
	sw.Pause()
}

// --- Helper Methods ---

// waitForCounter polls an atomic counter until it reaches the target value or times out.
func (suite *StopwatchTestSuite) waitForCounter(target int32, counter *atomic.Int32, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		if counter.Load() >= target {
			return
		}
		if time.Now().After(deadline) {
			suite.assert.Failf("Timeout", "Timed out waiting for counter. Expected: %d, Got: %d", target, counter.Load())
			return
		}
		<-ticker.C
	}
}

// --- Test Runner ---

func TestStopwatchSuite(t *testing.T) {
	suite.Run(t, new(StopwatchTestSuite))
}
