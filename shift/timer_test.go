package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shiftStart = time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

func testTimer(clock *fakeClock, logger Logger, out *[]Update) *Timer {
	return &Timer{
		start: shiftStart,
		cfg: timerConfig{
			target:  ShiftTarget,
			now:     clock.Now,
			logger:  logger,
			publish: func(u Update) { *out = append(*out, u) },
		},
	}
}

func TestTimerTickFiveSecondsIn(t *testing.T) {
	clock := newFakeClock(shiftStart.Add(5 * time.Second))
	var got []Update
	tm := testTimer(clock, nopLogger{}, &got)

	require.True(t, tm.tick())
	require.Len(t, got, 1)
	assert.Equal(t, "00:00:05", got[0].Elapsed)
	assert.InDelta(t, 0.013888, got[0].Percent, 1e-6)
	assert.False(t, got[0].Final)
}

func TestTimerTickFullTargetIsExactlyHundred(t *testing.T) {
	clock := newFakeClock(time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC))
	var got []Update
	tm := testTimer(clock, nopLogger{}, &got)

	require.True(t, tm.tick())
	assert.Equal(t, "10:00:00", got[0].Elapsed)
	assert.Equal(t, 100.0, got[0].Percent)
}

func TestTimerTickClampsPastTarget(t *testing.T) {
	clock := newFakeClock(shiftStart.Add(40000 * time.Second))
	var got []Update
	tm := testTimer(clock, nopLogger{}, &got)

	require.True(t, tm.tick())
	assert.Equal(t, "11:06:40", got[0].Elapsed)
	assert.Equal(t, 100.0, got[0].Percent)
}

func TestTimerTickDoesNotWrapPastMidnight(t *testing.T) {
	clock := newFakeClock(shiftStart.Add(26*time.Hour + 3*time.Second))
	var got []Update
	tm := testTimer(clock, nopLogger{}, &got)

	require.True(t, tm.tick())
	assert.Equal(t, "26:00:03", got[0].Elapsed)
}

func TestTimerTickSkipsNegativeElapsed(t *testing.T) {
	clock := newFakeClock(shiftStart.Add(-3 * time.Second))
	logger := &recordingLogger{}
	var got []Update
	tm := testTimer(clock, logger, &got)

	assert.False(t, tm.tick())
	assert.Empty(t, got)
	require.Len(t, logger.Lines(), 1)
	assert.Contains(t, logger.Lines()[0], "clock anomaly")

	clock.Set(shiftStart.Add(time.Second))
	assert.True(t, tm.tick())
	require.Len(t, got, 1)
	assert.Equal(t, "00:00:01", got[0].Elapsed)
}

func TestTimerLoopPublishesOnStartAndEachTick(t *testing.T) {
	clock := newFakeClock(shiftStart)
	factory := &tickerFactory{}
	ch := make(chan Update, 8)
	tm := startTimer(shiftStart, timerConfig{
		target:    ShiftTarget,
		now:       clock.Now,
		newTicker: factory.New,
		logger:    nopLogger{},
		publish:   func(u Update) { ch <- u },
	})
	defer tm.Stop()

	assert.Equal(t, "00:00:00", nextUpdate(t, ch).Elapsed)

	clock.Set(shiftStart.Add(time.Second))
	factory.Last().fire(t)
	assert.Equal(t, "00:00:01", nextUpdate(t, ch).Elapsed)

	clock.Set(shiftStart.Add(2 * time.Second))
	factory.Last().fire(t)
	assert.Equal(t, "00:00:02", nextUpdate(t, ch).Elapsed)
}

func TestTimerLoopSurvivesClockAnomaly(t *testing.T) {
	clock := newFakeClock(shiftStart.Add(-time.Minute))
	factory := &tickerFactory{}
	ch := make(chan Update, 8)
	tm := startTimer(shiftStart, timerConfig{
		target:    ShiftTarget,
		now:       clock.Now,
		newTicker: factory.New,
		logger:    nopLogger{},
		publish:   func(u Update) { ch <- u },
	})
	defer tm.Stop()

	factory.Last().fire(t)
	noUpdate(t, ch)

	clock.Set(shiftStart.Add(time.Minute))
	factory.Last().fire(t)
	assert.Equal(t, "00:01:00", nextUpdate(t, ch).Elapsed)
}

func TestTimerStopIsIdempotent(t *testing.T) {
	clock := newFakeClock(shiftStart)
	factory := &tickerFactory{}
	ch := make(chan Update, 8)
	tm := startTimer(shiftStart, timerConfig{
		target:    ShiftTarget,
		now:       clock.Now,
		newTicker: factory.New,
		logger:    nopLogger{},
		publish:   func(u Update) { ch <- u },
	})
	nextUpdate(t, ch)

	tm.Stop()
	tm.Stop()

	select {
	case <-tm.Done():
	default:
		t.Fatal("timer loop still running after Stop")
	}
	assert.True(t, factory.Last().Stopped())
	noUpdate(t, ch)
}

func TestNilTimerStop(t *testing.T) {
	var tm *Timer
	assert.NotPanics(t, tm.Stop)
}
