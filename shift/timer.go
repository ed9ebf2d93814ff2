package shift

import (
	"sync"
	"time"
)

// TickPeriod is how often an open shift's progress is recomputed.
const TickPeriod = time.Second

// Update is one display sample. Final marks the single terminal sample
// published when a shift is closed.
type Update struct {
	Elapsed string
	Percent float64
	Final   bool
}

// Ticker is the periodic source driving a Timer.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type stdTicker struct{ t *time.Ticker }

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

// NewStdTicker wraps time.NewTicker.
func NewStdTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

// Logger receives diagnostic lines. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

type timerConfig struct {
	target    time.Duration
	now       func() time.Time
	newTicker func(time.Duration) Ticker
	logger    Logger
	publish   func(Update)
}

// Timer recomputes elapsed time and progress for an open shift once per
// TickPeriod until stopped.
type Timer struct {
	start time.Time
	cfg   timerConfig

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// startTimer publishes one sample immediately and then one per tick.
func startTimer(start time.Time, cfg timerConfig) *Timer {
	t := &Timer{
		start: start,
		cfg:   cfg,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	t.tick()
	ticker := cfg.newTicker(TickPeriod)
	go t.run(ticker)
	return t
}

func (t *Timer) run(ticker Ticker) {
	defer close(t.done)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C():
			select {
			case <-t.stop:
				return
			default:
			}
			t.tick()
		}
	}
}

// tick computes and publishes one sample. It reports false when the sample
// was skipped because the clock read earlier than the shift start.
func (t *Timer) tick() bool {
	now := t.cfg.now()
	diff := now.Sub(t.start)
	if diff < 0 {
		t.cfg.logger.Printf("%v", &ClockAnomalyError{Start: t.start, Now: now})
		return false
	}
	t.cfg.publish(Update{
		Elapsed: FormatElapsed(diff),
		Percent: Progress(diff, t.cfg.target),
	})
	return true
}

// Stop ends the loop and waits for it to exit. No sample is published after
// Stop returns. Safe to call more than once.
func (t *Timer) Stop() {
	if t == nil {
		return
	}
	t.once.Do(func() { close(t.stop) })
	<-t.done
}

// Done is closed once the loop has exited.
func (t *Timer) Done() <-chan struct{} {
	return t.done
}
