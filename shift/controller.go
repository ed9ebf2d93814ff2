package shift

import (
	"context"
	"errors"
	"sync"
	"time"

	"shiftclock_backend/models"
)

// Store is the attendance system of record as seen by a controller. The
// server assigns every timestamp; CheckIn and CheckOut carry no client time.
type Store interface {
	CheckIn(ctx context.Context) (models.AttendanceRecord, error)
	CheckOut(ctx context.Context) (models.AttendanceRecord, error)
	Records(ctx context.Context, filter models.RecordFilter) ([]models.AttendanceRecord, error)
	Roster(ctx context.Context, date string) ([]models.RosterEntry, error)
}

// Snapshot is a point-in-time copy of a controller's view of today.
type Snapshot struct {
	State   State
	Date    string
	Record  *models.AttendanceRecord
	Roster  models.RosterEntry
	Elapsed string
	Percent float64
}

// Option customizes controller construction.
type Option func(*Controller)

// WithClock overrides the wall clock used for "today" and for ticks.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocation sets the zone record dates and times are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithLogger overrides the default no-op logger.
func WithLogger(l Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTicker overrides the periodic source used by the progress timer.
func WithTicker(newTicker func(time.Duration) Ticker) Option {
	return func(c *Controller) {
		if newTicker != nil {
			c.newTicker = newTicker
		}
	}
}

// WithTransitionHook registers fn to run after every applied begin or end,
// e.g. to refresh a list of today's records.
func WithTransitionHook(fn func(Snapshot)) Option {
	return func(c *Controller) {
		c.onTransition = fn
	}
}

// Controller owns today's attendance record for one employee and the single
// progress timer that runs while that record is open.
//
// Lock order is timerMu, then mu. subMu is only held while touching
// subscribers and the last published sample, so display callbacks never
// contend with a timer being stopped.
type Controller struct {
	store        Store
	employeeID   int
	now          func() time.Time
	loc          *time.Location
	target       time.Duration
	logger       Logger
	newTicker    func(time.Duration) Ticker
	onTransition func(Snapshot)

	timerMu sync.Mutex
	timer   *Timer

	mu     sync.Mutex
	date   string
	record *models.AttendanceRecord
	roster models.RosterEntry
	state  State
	closed bool

	subMu   sync.Mutex
	subs    []subscriber
	nextSub int
	last    Update
}

type subscriber struct {
	id int
	fn func(Update)
}

// NewController prepares a controller for employeeID. Call Activate to load
// today's record.
func NewController(store Store, employeeID int, opts ...Option) *Controller {
	c := &Controller{
		store:      store,
		employeeID: employeeID,
		now:        time.Now,
		loc:        time.Local,
		target:     ShiftTarget,
		logger:     nopLogger{},
		newTicker:  NewStdTicker,
		last:       Update{Elapsed: FormatElapsed(0)},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Today returns the calendar date the controller currently considers today.
func (c *Controller) Today() string {
	return c.now().In(c.loc).Format(models.DateLayout)
}

// Activate loads today's record and roster. An open record resumes the
// timer from its stored check-in time. Calling Activate again re-syncs
// without starting a second timer.
func (c *Controller) Activate(ctx context.Context) (Snapshot, error) {
	if c.isClosed() {
		return Snapshot{}, ErrClosed
	}
	date := c.Today()
	rec, err := c.loadRecord(ctx, date)
	if err != nil {
		return c.Snapshot(), err
	}

	roster := c.resolveRoster(ctx, date)
	c.mu.Lock()
	c.roster = roster
	c.mu.Unlock()

	c.commit(date, rec, true)
	return c.Snapshot(), nil
}

// LoadToday fetches today's record, if any, without changing controller
// state.
func (c *Controller) LoadToday(ctx context.Context) (*models.AttendanceRecord, error) {
	if c.isClosed() {
		return nil, ErrClosed
	}
	return c.loadRecord(ctx, c.Today())
}

// BeginShift asks the store to open today's record. Only valid from
// NotStarted. A conflict means the record already exists; the controller
// re-syncs from the store instead of failing.
func (c *Controller) BeginShift(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Snapshot{}, ErrClosed
	}
	if c.state != NotStarted {
		st := c.state
		c.mu.Unlock()
		return c.Snapshot(), &InvalidStateError{Op: "begin", State: st}
	}
	c.mu.Unlock()

	rec, err := c.store.CheckIn(ctx)
	if err != nil {
		if IsConflict(err) {
			c.logger.Printf("shift: begin for employee %d conflicted, re-syncing: %v", c.employeeID, err)
			return c.resync(ctx, "begin", Active)
		}
		return c.Snapshot(), classify("begin", err)
	}
	return c.settle("begin", rec, Active)
}

// EndShift asks the store to close today's record. Only valid from Active.
func (c *Controller) EndShift(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Snapshot{}, ErrClosed
	}
	if c.state != Active {
		st := c.state
		c.mu.Unlock()
		return c.Snapshot(), &InvalidStateError{Op: "end", State: st}
	}
	c.mu.Unlock()

	rec, err := c.store.CheckOut(ctx)
	if err != nil {
		if IsConflict(err) {
			c.logger.Printf("shift: end for employee %d conflicted, re-syncing: %v", c.employeeID, err)
			return c.resync(ctx, "end", Completed)
		}
		return c.Snapshot(), classify("end", err)
	}
	return c.settle("end", rec, Completed)
}

// Subscribe registers fn for display samples and returns a function that
// removes it. fn runs on the timer goroutine and must not block.
func (c *Controller) Subscribe(fn func(Update)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	c.nextSub++
	id := c.nextSub
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	snap := Snapshot{
		State:  c.state,
		Date:   c.date,
		Roster: c.roster,
	}
	if c.record != nil {
		rec := *c.record
		snap.Record = &rec
	}
	c.mu.Unlock()

	c.subMu.Lock()
	snap.Elapsed = c.last.Elapsed
	snap.Percent = c.last.Percent
	c.subMu.Unlock()
	return snap
}

// Close tears the controller down and stops its timer. It is safe to call
// more than once.
func (c *Controller) Close() {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.stopTimer()
}

// settle applies a transition response and reports the outcome for op. A
// response that arrives after the state has moved on is discarded.
func (c *Controller) settle(op string, rec models.AttendanceRecord, want State) (Snapshot, error) {
	applied := c.commit(rec.Date, &rec, false)
	snap := c.Snapshot()
	if applied {
		if c.onTransition != nil {
			c.onTransition(snap)
		}
		return snap, nil
	}
	if snap.State == want {
		return snap, nil
	}
	c.logger.Printf("shift: discarded stale %s response for employee %d (state %s)", op, c.employeeID, snap.State)
	return snap, &InvalidStateError{Op: op, State: snap.State, Reason: "state changed while the request was in flight"}
}

func (c *Controller) resync(ctx context.Context, op string, want State) (Snapshot, error) {
	date := c.Today()
	rec, err := c.loadRecord(ctx, date)
	if err != nil {
		return c.Snapshot(), err
	}
	if c.commit(date, rec, false) && c.onTransition != nil {
		c.onTransition(c.Snapshot())
	}
	snap := c.Snapshot()
	if snap.State < want {
		return snap, &ConflictError{Op: op, Reason: "store rejected the request but today's record is " + snap.State.String()}
	}
	return snap, nil
}

// commit installs rec as today's record. Within a day states only move
// forward: a record whose state is behind the current one is ignored, and an
// equal state only refreshes the stored record except on the very first
// activation. Returns whether a transition was applied.
func (c *Controller) commit(date string, rec *models.AttendanceRecord, activate bool) bool {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	next := StateOf(rec)
	first := c.date == ""
	sameDay := first || c.date == date
	if sameDay && next < c.state {
		c.mu.Unlock()
		return false
	}
	if sameDay && next == c.state && !(activate && first) {
		if rec != nil {
			c.record = rec
		}
		c.date = date
		c.mu.Unlock()
		return false
	}
	c.date = date
	c.record = rec
	c.state = next
	c.mu.Unlock()

	c.stopTimer()
	switch next {
	case Active:
		start, err := Anchor(rec.Date, *rec.CheckInTime, c.loc)
		if err != nil {
			c.logger.Printf("shift: cannot start timer: %v", err)
			return true
		}
		c.timer = startTimer(start, timerConfig{
			target:    c.target,
			now:       c.now,
			newTicker: c.newTicker,
			logger:    c.logger,
			publish:   c.publish,
		})
	case Completed:
		c.publish(c.finalUpdate(rec))
	case NotStarted:
		c.setLast(Update{Elapsed: FormatElapsed(0)})
	}
	return true
}

func (c *Controller) finalUpdate(rec *models.AttendanceRecord) Update {
	hours := 0.0
	if rec.TotalHours != nil {
		hours = *rec.TotalHours
	} else if rec.CheckInTime != nil && rec.CheckOutTime != nil {
		if h, err := TotalHours(rec.Date, *rec.CheckInTime, *rec.CheckOutTime, c.loc); err == nil {
			hours = h
		}
	}
	return Update{
		Elapsed: FormatHours(hours),
		Percent: CompletedProgress(hours, c.target),
		Final:   true,
	}
}

// stopTimer must be called with timerMu held.
func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) publish(u Update) {
	c.subMu.Lock()
	c.last = u
	subs := make([]subscriber, len(c.subs))
	copy(subs, c.subs)
	c.subMu.Unlock()
	for _, s := range subs {
		s.fn(u)
	}
}

func (c *Controller) setLast(u Update) {
	c.subMu.Lock()
	c.last = u
	c.subMu.Unlock()
}

func (c *Controller) loadRecord(ctx context.Context, date string) (*models.AttendanceRecord, error) {
	records, err := c.store.Records(ctx, models.RecordFilter{Date: date, EmployeeID: c.employeeID})
	if err != nil {
		return nil, classify("load", err)
	}
	for i := range records {
		if records[i].EmployeeID == c.employeeID && records[i].Date == date {
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (c *Controller) resolveRoster(ctx context.Context, date string) models.RosterEntry {
	entries, err := c.store.Roster(ctx, date)
	if err != nil {
		c.logger.Printf("shift: roster unavailable, using standard shift: %v", err)
		entries = nil
	}
	return ResolveRoster(c.employeeID, date, entries, c.loc)
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// classify leaves typed engine errors alone and treats anything else as a
// transient store failure.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsInvalidState(err) || IsConflict(err) || IsTransient(err) || errors.Is(err, ErrClosed) {
		return err
	}
	return &TransientIOError{Op: op, Err: err}
}
