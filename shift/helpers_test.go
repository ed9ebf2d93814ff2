package shift

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"shiftclock_backend/models"

	"github.com/google/uuid"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type fakeTicker struct {
	ch chan time.Time

	mu      sync.Mutex
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeTicker) Stopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

// fire blocks until the timer loop has received the tick.
func (f *fakeTicker) fire(t *testing.T) {
	t.Helper()
	select {
	case f.ch <- time.Time{}:
	case <-time.After(2 * time.Second):
		t.Fatal("timer loop did not receive tick")
	}
}

type tickerFactory struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (f *tickerFactory) New(time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	tk := &fakeTicker{ch: make(chan time.Time)}
	f.tickers = append(f.tickers, tk)
	return tk
}

func (f *tickerFactory) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

func (f *tickerFactory) Last() *fakeTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.tickers) == 0 {
		return nil
	}
	return f.tickers[len(f.tickers)-1]
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

func collect(c *Controller) (<-chan Update, func()) {
	ch := make(chan Update, 64)
	cancel := c.Subscribe(func(u Update) { ch <- u })
	return ch, cancel
}

func nextUpdate(t *testing.T, ch <-chan Update) Update {
	t.Helper()
	select {
	case u := <-ch:
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("no update published")
		return Update{}
	}
}

func noUpdate(t *testing.T, ch <-chan Update) {
	t.Helper()
	select {
	case u := <-ch:
		t.Fatalf("unexpected update %+v", u)
	case <-time.After(50 * time.Millisecond):
	}
}

// fakeStore enforces one record per employee per day under a single lock,
// the same guarantee the database gives with its unique key.
type fakeStore struct {
	clock      *fakeClock
	employeeID int

	mu         sync.Mutex
	records    map[string]*models.AttendanceRecord
	roster     []models.RosterEntry
	checkIns   int
	checkOuts  int
	checkInErr error
	recordsErr error
	rosterErr  error
	// afterCreate runs after a check-in row is created and before the
	// response is returned, without the store lock held.
	afterCreate func()
}

func newFakeStore(clock *fakeClock, employeeID int) *fakeStore {
	return &fakeStore{
		clock:      clock,
		employeeID: employeeID,
		records:    map[string]*models.AttendanceRecord{},
	}
}

func recordKey(employeeID int, date string) string {
	return fmt.Sprintf("%d|%s", employeeID, date)
}

func (s *fakeStore) put(rec models.AttendanceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[recordKey(rec.EmployeeID, rec.Date)] = &rec
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *fakeStore) CheckIn(ctx context.Context) (models.AttendanceRecord, error) {
	s.mu.Lock()
	s.checkIns++
	if s.checkInErr != nil {
		err := s.checkInErr
		s.mu.Unlock()
		return models.AttendanceRecord{}, err
	}
	now := s.clock.Now()
	date := now.Format(models.DateLayout)
	key := recordKey(s.employeeID, date)
	if _, ok := s.records[key]; ok {
		s.mu.Unlock()
		return models.AttendanceRecord{}, &ConflictError{Op: "begin", Reason: "already checked in"}
	}
	in := now.Format(models.ClockLayout)
	rec := &models.AttendanceRecord{ID: uuid.New(), EmployeeID: s.employeeID, Date: date, CheckInTime: &in}
	s.records[key] = rec
	out := *rec
	hook := s.afterCreate
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (s *fakeStore) CheckOut(ctx context.Context) (models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkOuts++
	now := s.clock.Now()
	date := now.Format(models.DateLayout)
	rec, ok := s.records[recordKey(s.employeeID, date)]
	if !ok || rec.CheckInTime == nil {
		return models.AttendanceRecord{}, &InvalidStateError{Op: "end", State: NotStarted}
	}
	if rec.CheckOutTime != nil {
		return models.AttendanceRecord{}, &ConflictError{Op: "end", Reason: "already checked out"}
	}
	out := now.Format(models.ClockLayout)
	hours, err := TotalHours(date, *rec.CheckInTime, out, time.UTC)
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	rec.CheckOutTime = &out
	rec.TotalHours = &hours
	return *rec, nil
}

func (s *fakeStore) Records(ctx context.Context, filter models.RecordFilter) ([]models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recordsErr != nil {
		return nil, s.recordsErr
	}
	var out []models.AttendanceRecord
	for _, r := range s.records {
		if filter.Date != "" && r.Date != filter.Date {
			continue
		}
		if filter.EmployeeID != 0 && r.EmployeeID != filter.EmployeeID {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (s *fakeStore) Roster(ctx context.Context, date string) ([]models.RosterEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rosterErr != nil {
		return nil, s.rosterErr
	}
	return s.roster, nil
}
