package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"shiftclock_backend/models"

	"github.com/google/uuid"
)

// MemoryStore is a process-local store with the same guarantees as
// PostgresStore. A single lock makes create-if-absent atomic.
type MemoryStore struct {
	mu        sync.Mutex
	records   map[recordKey]*models.AttendanceRecord
	roster    []models.RosterEntry
	employees map[int]string
	nextID    int
	now       func() time.Time
}

type recordKey struct {
	employeeID int
	date       string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:   map[recordKey]*models.AttendanceRecord{},
		employees: map[int]string{},
		now:       time.Now,
	}
}

// AddEmployee registers a display name for employeeID.
func (s *MemoryStore) AddEmployee(employeeID int, fullName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[employeeID] = fullName
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) CreateCheckIn(ctx context.Context, employeeID int, date, clock string) (models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := recordKey{employeeID: employeeID, date: date}
	if _, ok := s.records[key]; ok {
		return models.AttendanceRecord{}, ErrAlreadyCheckedIn
	}
	in := clock
	rec := &models.AttendanceRecord{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		Date:        date,
		CheckInTime: &in,
		CreatedAt:   s.now(),
	}
	s.records[key] = rec
	return s.copyLocked(rec), nil
}

func (s *MemoryStore) FindRecord(ctx context.Context, employeeID int, date string) (models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[recordKey{employeeID: employeeID, date: date}]
	if !ok {
		return models.AttendanceRecord{}, ErrNotFound
	}
	return s.copyLocked(rec), nil
}

func (s *MemoryStore) CloseShift(ctx context.Context, id uuid.UUID, clock string, totalHours float64) (models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.ID != id {
			continue
		}
		if rec.CheckOutTime != nil {
			return models.AttendanceRecord{}, ErrAlreadyCheckedOut
		}
		out, hours := clock, totalHours
		rec.CheckOutTime = &out
		rec.TotalHours = &hours
		return s.copyLocked(rec), nil
	}
	return models.AttendanceRecord{}, ErrNotFound
}

func (s *MemoryStore) ListRecords(ctx context.Context, filter models.RecordFilter) ([]models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := []models.AttendanceRecord{}
	for _, rec := range s.records {
		if filter.Date != "" && rec.Date != filter.Date {
			continue
		}
		if filter.EmployeeID != 0 && rec.EmployeeID != filter.EmployeeID {
			continue
		}
		records = append(records, s.copyLocked(rec))
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return deref(records[i].CheckInTime) > deref(records[j].CheckInTime)
	})
	if len(records) > 200 {
		records = records[:200]
	}
	return records, nil
}

func (s *MemoryStore) ListRoster(ctx context.Context, employeeID int, date string) ([]models.RosterEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var own, broadcast []models.RosterEntry
	for _, e := range s.roster {
		if e.Date != date {
			continue
		}
		switch {
		case e.EmployeeID == nil:
			broadcast = append(broadcast, e)
		case *e.EmployeeID == employeeID:
			own = append(own, e)
		}
	}
	return append(append([]models.RosterEntry{}, own...), broadcast...), nil
}

func (s *MemoryStore) CreateRosterEntry(ctx context.Context, entry models.RosterEntry) (models.RosterEntry, error) {
	if !entry.ShiftEnd.After(entry.ShiftStart) {
		return models.RosterEntry{}, ErrInvalidRosterEntry
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	entry.ID = s.nextID
	s.roster = append(s.roster, entry)
	return entry, nil
}

func (s *MemoryStore) copyLocked(rec *models.AttendanceRecord) models.AttendanceRecord {
	out := *rec
	out.EmployeeName = s.employees[rec.EmployeeID]
	if rec.CheckInTime != nil {
		v := *rec.CheckInTime
		out.CheckInTime = &v
	}
	if rec.CheckOutTime != nil {
		v := *rec.CheckOutTime
		out.CheckOutTime = &v
	}
	if rec.TotalHours != nil {
		v := *rec.TotalHours
		out.TotalHours = &v
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
