package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shiftclock_backend/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrAlreadyCheckedOut  = errors.New("already checked out today")
	ErrInvalidRosterEntry = errors.New("invalid roster entry")
)

// uniqueViolation is the postgres SQLSTATE for a unique key conflict.
const uniqueViolation = "23505"

const recordColumns = `a.id, a.employee_id, COALESCE(e.full_name, ''), to_char(a.work_date, 'YYYY-MM-DD'),
       to_char(a.check_in_time, 'HH24:MI:SS'), to_char(a.check_out_time, 'HH24:MI:SS'),
       a.total_hours, a.created_at`

// PostgresStore keeps attendance records and roster entries in postgres.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateCheckIn opens the record for (employeeID, date). The insert is a
// single create-if-absent statement, so two concurrent calls for the same
// day yield exactly one row; the loser gets ErrAlreadyCheckedIn.
func (s *PostgresStore) CreateCheckIn(ctx context.Context, employeeID int, date, clock string) (models.AttendanceRecord, error) {
	row := s.db.QueryRowContext(ctx, `
        WITH a AS (
            INSERT INTO attendance_records (id, employee_id, work_date, check_in_time)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (employee_id, work_date) DO NOTHING
            RETURNING *
        )
        SELECT `+recordColumns+`
        FROM a
        LEFT JOIN employees e ON e.id = a.employee_id
    `, uuid.New(), employeeID, date, clock)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AttendanceRecord{}, ErrAlreadyCheckedIn
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return models.AttendanceRecord{}, ErrAlreadyCheckedIn
	}
	if err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("error creating check-in: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) FindRecord(ctx context.Context, employeeID int, date string) (models.AttendanceRecord, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT `+recordColumns+`
        FROM attendance_records a
        LEFT JOIN employees e ON e.id = a.employee_id
        WHERE a.employee_id = $1 AND a.work_date = $2
    `, employeeID, date)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AttendanceRecord{}, ErrNotFound
	}
	if err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("error fetching record: %w", err)
	}
	return rec, nil
}

// CloseShift sets the check-out of an open record. Only a record with no
// check-out is updated, so a closed record is never reopened or rewritten.
func (s *PostgresStore) CloseShift(ctx context.Context, id uuid.UUID, clock string, totalHours float64) (models.AttendanceRecord, error) {
	row := s.db.QueryRowContext(ctx, `
        WITH a AS (
            UPDATE attendance_records
            SET check_out_time = $2, total_hours = $3
            WHERE id = $1 AND check_out_time IS NULL
            RETURNING *
        )
        SELECT `+recordColumns+`
        FROM a
        LEFT JOIN employees e ON e.id = a.employee_id
    `, id, clock, totalHours)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AttendanceRecord{}, ErrAlreadyCheckedOut
	}
	if err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("error closing shift: %w", err)
	}
	return rec, nil
}

// ListRecords returns records matching filter, newest first.
func (s *PostgresStore) ListRecords(ctx context.Context, filter models.RecordFilter) ([]models.AttendanceRecord, error) {
	query := `
        SELECT ` + recordColumns + `
        FROM attendance_records a
        LEFT JOIN employees e ON e.id = a.employee_id
    `
	var where []string
	params := []interface{}{}
	if filter.Date != "" {
		params = append(params, filter.Date)
		where = append(where, fmt.Sprintf("a.work_date = $%d", len(params)))
	}
	if filter.EmployeeID != 0 {
		params = append(params, filter.EmployeeID)
		where = append(where, fmt.Sprintf("a.employee_id = $%d", len(params)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY a.work_date DESC, a.check_in_time DESC LIMIT 200"

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}
	defer rows.Close()

	records := []models.AttendanceRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (models.AttendanceRecord, error) {
	var (
		rec       models.AttendanceRecord
		checkIn   sql.NullString
		checkOut  sql.NullString
		hours     sql.NullFloat64
		createdAt time.Time
	)
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.EmployeeName,
		&rec.Date,
		&checkIn,
		&checkOut,
		&hours,
		&createdAt,
	)
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	if checkIn.Valid {
		rec.CheckInTime = &checkIn.String
	}
	if checkOut.Valid {
		rec.CheckOutTime = &checkOut.String
	}
	if hours.Valid {
		rec.TotalHours = &hours.Float64
	}
	rec.CreatedAt = createdAt
	return rec, nil
}
