package db

import (
	"context"
	"database/sql"
	"fmt"

	"shiftclock_backend/models"
)

// ListRoster returns the entries for employeeID on date followed by the
// broadcast entries for that date.
func (s *PostgresStore) ListRoster(ctx context.Context, employeeID int, date string) ([]models.RosterEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, employee_id, to_char(shift_date, 'YYYY-MM-DD'), shift_start, shift_end, task_notes
        FROM roster_entries
        WHERE shift_date = $1 AND (employee_id = $2 OR employee_id IS NULL)
        ORDER BY employee_id NULLS LAST, id
    `, date, employeeID)
	if err != nil {
		return nil, fmt.Errorf("error listing roster: %w", err)
	}
	defer rows.Close()

	entries := []models.RosterEntry{}
	for rows.Next() {
		var (
			entry      models.RosterEntry
			employeeID sql.NullInt64
		)
		if err := rows.Scan(&entry.ID, &employeeID, &entry.Date, &entry.ShiftStart, &entry.ShiftEnd, &entry.TaskNotes); err != nil {
			return nil, fmt.Errorf("error scanning roster entry: %w", err)
		}
		if employeeID.Valid {
			id := int(employeeID.Int64)
			entry.EmployeeID = &id
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error listing roster: %w", err)
	}
	return entries, nil
}

func (s *PostgresStore) CreateRosterEntry(ctx context.Context, entry models.RosterEntry) (models.RosterEntry, error) {
	if !entry.ShiftEnd.After(entry.ShiftStart) {
		return models.RosterEntry{}, ErrInvalidRosterEntry
	}
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO roster_entries (employee_id, shift_date, shift_start, shift_end, task_notes)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, entry.EmployeeID, entry.Date, entry.ShiftStart, entry.ShiftEnd, entry.TaskNotes).Scan(&entry.ID)
	if err != nil {
		return models.RosterEntry{}, fmt.Errorf("error creating roster entry: %w", err)
	}
	return entry, nil
}
